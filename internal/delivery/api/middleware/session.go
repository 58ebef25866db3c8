package middleware

import (
	"podium/internal/delivery/api/cookie"
	deliverycontext "podium/internal/delivery/context"
	domainerrors "podium/internal/domain/errors"
	"podium/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionMiddlewareParams holds dependencies for SessionMiddleware, injected by Fx.
type SessionMiddlewareParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Jar       *cookie.Jar
}

// SessionMiddleware guards routes that require a signed-in account.
type SessionMiddleware struct {
	sessionUC usecase.SessionUsecase
	jar       *cookie.Jar
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(params SessionMiddlewareParams) *SessionMiddleware {
	return &SessionMiddleware{
		sessionUC: params.SessionUC,
		jar:       params.Jar,
	}
}

// Authenticate resolves the session cookie and attaches the account to the context.
// Every failure is the same 401 so callers learn nothing about why.
func (m *SessionMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.jar.Read(c)
		if token == "" {
			return domainerrors.ErrUnauthenticated
		}

		account, err := m.sessionUC.Resolve(c.Request().Context(), token)
		if err != nil || account == nil {
			return domainerrors.ErrUnauthenticated
		}

		deliverycontext.SetAccount(c, account)

		return next(c)
	}
}
