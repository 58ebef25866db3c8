// Package handler contains the HTTP handlers for the application.
package handler

import (
	"podium/internal/delivery/api/cookie"
	"podium/internal/delivery/api/response"
	deliverycontext "podium/internal/delivery/context"
	domainerrors "podium/internal/domain/errors"
	"podium/internal/errors"
	"podium/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	messageRegistered = "Registration successful"
	messageLoggedIn   = "Login successful"
	messageLoggedOut  = "Logout successful"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	RegistrationUC   usecase.RegistrationUsecase
	AuthenticationUC usecase.AuthenticationUsecase
	SessionUC        usecase.SessionUsecase
	Jar              *cookie.Jar
}

// AuthHandler serves registration, login, logout and the current account.
type AuthHandler struct {
	registrationUC   usecase.RegistrationUsecase
	authenticationUC usecase.AuthenticationUsecase
	sessionUC        usecase.SessionUsecase
	jar              *cookie.Jar
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		registrationUC:   params.RegistrationUC,
		authenticationUC: params.AuthenticationUC,
		sessionUC:        params.SessionUC,
		jar:              params.Jar,
	}
}

// Register creates an account and signs it in.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.NewValidationError(domainerrors.FieldViolation{
			Field:   "body",
			Message: "must be a valid JSON object",
		})
	}

	ctx := c.Request().Context()

	account, err := h.registrationUC.Register(ctx, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	session, err := h.sessionUC.Issue(ctx, account)
	if err != nil {
		return errors.WithStack(err)
	}
	h.jar.Write(c, session)

	return response.Created(c, AuthResult{Message: messageRegistered, Account: NewAccountView(account)})
}

// Login verifies the credentials and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrInvalidCredentials
	}

	ctx := c.Request().Context()

	account, err := h.authenticationUC.Login(ctx, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	session, err := h.sessionUC.Issue(ctx, account)
	if err != nil {
		return errors.WithStack(err)
	}
	h.jar.Write(c, session)

	return response.OK(c, AuthResult{Message: messageLoggedIn, Account: NewAccountView(account)})
}

// Logout ends the session, if any, and clears the cookie. It always succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.jar.Read(c); token != "" {
		h.sessionUC.End(c.Request().Context(), token)
	}
	h.jar.Clear(c)

	return response.OK(c, AuthResult{Message: messageLoggedOut})
}

// Me returns the account attached by the session gate.
func (h *AuthHandler) Me(c echo.Context) error {
	account, ok := deliverycontext.GetAccount(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	return response.OK(c, CurrentAccount{Account: NewAccountView(account)})
}
