package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	deliverycontext "podium/internal/delivery/context"
	"podium/internal/domain/entity"
	domainerrors "podium/internal/domain/errors"
	"podium/internal/domain/repository"
	"podium/internal/domain/service"
	"podium/internal/infra/metrics"
	"podium/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// fallbackDummyDigest is a bcrypt digest of a random string, used only if the hasher cannot produce one.
const fallbackDummyDigest = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3f4iv1vCrt8Q0ocqWLJ0vCe"

// authenticationService implements the AuthenticationUsecase interface.
type authenticationService struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	metrics     *metrics.AuthMetrics
	logger      *slog.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

// AuthenticationServiceParams holds dependencies for AuthenticationService, injected by Fx.
type AuthenticationServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Metrics     *metrics.AuthMetrics `optional:"true"`
	Logger      *slog.Logger
}

// NewAuthenticationService is the constructor for authenticationService.
func NewAuthenticationService(params AuthenticationServiceParams) usecase.AuthenticationUsecase {
	return &authenticationService{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		metrics:     params.Metrics,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authenticationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the credentials. An unknown email and a wrong password produce the same error
// and both cost one password verification.
func (srv *authenticationService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.Account, error) {
	if input == nil || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		srv.metrics.ObserveLogin(metrics.OutcomeInvalidCredentials)

		return nil, domainerrors.ErrInvalidCredentials
	}

	account, err := srv.accountRepo.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.hasher.Verify(ctx, input.Password, srv.dummy(ctx))
			srv.log(ctx).Debug("Login rejected")
			srv.metrics.ObserveLogin(metrics.OutcomeInvalidCredentials)

			return nil, domainerrors.ErrInvalidCredentials
		}

		srv.log(ctx).Error("Failed to look up account for login", slog.Any("error", err))
		srv.metrics.ObserveLogin(metrics.OutcomeError)

		return nil, err
	}

	if !srv.hasher.Verify(ctx, input.Password, account.PasswordDigest) {
		srv.log(ctx).Debug("Login rejected")
		srv.metrics.ObserveLogin(metrics.OutcomeInvalidCredentials)

		return nil, domainerrors.ErrInvalidCredentials
	}

	srv.log(ctx).Info("Login succeeded", slog.String("accountID", account.ID.String()))
	srv.metrics.ObserveLogin(metrics.OutcomeSuccess)

	account.PasswordDigest = ""

	return account, nil
}

// dummy returns a digest produced by the configured hasher, computed once.
func (srv *authenticationService) dummy(ctx context.Context) string {
	srv.dummyOnce.Do(func() {
		digest, err := srv.hasher.Hash(context.WithoutCancel(ctx), "podium-dummy-password")
		if err != nil {
			srv.log(ctx).Warn("Failed to compute dummy digest, using fallback", slog.Any("error", err))
			digest = fallbackDummyDigest
		}
		srv.dummyDigest = digest
	})

	return srv.dummyDigest
}
