package impl

import (
	"context"
	"log/slog"

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

// sessionService implements the SessionUsecase interface on top of a SessionStore.
type sessionService struct {
	store       service.SessionStore
	accountRepo repository.AccountRepository
	metrics     *metrics.AuthMetrics
	logger      *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Store       service.SessionStore
	AccountRepo repository.AccountRepository
	Metrics     *metrics.AuthMetrics `optional:"true"`
	Logger      *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		store:       params.Store,
		accountRepo: params.AccountRepo,
		metrics:     params.Metrics,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Issue starts a session bound to the account id only.
func (srv *sessionService) Issue(ctx context.Context, account *entity.Account) (*entity.Session, error) {
	if account == nil {
		return nil, errors.New("account is required to issue a session")
	}

	session, err := srv.store.Issue(ctx, account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session",
			slog.String("accountID", account.ID.String()),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrSessionIssueFailed.WrapMessage(err.Error())
	}

	return session, nil
}

// Resolve reloads the account behind a token. It never returns anything but ErrUnauthenticated on failure.
func (srv *sessionService) Resolve(ctx context.Context, token string) (*entity.Account, error) {
	if token == "" {
		return srv.reject(), domainerrors.ErrUnauthenticated
	}

	accountID, err := srv.store.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrSessionInvalid) {
			srv.log(ctx).Debug("Session rejected", slog.Any("reason", err))
		} else {
			srv.log(ctx).Error("Session store lookup failed", slog.Any("error", err))
		}

		return srv.reject(), domainerrors.ErrUnauthenticated
	}

	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Debug("Session references a missing account", slog.String("accountID", accountID.String()))
		} else {
			srv.log(ctx).Error("Failed to load session account",
				slog.String("accountID", accountID.String()),
				slog.Any("error", err),
			)
		}

		return srv.reject(), domainerrors.ErrUnauthenticated
	}

	if !account.HasConsistentProfile() {
		srv.log(ctx).Error("Account profile does not match its type",
			slog.String("accountID", account.ID.String()),
			slog.String("accountType", account.AccountType.String()),
		)

		return srv.reject(), domainerrors.ErrUnauthenticated
	}

	srv.metrics.ObserveSessionResolution(metrics.OutcomeResolved)
	account.PasswordDigest = ""

	return account, nil
}

// End revokes the session. The client cookie is cleared by the caller regardless of the outcome.
func (srv *sessionService) End(ctx context.Context, token string) {
	if token == "" {
		return
	}

	if err := srv.store.Revoke(ctx, token); err != nil {
		srv.log(ctx).Warn("Failed to revoke session", slog.Any("error", err))
	}
}

func (srv *sessionService) reject() *entity.Account {
	srv.metrics.ObserveSessionResolution(metrics.OutcomeRejected)

	return nil
}
