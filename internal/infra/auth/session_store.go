package auth

import (
	"context"
	"log/slog"

	"podium/config"
	"podium/internal/domain/repository"
	"podium/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SessionStoreParams holds dependencies for the session store, injected by Fx.
type SessionStoreParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Config      *config.Config
	Logger      *slog.Logger
	SessionRepo repository.SessionRepository
}

// NewSessionStore builds the store selected by session.store. The database store
// also registers its expired-session sweeper with the application lifecycle.
func NewSessionStore(params SessionStoreParams) (service.SessionStore, error) {
	sessionCfg := params.Config.Session
	if sessionCfg == nil {
		return nil, errors.New("session configuration is required")
	}

	switch sessionCfg.Store {
	case config.SessionStoreCookie:
		if params.Config.SecretKey.Session == "" {
			return nil, errors.New("secretKey.session is required for the cookie session store")
		}
		params.Logger.Info("Using cookie session store", slog.Duration("ttl", sessionCfg.TTL))

		return newCookieSessionStore(params.Config.SecretKey.Session, sessionCfg.TTL, params.Config.Env.ServiceName), nil

	case config.SessionStoreDatabase:
		store := newDatabaseSessionStore(params.SessionRepo, sessionCfg.TTL, params.Logger)
		params.Lifecycle.Append(fx.Hook{
			OnStart: func(context.Context) error {
				store.startSweeper(sessionCfg.SweepInterval)
				params.Logger.Info("Session sweeper started", slog.Duration("interval", sessionCfg.SweepInterval))

				return nil
			},
			OnStop: func(context.Context) error {
				store.stopSweeper()
				params.Logger.Info("Session sweeper stopped")

				return nil
			},
		})
		params.Logger.Info("Using database session store", slog.Duration("ttl", sessionCfg.TTL))

		return store, nil

	default:
		return nil, errors.Errorf("unsupported session store %q", sessionCfg.Store)
	}
}
