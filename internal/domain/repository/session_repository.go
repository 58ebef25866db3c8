package repository

import (
	"context"
	"errors"
	"time"

	"podium/internal/domain/entity"
)

// ErrSessionNotFound is returned when no unexpired session matches a token hash.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists server-side sessions for the database session store.
type SessionRepository interface {
	// Create persists a new session record.
	Create(ctx context.Context, session *entity.StoredSession) error

	// FindActiveByHash retrieves the session with the given token hash if it has not expired at now.
	FindActiveByHash(ctx context.Context, tokenHash string, now time.Time) (*entity.StoredSession, error)

	// DeleteByHash removes a session. Deleting a missing session is not an error.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteExpired removes every session that expired before now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
