package service

import (
	"context"
	"errors"

	"podium/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionInvalid is returned by a SessionStore for any token it cannot honour:
// bad signature, expired, unknown or revoked.
var ErrSessionInvalid = errors.New("session invalid")

// SessionStore is the backing store behind session cookies. Implementations decide
// whether the token is self-contained (signed) or a handle to server-side state.
type SessionStore interface {
	// Issue creates a session for the account and returns the token to hand to the client.
	Issue(ctx context.Context, accountID uuid.UUID) (*entity.Session, error)

	// Lookup returns the account id a token acts as, or ErrSessionInvalid.
	Lookup(ctx context.Context, token string) (uuid.UUID, error)

	// Revoke ends the session if the store keeps server-side state.
	Revoke(ctx context.Context, token string) error
}
