package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a time-bounded credential proving a request acts as an Account.
// Token is the opaque value handed to the client; it is never persisted as-is.
type Session struct {
	Token     string
	AccountID uuid.UUID
	ExpiresAt time.Time
}

// StoredSession is the server-side record of a session kept by the database store.
type StoredSession struct {
	TokenHash string    // SHA-256 of the raw token, hex encoded.
	AccountID uuid.UUID // The account the session acts as.
	ExpiresAt time.Time // The session is rejected after this instant.
	CreatedAt time.Time
}

// IsExpired reports whether the stored session is no longer valid at now.
func (s *StoredSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
