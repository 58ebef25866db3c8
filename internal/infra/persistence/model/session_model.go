package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table used by the database session store.
// Only the SHA-256 of the client token is stored.
type SessionModel struct {
	TokenHash string    `gorm:"type:char(64);primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
