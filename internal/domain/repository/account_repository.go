// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"podium/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the persistence operations for accounts and their profiles.
type AccountRepository interface {
	// Create persists a new account row. The email must already be normalised.
	// A second account with the same email (in any letter case) fails with errors.ErrDuplicateAccount.
	Create(ctx context.Context, account *entity.Account) error

	// AttachProfile persists account.Profile referencing account.ID.
	// It must run in the same transaction as Create.
	AttachProfile(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account with its profile loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves an account with its profile loaded, matching the email case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
}
