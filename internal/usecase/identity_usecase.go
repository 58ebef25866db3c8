// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"podium/internal/domain/entity"
)

// --- Input DTOs ---

// SpeakerProfileInput is the speaker-specific registration payload.
type SpeakerProfileInput struct {
	Specialization string  `json:"specialization" validate:"required,max=255"`
	Experience     string  `json:"experience" validate:"required,max=50"`
	Portfolio      *string `json:"portfolio,omitempty" validate:"omitempty,url,max=2048"`
}

// CorporateProfileInput is the corporate-specific registration payload.
type CorporateProfileInput struct {
	CompanyName string `json:"companyName" validate:"required,max=255"`
	Position    string `json:"position" validate:"required,max=255"`
	CompanySize string `json:"companySize" validate:"required,max=50"`
	Industry    string `json:"industry" validate:"required,max=255"`
}

// RegisterInput defines the data required to register a new account.
// Only the profile payload matching AccountType is used.
type RegisterInput struct {
	Email            string                 `json:"email" validate:"required,email,max=255"`
	Password         string                 `json:"password"`
	FullName         string                 `json:"fullName" validate:"required,max=255"`
	AccountType      string                 `json:"accountType"`
	SpeakerProfile   *SpeakerProfileInput   `json:"speakerProfile,omitempty"`
	CorporateProfile *CorporateProfileInput `json:"corporateProfile,omitempty"`
}

// LoginInput defines the credentials submitted at login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationUsecase creates accounts together with their type-specific profile.
type RegistrationUsecase interface {
	// Register validates the input and atomically stores the account and its profile.
	// The returned account never carries the password digest.
	Register(ctx context.Context, input *RegisterInput) (*entity.Account, error)
}

// AuthenticationUsecase verifies credentials.
type AuthenticationUsecase interface {
	// Login returns the account matching the credentials, or ErrInvalidCredentials.
	Login(ctx context.Context, input *LoginInput) (*entity.Account, error)
}

// SessionUsecase issues and resolves session tokens.
type SessionUsecase interface {
	// Issue starts a session for the account.
	Issue(ctx context.Context, account *entity.Account) (*entity.Session, error)

	// Resolve returns the account a token acts as, freshly loaded with its profile.
	// Every failure is reported as ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (*entity.Account, error)

	// End revokes the session when the store supports it. Failures are only logged.
	End(ctx context.Context, token string)
}
