package handler

import (
	"time"

	"podium/internal/domain/entity"

	"github.com/google/uuid"
)

// AccountView is the public JSON shape of an account. The password digest is never part of it.
type AccountView struct {
	ID               uuid.UUID             `json:"id"`
	Email            string                `json:"email"`
	FullName         string                `json:"fullName"`
	AccountType      string                `json:"accountType"`
	SpeakerProfile   *SpeakerProfileView   `json:"speakerProfile,omitempty"`
	CorporateProfile *CorporateProfileView `json:"corporateProfile,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

type SpeakerProfileView struct {
	Specialization string  `json:"specialization"`
	Experience     string  `json:"experience"`
	Portfolio      *string `json:"portfolio,omitempty"`
}

type CorporateProfileView struct {
	CompanyName string `json:"companyName"`
	Position    string `json:"position"`
	CompanySize string `json:"companySize"`
	Industry    string `json:"industry"`
}

// AuthResult is the payload of the register, login and logout endpoints.
type AuthResult struct {
	Message string       `json:"message"`
	Account *AccountView `json:"account,omitempty"`
}

// CurrentAccount is the payload of GET /auth/me.
type CurrentAccount struct {
	Account *AccountView `json:"account"`
}

// NewAccountView maps an account to its public representation.
func NewAccountView(account *entity.Account) *AccountView {
	if account == nil {
		return nil
	}

	view := &AccountView{
		ID:          account.ID,
		Email:       account.Email,
		FullName:    account.FullName,
		AccountType: account.AccountType.String(),
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}

	switch profile := account.Profile.(type) {
	case *entity.SpeakerProfile:
		view.SpeakerProfile = &SpeakerProfileView{
			Specialization: profile.Specialization,
			Experience:     profile.Experience,
			Portfolio:      profile.Portfolio,
		}
	case *entity.CorporateProfile:
		view.CorporateProfile = &CorporateProfileView{
			CompanyName: profile.CompanyName,
			Position:    profile.Position,
			CompanySize: profile.CompanySize,
			Industry:    profile.Industry,
		}
	}

	return view
}
