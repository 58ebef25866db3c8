package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is the root identity record of a member.
type Account struct {
	ID             uuid.UUID   // Generated at creation, immutable.
	Email          string      // Normalised login key, unique across accounts.
	PasswordDigest string      // Output of the password hasher, never the plaintext.
	FullName       string      // Display name.
	AccountType    AccountType // Determines which Profile, if any, is attached.
	Profile        Profile     // nil for individual accounts.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasConsistentProfile reports whether the attached profile matches the account type:
// none for individual accounts, exactly the matching variant otherwise.
func (a *Account) HasConsistentProfile() bool {
	if !a.AccountType.RequiresProfile() {
		return a.Profile == nil
	}

	return a.Profile != nil && a.Profile.AccountType() == a.AccountType
}

// SpeakerProfile returns the speaker extension, or nil for other account types.
func (a *Account) SpeakerProfile() *SpeakerProfile {
	profile, _ := a.Profile.(*SpeakerProfile)

	return profile
}

// CorporateProfile returns the corporate extension, or nil for other account types.
func (a *Account) CorporateProfile() *CorporateProfile {
	profile, _ := a.Profile.(*CorporateProfile)

	return profile
}

// Profile is the type-specific extension owned by a speaker or corporate account.
// The set of implementations is closed to this package.
type Profile interface {
	AccountType() AccountType
	isProfile()
}

// SpeakerProfile holds the supplementary data of a speaker account.
type SpeakerProfile struct {
	Specialization string
	Experience     string  // Bucketed range such as "0-2".
	Portfolio      *string // Optional URL.
}

// AccountType implements Profile.
func (*SpeakerProfile) AccountType() AccountType { return AccountTypeSpeaker }

func (*SpeakerProfile) isProfile() {}

// CorporateProfile holds the supplementary data of a corporate account.
type CorporateProfile struct {
	CompanyName string
	Position    string
	CompanySize string // Bucketed range such as "51-200".
	Industry    string
}

// AccountType implements Profile.
func (*CorporateProfile) AccountType() AccountType { return AccountTypeCorporate }

func (*CorporateProfile) isProfile() {}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
