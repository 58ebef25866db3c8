// Package entity contains the core business objects of the identity service,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"strings"
)

// AccountType represents the kind of membership an account holds.
type AccountType string

const (
	// AccountTypeIndividual is a regular member without a profile extension.
	AccountTypeIndividual AccountType = "individual"
	// AccountTypeSpeaker is a member who offers talks and carries a SpeakerProfile.
	AccountTypeSpeaker AccountType = "speaker"
	// AccountTypeCorporate is an organisation member and carries a CorporateProfile.
	AccountTypeCorporate AccountType = "corporate"
)

// AccountTypes lists every supported account type in display order.
var AccountTypes = []AccountType{AccountTypeIndividual, AccountTypeSpeaker, AccountTypeCorporate}

// ParseAccountType converts raw input into an AccountType.
// It is the only place raw account type strings are interpreted.
func ParseAccountType(raw string) (AccountType, bool) {
	accountType := AccountType(strings.ToLower(strings.TrimSpace(raw)))
	if !accountType.IsValid() {
		return "", false
	}

	return accountType, true
}

// String returns the string representation of the AccountType.
func (t AccountType) String() string {
	return string(t)
}

// IsValid checks if the AccountType is a valid value.
func (t AccountType) IsValid() bool {
	return slices.Contains(AccountTypes, t)
}

// RequiresProfile reports whether accounts of this type must own exactly one Profile.
func (t AccountType) RequiresProfile() bool {
	switch t {
	case AccountTypeSpeaker, AccountTypeCorporate:
		return true
	default:
		return false
	}
}

// AccountTypeStrings returns the supported account types as plain strings.
func AccountTypeStrings() []string {
	result := make([]string, len(AccountTypes))
	for i, t := range AccountTypes {
		result[i] = t.String()
	}

	return result
}
