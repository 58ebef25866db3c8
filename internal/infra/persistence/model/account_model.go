// Package model holds the GORM persistence models. They mirror the tables created by the goose migrations.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. Emails are stored lower-cased and unique on lower(email).
type AccountModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"type:varchar(255);not null"`
	PasswordDigest string    `gorm:"type:varchar(255);not null"`
	FullName       string    `gorm:"type:varchar(255);not null"`
	AccountType    string    `gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	SpeakerProfile   *SpeakerProfileModel   `gorm:"foreignKey:AccountID"`
	CorporateProfile *CorporateProfileModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// SpeakerProfileModel mirrors the 'speaker_profiles' table. AccountID references accounts.id.
type SpeakerProfileModel struct {
	AccountID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Specialization string    `gorm:"type:varchar(255);not null"`
	Experience     string    `gorm:"type:text;not null"`
	Portfolio      *string   `gorm:"type:varchar(2048)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (SpeakerProfileModel) TableName() string {
	return "speaker_profiles"
}

// CorporateProfileModel mirrors the 'corporate_profiles' table. AccountID references accounts.id.
type CorporateProfileModel struct {
	AccountID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyName string    `gorm:"type:varchar(255);not null"`
	Position    string    `gorm:"type:varchar(255);not null"`
	CompanySize string    `gorm:"type:varchar(50);not null"`
	Industry    string    `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CorporateProfileModel) TableName() string {
	return "corporate_profiles"
}
