package postgres

import (
	"context"

	"podium/internal/domain/entity"
	domainerrors "podium/internal/domain/errors"
	"podium/internal/domain/repository"
	"podium/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// accountRepository implements repository.AccountRepository using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// db may be the root connection or a transaction handle.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts the account row. The id is generated here when unset; timestamps are filled by GORM.
// A concurrent insert of the same email surfaces as ErrDuplicateAccount through the unique index.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate account id")
		}
		account.ID = id
	}
	account.Email = entity.NormalizeEmail(account.Email)

	accountM := fromAccountDomain(account)
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateAccount.WrapMessage("email already registered")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.NewStoreUnavailableError(err, "account row rejected by check constraint")
		}

		return domainerrors.NewStoreUnavailableError(err, "failed to create account")
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// AttachProfile inserts the profile row matching account.Profile. Individual accounts have nothing to attach.
func (repo *accountRepository) AttachProfile(ctx context.Context, account *entity.Account) error {
	var row any
	switch profile := account.Profile.(type) {
	case nil:
		return nil
	case *entity.SpeakerProfile:
		row = fromSpeakerProfileDomain(account.ID, profile)
	case *entity.CorporateProfile:
		row = fromCorporateProfileDomain(account.ID, profile)
	default:
		return errors.Errorf("unsupported profile type %T", profile)
	}

	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewStoreUnavailableError(err, "profile references a missing account")
		}

		return domainerrors.NewStoreUnavailableError(err, "failed to attach profile")
	}

	return nil
}

// FindByID retrieves an account with its profile.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.withProfiles(ctx).
		Where("id = ?", id).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves an account by email, case-insensitively.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.withProfiles(ctx).
		Where("lower(email) = ?", entity.NormalizeEmail(email)).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// withProfiles reads from the primary so a login right after registration sees the new row.
func (repo *accountRepository) withProfiles(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Preload("SpeakerProfile").
		Preload("CorporateProfile")
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	account := &entity.Account{
		ID:             data.ID,
		Email:          data.Email,
		PasswordDigest: data.PasswordDigest,
		FullName:       data.FullName,
		AccountType:    entity.AccountType(data.AccountType),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}

	switch account.AccountType {
	case entity.AccountTypeSpeaker:
		if data.SpeakerProfile != nil {
			account.Profile = toSpeakerProfileDomain(data.SpeakerProfile)
		}
	case entity.AccountTypeCorporate:
		if data.CorporateProfile != nil {
			account.Profile = toCorporateProfileDomain(data.CorporateProfile)
		}
	}

	return account
}

// fromAccountDomain converts a domain Account entity to an AccountModel without its profile.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:             data.ID,
		Email:          data.Email,
		PasswordDigest: data.PasswordDigest,
		FullName:       data.FullName,
		AccountType:    data.AccountType.String(),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func toSpeakerProfileDomain(data *model.SpeakerProfileModel) *entity.SpeakerProfile {
	return &entity.SpeakerProfile{
		Specialization: data.Specialization,
		Experience:     data.Experience,
		Portfolio:      data.Portfolio,
	}
}

func fromSpeakerProfileDomain(accountID uuid.UUID, data *entity.SpeakerProfile) *model.SpeakerProfileModel {
	return &model.SpeakerProfileModel{
		AccountID:      accountID,
		Specialization: data.Specialization,
		Experience:     data.Experience,
		Portfolio:      data.Portfolio,
	}
}

func toCorporateProfileDomain(data *model.CorporateProfileModel) *entity.CorporateProfile {
	return &entity.CorporateProfile{
		CompanyName: data.CompanyName,
		Position:    data.Position,
		CompanySize: data.CompanySize,
		Industry:    data.Industry,
	}
}

func fromCorporateProfileDomain(accountID uuid.UUID, data *entity.CorporateProfile) *model.CorporateProfileModel {
	return &model.CorporateProfileModel{
		AccountID:   accountID,
		CompanyName: data.CompanyName,
		Position:    data.Position,
		CompanySize: data.CompanySize,
		Industry:    data.Industry,
	}
}
