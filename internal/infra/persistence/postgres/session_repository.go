package postgres

import (
	"context"
	"time"

	"podium/internal/domain/entity"
	domainerrors "podium/internal/domain/errors"
	"podium/internal/domain/repository"
	"podium/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// sessionRepository implements repository.SessionRepository using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) Create(ctx context.Context, session *entity.StoredSession) error {
	sessionM := fromSessionDomain(session)
	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return domainerrors.NewStoreUnavailableError(err, "failed to create session")
	}
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

func (repo *sessionRepository) FindActiveByHash(ctx context.Context, tokenHash string, now time.Time) (*entity.StoredSession, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to find session")
	}

	return toSessionDomain(&sessionM), nil
}

func (repo *sessionRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&model.SessionModel{}).Error
	if err != nil {
		return domainerrors.NewStoreUnavailableError(err, "failed to delete session")
	}

	return nil
}

func (repo *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.SessionModel{})
	if result.Error != nil {
		return 0, domainerrors.NewStoreUnavailableError(result.Error, "failed to delete expired sessions")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

func toSessionDomain(data *model.SessionModel) *entity.StoredSession {
	return &entity.StoredSession{
		TokenHash: data.TokenHash,
		AccountID: data.AccountID,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromSessionDomain(data *entity.StoredSession) *model.SessionModel {
	return &model.SessionModel{
		TokenHash: data.TokenHash,
		AccountID: data.AccountID,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
