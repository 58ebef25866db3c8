package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"podium/internal/domain/entity"
	"podium/internal/domain/repository"
	"podium/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const sessionTokenBytes = 32

// databaseSessionStore hands out opaque random tokens and keeps only their SHA-256 in the
// sessions table, so a leaked table cannot be replayed and Revoke takes effect immediately.
type databaseSessionStore struct {
	repo   repository.SessionRepository
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	stopSweep context.CancelFunc
	sweepDone chan struct{}
}

func newDatabaseSessionStore(repo repository.SessionRepository, ttl time.Duration, logger *slog.Logger) *databaseSessionStore {
	return &databaseSessionStore{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Issue generates a token and persists its hash with a fixed expiry.
func (s *databaseSessionStore) Issue(ctx context.Context, accountID uuid.UUID) (*entity.Session, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, errors.Wrap(err, "failed to generate session token")
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	now := s.now()
	stored := &entity.StoredSession{
		TokenHash: hashSessionToken(token),
		AccountID: accountID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, stored); err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}

	return &entity.Session{
		Token:     token,
		AccountID: accountID,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// Lookup returns ErrSessionInvalid for unknown or expired tokens. Store failures are returned as-is.
func (s *databaseSessionStore) Lookup(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, service.ErrSessionInvalid
	}

	stored, err := s.repo.FindActiveByHash(ctx, hashSessionToken(token), s.now())
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return uuid.Nil, service.ErrSessionInvalid
		}

		return uuid.Nil, err
	}

	return stored.AccountID, nil
}

// Revoke deletes the session row.
func (s *databaseSessionStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	return s.repo.DeleteByHash(ctx, hashSessionToken(token))
}

// Sweep deletes expired sessions and returns how many were removed.
func (s *databaseSessionStore) Sweep(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}

// startSweeper runs Sweep every interval until stopSweeper is called.
func (s *databaseSessionStore) startSweeper(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopSweep != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.stopSweep = cancel
	s.sweepDone = done

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.Sweep(ctx)
				if err != nil {
					if ctx.Err() == nil {
						s.logger.Error("Failed to sweep expired sessions", slog.Any("error", err))
					}

					continue
				}
				if removed > 0 {
					s.logger.Debug("Swept expired sessions", slog.Int64("removed", removed))
				}
			}
		}
	}()
}

// stopSweeper stops the sweeper goroutine and waits for it to exit.
func (s *databaseSessionStore) stopSweeper() {
	s.mu.Lock()
	cancel, done := s.stopSweep, s.sweepDone
	s.stopSweep, s.sweepDone = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func hashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
