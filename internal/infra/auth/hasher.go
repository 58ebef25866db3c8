package auth

import (
	"context"
	"log/slog"

	"podium/config"
	"podium/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/semaphore"
)

// digestAlgorithm is one concrete password hashing scheme.
type digestAlgorithm interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
	Recognizes(digest string) bool
}

// passwordHasher hashes with the configured algorithm and verifies digests of any
// supported algorithm, so switching auth.hasher keeps existing accounts working.
// Concurrent hash and verify calls are bounded by slots.
type passwordHasher struct {
	primary    digestAlgorithm
	algorithms []digestAlgorithm
	slots      *semaphore.Weighted
}

// PasswordHasherParams holds dependencies for the password hasher, injected by Fx.
type PasswordHasherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewPasswordHasher is the constructor for the configured service.PasswordHasher.
func NewPasswordHasher(params PasswordHasherParams) (service.PasswordHasher, error) {
	authCfg := params.Config.Auth
	if authCfg == nil {
		return nil, errors.New("auth configuration is required")
	}

	bcryptAlg := newBcryptHasher(authCfg.BcryptCost)
	argon2Alg := newArgon2idHasher(authCfg.Argon2)

	var primary digestAlgorithm
	switch authCfg.Hasher {
	case config.HasherBcrypt:
		primary = bcryptAlg
	case config.HasherArgon2id:
		primary = argon2Alg
	default:
		return nil, errors.Errorf("unsupported password hasher %q", authCfg.Hasher)
	}

	params.Logger.Info("Password hasher configured",
		slog.String("algorithm", authCfg.Hasher),
		slog.Int("maxConcurrentHashes", authCfg.MaxConcurrentHashes),
	)

	return newPasswordHasher(primary, authCfg.MaxConcurrentHashes, bcryptAlg, argon2Alg), nil
}

func newPasswordHasher(primary digestAlgorithm, maxConcurrent int, algorithms ...digestAlgorithm) *passwordHasher {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &passwordHasher{
		primary:    primary,
		algorithms: algorithms,
		slots:      semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Hash generates a salted digest with the primary algorithm.
func (h *passwordHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", errors.Wrap(err, "failed to acquire hashing slot")
	}
	defer h.slots.Release(1)

	digest, err := h.primary.Hash(password)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return digest, nil
}

// Verify checks the password against a digest produced by any supported algorithm.
func (h *passwordHasher) Verify(ctx context.Context, password, digest string) bool {
	var algorithm digestAlgorithm
	for _, candidate := range h.algorithms {
		if candidate.Recognizes(digest) {
			algorithm = candidate

			break
		}
	}
	if algorithm == nil {
		return false
	}

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.slots.Release(1)

	return algorithm.Verify(password, digest)
}
