// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher hashes with bcrypt. bcrypt generates the salt and compares in constant time.
type bcryptHasher struct {
	cost int
}

// newBcryptHasher clamps cost into the range bcrypt accepts.
func newBcryptHasher(cost int) *bcryptHasher {
	switch {
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted digest from a plaintext password.
func (h *bcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// Verify compares a plaintext password with a bcrypt digest.
// Malformed digests make CompareHashAndPassword fail, which is reported as a mismatch.
func (h *bcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// Recognizes reports whether the digest uses one of the bcrypt prefixes.
func (h *bcryptHasher) Recognizes(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}
