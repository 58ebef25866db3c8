// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (bcrypt, argon2id), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password.
	// Two calls with the same input return different digests.
	Hash(ctx context.Context, password string) (string, error)

	// Verify compares a plaintext password with a digest in constant time.
	// A malformed or unknown digest, or a cancelled context, yields false.
	Verify(ctx context.Context, password, digest string) bool
}
