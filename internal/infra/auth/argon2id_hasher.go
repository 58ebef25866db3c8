package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"podium/config"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

const argon2idPrefix = "$argon2id$"

// Defaults follow the OWASP argon2id baseline.
const (
	defaultArgon2Memory      = 64 * 1024 // KiB
	defaultArgon2Iterations  = 3
	defaultArgon2Parallelism = 2
	defaultArgon2SaltLength  = 16
	defaultArgon2KeyLength   = 32

	// Upper bounds accepted when reading a stored digest.
	maxArgon2Memory     = 1024 * 1024
	maxArgon2Iterations = 16
	minArgon2SaltLength = 8
	minArgon2KeyLength  = 16
	maxArgon2KeyLength  = 1024
)

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// argon2idHasher hashes with argon2id and encodes digests in PHC string format:
// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
type argon2idHasher struct {
	params argon2Params
}

func newArgon2idHasher(cfg config.Argon2Config) *argon2idHasher {
	params := argon2Params{
		memory:      cfg.Memory,
		iterations:  cfg.Iterations,
		parallelism: cfg.Parallelism,
		saltLength:  cfg.SaltLength,
		keyLength:   cfg.KeyLength,
	}
	if params.memory == 0 {
		params.memory = defaultArgon2Memory
	}
	if params.iterations == 0 {
		params.iterations = defaultArgon2Iterations
	}
	if params.parallelism == 0 {
		params.parallelism = defaultArgon2Parallelism
	}
	if params.saltLength == 0 {
		params.saltLength = defaultArgon2SaltLength
	}
	if params.keyLength == 0 {
		params.keyLength = defaultArgon2KeyLength
	}

	return &argon2idHasher{params: params}
}

// Hash generates a salted digest from a plaintext password.
func (h *argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	key := argon2.IDKey([]byte(password), salt, h.params.iterations, h.params.memory, h.params.parallelism, h.params.keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.memory,
		h.params.iterations,
		h.params.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the key with the parameters stored in the digest and compares in constant time.
func (h *argon2idHasher) Verify(password, digest string) bool {
	params, salt, expected, err := decodeArgon2idDigest(digest)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, params.iterations, params.memory, params.parallelism, params.keyLength)

	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// Recognizes reports whether the digest is an argon2id PHC string.
func (h *argon2idHasher) Recognizes(digest string) bool {
	return strings.HasPrefix(digest, argon2idPrefix)
}

func decodeArgon2idDigest(digest string) (argon2Params, []byte, []byte, error) {
	var params argon2Params

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params, nil, nil, errors.New("invalid argon2id digest format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, errors.Wrap(err, "invalid argon2id version")
	}
	if version != argon2.Version {
		return params, nil, nil, errors.Errorf("unsupported argon2id version %d", version)
	}

	var memory, iterations, parallelism uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return params, nil, nil, errors.Wrap(err, "invalid argon2id parameters")
	}
	if memory == 0 || memory > maxArgon2Memory ||
		iterations == 0 || iterations > maxArgon2Iterations ||
		parallelism == 0 || parallelism > 255 {
		return params, nil, nil, errors.New("argon2id parameters out of range")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) < minArgon2SaltLength {
		return params, nil, nil, errors.New("invalid argon2id salt")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) < minArgon2KeyLength || len(key) > maxArgon2KeyLength {
		return params, nil, nil, errors.New("invalid argon2id key")
	}

	params = argon2Params{
		memory:      memory,
		iterations:  iterations,
		parallelism: uint8(parallelism),
		saltLength:  uint32(len(salt)),
		keyLength:   uint32(len(key)),
	}

	return params, salt, key, nil
}
