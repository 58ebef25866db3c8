package auth

import (
	"context"
	"strings"
	"sync"
	"testing"

	"podium/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func fastArgon2() *argon2idHasher {
	return newArgon2idHasher(config.Argon2Config{
		Memory:      64,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := newBcryptHasher(bcrypt.MinCost)
	password := "StrongPass123!"

	digest, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, digest)
	assert.True(t, hasher.Recognizes(digest))

	assert.True(t, hasher.Verify(password, digest))
	assert.False(t, hasher.Verify("WrongPass123!", digest))
	assert.False(t, hasher.Verify("", digest))

	// Same password hashes differently every time.
	other, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, digest, other)
}

func TestBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, newBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.MaxCost, newBcryptHasher(99).cost)
	assert.Equal(t, 10, newBcryptHasher(10).cost)
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	hasher := newBcryptHasher(bcrypt.MinCost)

	assert.False(t, hasher.Verify("password", ""))
	assert.False(t, hasher.Verify("password", "not-a-digest"))
	assert.False(t, hasher.Verify("password", "$2a$10$tooshort"))
}

func TestArgon2idHasher_HashAndVerify(t *testing.T) {
	hasher := fastArgon2()
	password := "correct horse battery staple"

	digest, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$m=64,t=1,p=1$"))
	assert.True(t, hasher.Recognizes(digest))

	assert.True(t, hasher.Verify(password, digest))
	assert.False(t, hasher.Verify("wrong", digest))

	other, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, digest, other)
}

func TestArgon2idHasher_Defaults(t *testing.T) {
	hasher := newArgon2idHasher(config.Argon2Config{})

	assert.Equal(t, argon2Params{
		memory:      defaultArgon2Memory,
		iterations:  defaultArgon2Iterations,
		parallelism: defaultArgon2Parallelism,
		saltLength:  defaultArgon2SaltLength,
		keyLength:   defaultArgon2KeyLength,
	}, hasher.params)
}

func TestArgon2idHasher_MalformedDigest(t *testing.T) {
	hasher := fastArgon2()
	valid, err := hasher.Hash("password")
	require.NoError(t, err)
	parts := strings.Split(valid, "$")

	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"wrong algorithm", "$argon2i$v=19$m=64,t=1,p=1$" + parts[4] + "$" + parts[5]},
		{"missing segment", "$argon2id$v=19$m=64,t=1,p=1$" + parts[4]},
		{"bad version", "$argon2id$v=16$m=64,t=1,p=1$" + parts[4] + "$" + parts[5]},
		{"bad params", "$argon2id$v=19$memory=64$" + parts[4] + "$" + parts[5]},
		{"huge memory", "$argon2id$v=19$m=4294967295,t=1,p=1$" + parts[4] + "$" + parts[5]},
		{"zero iterations", "$argon2id$v=19$m=64,t=0,p=1$" + parts[4] + "$" + parts[5]},
		{"too many threads", "$argon2id$v=19$m=64,t=1,p=300$" + parts[4] + "$" + parts[5]},
		{"bad salt encoding", "$argon2id$v=19$m=64,t=1,p=1$!!!$" + parts[5]},
		{"short key", "$argon2id$v=19$m=64,t=1,p=1$" + parts[4] + "$AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, hasher.Verify("password", tt.digest))
		})
	}
}

func TestPasswordHasher_VerifiesEitherAlgorithm(t *testing.T) {
	bcryptAlg := newBcryptHasher(bcrypt.MinCost)
	argon2Alg := fastArgon2()
	hasher := newPasswordHasher(argon2Alg, 2, bcryptAlg, argon2Alg)
	ctx := context.Background()

	digest, err := hasher.Hash(ctx, "password-one")
	require.NoError(t, err)
	assert.True(t, argon2Alg.Recognizes(digest), "new digests use the primary algorithm")
	assert.True(t, hasher.Verify(ctx, "password-one", digest))

	legacy, err := bcryptAlg.Hash("password-two")
	require.NoError(t, err)
	assert.True(t, hasher.Verify(ctx, "password-two", legacy))
	assert.False(t, hasher.Verify(ctx, "password-one", legacy))

	assert.False(t, hasher.Verify(ctx, "password-one", "plain-text"))
}

func TestPasswordHasher_CancelledContext(t *testing.T) {
	bcryptAlg := newBcryptHasher(bcrypt.MinCost)
	hasher := newPasswordHasher(bcryptAlg, 1, bcryptAlg)

	digest, err := bcryptAlg.Hash("password")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = hasher.Hash(ctx, "password")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, hasher.Verify(ctx, "password", digest))
}

func TestPasswordHasher_Concurrent(t *testing.T) {
	bcryptAlg := newBcryptHasher(bcrypt.MinCost)
	hasher := newPasswordHasher(bcryptAlg, 2, bcryptAlg)
	ctx := context.Background()

	var wg sync.WaitGroup
	digests := make([]string, 8)
	for i := range digests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			digest, err := hasher.Hash(ctx, "shared-password")
			assert.NoError(t, err)
			digests[i] = digest
		}(i)
	}
	wg.Wait()

	for _, digest := range digests {
		assert.True(t, hasher.Verify(ctx, "shared-password", digest))
	}
}
