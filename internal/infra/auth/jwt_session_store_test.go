package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"podium/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "test-session-secret"

func TestCookieSessionStore_IssueAndLookup(t *testing.T) {
	store := newCookieSessionStore(testSessionSecret, time.Hour, "podium")
	ctx := context.Background()
	accountID := uuid.New()

	session, err := store.Issue(ctx, accountID)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, accountID, session.AccountID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 2*time.Second)

	got, err := store.Lookup(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, accountID, got)
}

func TestCookieSessionStore_Expired(t *testing.T) {
	store := newCookieSessionStore(testSessionSecret, time.Hour, "podium")
	issuedAt := time.Now()
	store.now = func() time.Time { return issuedAt }

	session, err := store.Issue(context.Background(), uuid.New())
	require.NoError(t, err)

	store.now = func() time.Time { return issuedAt.Add(time.Hour + time.Minute) }
	_, err = store.Lookup(context.Background(), session.Token)
	assert.ErrorIs(t, err, service.ErrSessionInvalid)
}

func TestCookieSessionStore_RejectsForeignTokens(t *testing.T) {
	store := newCookieSessionStore(testSessionSecret, time.Hour, "podium")
	accountID := uuid.New()
	now := time.Now()

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)

		return signed
	}
	validClaims := jwt.RegisteredClaims{
		Subject:   accountID.String(),
		Issuer:    "podium",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	noExpiry := validClaims
	noExpiry.ExpiresAt = nil
	otherIssuer := validClaims
	otherIssuer.Issuer = "someone-else"
	badSubject := validClaims
	badSubject.Subject = "not-a-uuid"

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other-secret"), validClaims)},
		{"wrong algorithm", sign(jwt.SigningMethodHS512, []byte(testSessionSecret), validClaims)},
		{"unsigned", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims)},
		{"missing expiry", sign(jwt.SigningMethodHS256, []byte(testSessionSecret), noExpiry)},
		{"other issuer", sign(jwt.SigningMethodHS256, []byte(testSessionSecret), otherIssuer)},
		{"bad subject", sign(jwt.SigningMethodHS256, []byte(testSessionSecret), badSubject)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Lookup(context.Background(), tt.token)
			assert.ErrorIs(t, err, service.ErrSessionInvalid)
		})
	}
}

func TestCookieSessionStore_TamperedToken(t *testing.T) {
	store := newCookieSessionStore(testSessionSecret, time.Hour, "podium")

	session, err := store.Issue(context.Background(), uuid.New())
	require.NoError(t, err)

	tampered := []byte(session.Token)
	i := strings.Index(session.Token, ".") + 5
	if tampered[i] == 'A' {
		tampered[i] = 'B'
	} else {
		tampered[i] = 'A'
	}

	_, err = store.Lookup(context.Background(), string(tampered))
	assert.ErrorIs(t, err, service.ErrSessionInvalid)
}

func TestCookieSessionStore_RevokeIsAdvisory(t *testing.T) {
	store := newCookieSessionStore(testSessionSecret, time.Hour, "podium")
	ctx := context.Background()

	session, err := store.Issue(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, session.Token))

	_, err = store.Lookup(ctx, session.Token)
	assert.NoError(t, err)
}
