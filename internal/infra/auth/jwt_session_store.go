package auth

import (
	"context"
	"time"

	"podium/internal/domain/entity"
	"podium/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// cookieSessionStore keeps the whole session in a signed HS256 token.
// Nothing is stored server-side, so Revoke cannot invalidate a token before it expires.
type cookieSessionStore struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func newCookieSessionStore(secret string, ttl time.Duration, issuer string) *cookieSessionStore {
	return &cookieSessionStore{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue signs a token carrying the account id and a fixed expiry.
func (s *cookieSessionStore) Issue(_ context.Context, accountID uuid.UUID) (*entity.Session, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign session token")
	}

	return &entity.Session{
		Token:     signed,
		AccountID: accountID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Lookup verifies the signature and expiry and returns the subject account id.
func (s *cookieSessionStore) Lookup(_ context.Context, tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, service.ErrSessionInvalid
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, errors.Wrapf(service.ErrSessionInvalid, "parse token: %v", err)
	}
	if !token.Valid {
		return uuid.Nil, service.ErrSessionInvalid
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrapf(service.ErrSessionInvalid, "parse subject: %v", err)
	}

	return accountID, nil
}

// Revoke is a no-op: the client drops the cookie, but a copied token stays valid until it expires.
func (s *cookieSessionStore) Revoke(context.Context, string) error {
	return nil
}
