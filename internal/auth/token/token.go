// Package token issues and verifies the bearer tokens that guard the
// interview API. Tokens are signed JWTs whose jti is tracked in Redis, so
// logout actually revokes: a token that verifies cryptographically but is
// missing from the store is rejected.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const TokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("token: invalid or expired token")

// Claims carried by every issued token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies signed bearer tokens.
type Issuer struct {
	secret []byte
	store  Store
}

func NewIssuer(secret string, store Store) *Issuer {
	return &Issuer{secret: []byte(secret), store: store}
}

// Issue creates a token for userID, records it as active, and returns the
// signed string.
func (i *Issuer) Issue(ctx context.Context, userID, username string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(TokenTTL)

	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}

	if err := i.store.Put(ctx, Record{
		TokenID:   claims.ID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", fmt.Errorf("token: persist: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and expiry of raw and confirms the token is
// still active in the store. It returns the authenticated user ID.
func (i *Issuer) Verify(ctx context.Context, raw string) (string, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("token: unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	// A store failure is a backend outage, not an invalid token; callers
	// must be able to tell the two apart.
	rec, err := i.store.Get(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("token: lookup: %w", err)
	}
	if rec == nil || rec.UserID != claims.Subject {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// Revoke removes the token from the active store. Safe to call with a
// malformed token; revocation is best-effort and idempotent.
func (i *Issuer) Revoke(ctx context.Context, raw string) error {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil || claims.ID == "" {
		return nil
	}
	return i.store.Delete(ctx, claims.ID)
}
