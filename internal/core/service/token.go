package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

// RevocationStore marks sessions as invalidated before their natural expiry.
// A nil store means pure stateless validation.
type RevocationStore interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// TokenManager mints and validates HS256 session tokens. Validity is derived
// from the token's own signed contents; the optional revocation store is the
// only server-side state consulted.
type TokenManager struct {
	secret      string
	ttl         time.Duration
	revocations RevocationStore
}

func NewTokenManager(secret string, ttl time.Duration, revocations RevocationStore) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: secret, ttl: ttl, revocations: revocations}
}

// Mint issues a signed token bound to userID.
func (m *TokenManager) Mint(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": generateTokenID(),
		"exp": time.Now().Add(m.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(m.secret))
}

// Validate parses and verifies a token and returns the bound user id.
// All failure modes collapse to domain.ErrInvalidToken so callers cannot
// distinguish malformed, expired, tampered, and revoked tokens.
func (m *TokenManager) Validate(ctx context.Context, token string) (string, error) {
	userID, jti, err := m.parse(token)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	if m.revocations != nil && jti != "" {
		revoked, err := m.revocations.IsRevoked(ctx, jti)
		if err != nil {
			return "", fmt.Errorf("revocation check: %w", err)
		}
		if revoked {
			return "", domain.ErrInvalidToken
		}
	}

	return userID, nil
}

// Revoke invalidates the token until its natural expiry. Returns
// domain.ErrInvalidToken when the token does not verify, so a logout with a
// bad token is indistinguishable from any other 401.
func (m *TokenManager) Revoke(ctx context.Context, token string) error {
	_, jti, err := m.parse(token)
	if err != nil {
		return domain.ErrInvalidToken
	}
	if m.revocations == nil {
		return nil
	}
	return m.revocations.Revoke(ctx, jti, m.ttl)
}

func (m *TokenManager) parse(token string) (userID, jti string, err error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(m.secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", "", domain.ErrInvalidToken
	}

	userID, _ = claims["sub"].(string)
	if userID == "" {
		return "", "", domain.ErrInvalidToken
	}
	jti, _ = claims["jti"].(string)
	return userID, jti, nil
}

// generateTokenID returns a random session identifier used as the jti claim.
func generateTokenID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("%X", b)
}
