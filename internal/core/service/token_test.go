package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

type stubRevocationStore struct {
	revoked map[string]bool
}

func newStubRevocationStore() *stubRevocationStore {
	return &stubRevocationStore{revoked: make(map[string]bool)}
}

func (s *stubRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], nil
}

func (s *stubRevocationStore) Revoke(_ context.Context, jti string, _ time.Duration) error {
	s.revoked[jti] = true
	return nil
}

func TestTokenManager_MintValidateRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, nil)

	token, err := m.Mint("user_1")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	userID, err := m.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if userID != "user_1" {
		t.Fatalf("expected user_1, got %s", userID)
	}
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "user_1",
		"jti": "abc",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	m := NewTokenManager("secret", time.Hour, nil)
	if _, err := m.Validate(context.Background(), signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	other := NewTokenManager("other-secret", time.Hour, nil)
	token, err := other.Mint("user_1")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	m := NewTokenManager("secret", time.Hour, nil)
	if _, err := m.Validate(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenManager_RejectsTampered(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, nil)
	token, err := m.Mint("user_1")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	tampered := token + "tamper"
	if _, err := m.Validate(context.Background(), tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestTokenManager_RejectsMissingSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"jti": "abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	m := NewTokenManager("secret", time.Hour, nil)
	if _, err := m.Validate(context.Background(), signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing sub, got %v", err)
	}
}

func TestTokenManager_RevocationBlocksToken(t *testing.T) {
	store := newStubRevocationStore()
	m := NewTokenManager("secret", time.Hour, store)

	token, err := m.Mint("user_1")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := m.Revoke(context.Background(), token); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := m.Validate(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after revoke, got %v", err)
	}

	// A second session for the same user is unaffected.
	fresh, err := m.Mint("user_1")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := m.Validate(context.Background(), fresh); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}
}

func TestTokenManager_RevokeRejectsInvalidToken(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, newStubRevocationStore())
	if err := m.Revoke(context.Background(), "garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
