package ports

import (
	"context"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

// AuthService defines use-case operations for accounts and sessions.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Validate(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

// TokenValidator is the subset of AuthService the HTTP middleware needs.
// Keeping it narrow lets a server-side session table replace the stateless
// check without touching callers.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (string, error)
}
