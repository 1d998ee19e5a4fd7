package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercadito/commerce-api/internal/core/domain"
	"github.com/mercadito/commerce-api/internal/core/ports"
)

const defaultMinPasswordLen = 6

// AuthService implements registration, login, and session validation.
type AuthService struct {
	repo           ports.UserRepository
	tokens         *TokenManager
	minPasswordLen int
	logger         zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenManager, minPasswordLen int, logger zerolog.Logger) *AuthService {
	if minPasswordLen <= 0 {
		minPasswordLen = defaultMinPasswordLen
	}
	return &AuthService{repo: repo, tokens: tokens, minPasswordLen: minPasswordLen, logger: logger}
}

// Register creates an account and mints a session token for it.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", fmt.Errorf("%w: email is not valid", domain.ErrInvalidRegistration)
	}
	if len(password) < s.minPasswordLen {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidRegistration, s.minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Mint(created.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, token, nil
}

// Login verifies credentials and mints a session token. A missing account and
// a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(user.ID)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	return token, nil
}

// Validate returns the user id bound to a valid session token.
func (s *AuthService) Validate(ctx context.Context, token string) (string, error) {
	return s.tokens.Validate(ctx, token)
}

// Logout invalidates the presented session before its natural expiry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// Profile returns the account bound to userID.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
