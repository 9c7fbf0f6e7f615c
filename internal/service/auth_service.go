package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jubbler/portal-service/internal/auth"
	"github.com/jubbler/portal-service/internal/config"
	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/repository"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

// AuthService implements the portal's mock login: accounts are matched by
// email only and any password is accepted. Password handling is out of scope
// for the portal; the gate that matters is the account's approval status.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:  users,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// LoginResult bundles the authenticated user with the issued token.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Login authenticates by email. The password parameter exists only to keep
// the call shape of a real login; its value never matters.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("email required", nil)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	switch user.Status {
	case domain.UserStatusPending:
		return nil, apperrors.NewForbidden("account pending approval")
	case domain.UserStatusRejected:
		return nil, apperrors.NewForbidden("account rejected")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// ProfileUpdateInput carries the editable profile fields.
type ProfileUpdateInput struct {
	Name  string
	Phone string
}

// UpdateProfile edits the caller's own name and phone.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		user.Phone = phone
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword validates the request shape and succeeds without storing
// anything; the portal has no password store.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if strings.TrimSpace(next) == "" {
		return apperrors.NewValidationError("new password required", nil)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return err
	}
	return nil
}
