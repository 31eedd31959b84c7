package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-api/internal/auth"
	"github.com/spec-kit/helpdesk-api/internal/config"
	"github.com/spec-kit/helpdesk-api/internal/domain"
	"github.com/spec-kit/helpdesk-api/internal/repository"
	"github.com/spec-kit/helpdesk-api/internal/validation"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util/errorutil"
)

const invalidCredentialsMessage = "invalid email or password"

// LoginInput carries the submitted credential pair.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates login, logout and token verification.
type AuthService struct {
	users       repository.UserRepository
	revocations repository.TokenRevocationRepository
	tokenMgr    *auth.TokenManager
	validator   *validation.Validator
	now         func() time.Time
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	RevocationRepo repository.TokenRevocationRepository
	Validator      *validation.Validator
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	v := deps.Validator
	if v == nil {
		v = validation.MustNew()
	}
	return &AuthService{
		users:       deps.UserRepo,
		revocations: deps.RevocationRepo,
		tokenMgr:    auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		validator:   v,
		now:         time.Now,
	}
}

// Login verifies the credential pair and issues an access token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAuthenticationFailed(invalidCredentialsMessage)
		}
		return nil, apperrors.NewInternalError(fmt.Errorf("lookup user: %w", err))
	}
	if err := auth.ComparePassword(user.PasswordHash, input.Password); err != nil {
		return nil, apperrors.NewAuthenticationFailed(invalidCredentialsMessage)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("sign token: %w", err))
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// Authenticate verifies signature, expiry and revocation of token, then
// reloads the user so the identity carries the stored level. A token whose
// user was deleted no longer authenticates.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewAuthenticationFailed("invalid or expired token")
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("check revocation: %w", err))
	}
	if revoked {
		return nil, apperrors.NewAuthenticationFailed("invalid or expired token")
	}

	identity := claims.Identity()
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAuthenticationFailed("invalid or expired token")
		}
		return nil, apperrors.NewInternalError(fmt.Errorf("load user %d: %w", identity.UserID, err))
	}
	identity.Email = user.Email
	identity.Level = user.Level
	return identity, nil
}

// Logout revokes token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	identity, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}

	ttl := identity.ExpiresAt.Sub(s.now())
	if err := s.revocations.Revoke(ctx, identity.TokenID, ttl); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("revoke token: %w", err))
	}
	return nil
}
