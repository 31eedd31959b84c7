package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-api/internal/auth"
	"github.com/spec-kit/helpdesk-api/internal/domain"
	"github.com/spec-kit/helpdesk-api/internal/repository"
	"github.com/spec-kit/helpdesk-api/internal/validation"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util/errorutil"
)

const emailTakenMessage = "email has already been taken"

// CreateUserInput describes a new directory entry.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Level    string `json:"level" validate:"required,oneof=admin user"`
}

// UpdateUserInput replaces a user's fields; an empty Password keeps the current hash.
type UpdateUserInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
	Level    string `json:"level" validate:"required,oneof=admin user"`
}

// UserService implements the user directory operations.
type UserService struct {
	users      repository.UserRepository
	validator  *validation.Validator
	bcryptCost int
	now        func() time.Time
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Validator  *validation.Validator
	BcryptCost int
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	v := deps.Validator
	if v == nil {
		v = validation.MustNew()
	}
	return &UserService{
		users:      deps.UserRepo,
		validator:  v,
		bcryptCost: deps.BcryptCost,
		now:        time.Now,
	}
}

// List returns every user without credentials, ordered by id.
func (s *UserService) List(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("list users: %w", err))
	}
	return users, nil
}

// Create validates input, hashes the password and stores the user.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(ctx, input.Email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Level:        domain.UserLevel(input.Level),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapWriteError(err)
	}
	return user, nil
}

// Show returns the user identified by id.
func (s *UserService) Show(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, apperrors.NewInternalError(fmt.Errorf("get user %d: %w", id, err))
	}
	return user, nil
}

// Update replaces name, email and level, and the password when one is supplied.
func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.Show(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(ctx, input.Email, id); err != nil {
		return nil, err
	}

	if input.Password != "" {
		hash, err := s.hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.Name = input.Name
	user.Email = input.Email
	user.Level = domain.UserLevel(input.Level)
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, mapWriteError(err)
	}
	return user, nil
}

// Delete removes the user permanently.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User")
		}
		return apperrors.NewInternalError(fmt.Errorf("delete user %d: %w", id, err))
	}
	return nil
}

// hashPassword reports multibyte input that passes the rune-counted max tag
// but exceeds bcrypt's byte limit as a field error.
func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", apperrors.NewFieldError("password", fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
		}
		return "", apperrors.NewInternalError(fmt.Errorf("hash password: %w", err))
	}
	return hash, nil
}

func (s *UserService) ensureEmailAvailable(ctx context.Context, email string, excludeID int64) error {
	taken, err := s.users.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("check email: %w", err))
	}
	if taken {
		return apperrors.NewFieldError("email", emailTakenMessage)
	}
	return nil
}

// mapWriteError covers the race between the uniqueness check and the write.
func mapWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return apperrors.NewConflict(emailTakenMessage, err)
	}
	return apperrors.NewInternalError(err)
}
