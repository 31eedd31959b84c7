// Package seed loads initial directory users from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/helpdesk-api/internal/auth"
	"github.com/spec-kit/helpdesk-api/internal/domain"
	"github.com/spec-kit/helpdesk-api/internal/repository"
)

// UserEntry is one user in the seed file.
type UserEntry struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Level    string `yaml:"level"`
}

type usersFile struct {
	Users []UserEntry `yaml:"users"`
}

// Result counts what a seeding run did.
type Result struct {
	Created int
	Skipped int
}

// Seeder inserts users that are not present yet. Seeded passwords skip the
// length rule applied to API input.
type Seeder struct {
	users      repository.UserRepository
	bcryptCost int
	logger     *zap.Logger
	now        func() time.Time
}

func NewSeeder(users repository.UserRepository, bcryptCost int, logger *zap.Logger) *Seeder {
	return &Seeder{users: users, bcryptCost: bcryptCost, logger: logger, now: time.Now}
}

// LoadFile parses a seed file.
func LoadFile(path string) ([]UserEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var uf usersFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return uf.Users, nil
}

// SeedFromFile loads path and seeds its users.
func (s *Seeder) SeedFromFile(ctx context.Context, path string) (Result, error) {
	entries, err := LoadFile(path)
	if err != nil {
		return Result{}, err
	}
	return s.Seed(ctx, entries)
}

// Seed creates every entry whose email is not taken. Entries without an
// email or password are ignored; an unknown level aborts the run.
func (s *Seeder) Seed(ctx context.Context, entries []UserEntry) (Result, error) {
	var res Result
	for _, e := range entries {
		if e.Email == "" || e.Password == "" {
			res.Skipped++
			continue
		}
		level := domain.UserLevel(e.Level)
		if !level.Valid() {
			return res, fmt.Errorf("seed user %s: invalid level %q", e.Email, e.Level)
		}

		if _, err := s.users.GetByEmail(ctx, e.Email); err == nil {
			s.logger.Info("seed user exists", zap.String("email", e.Email))
			res.Skipped++
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return res, fmt.Errorf("seed user %s: %w", e.Email, err)
		}

		hash, err := auth.HashPassword(e.Password, s.bcryptCost)
		if err != nil {
			return res, fmt.Errorf("seed user %s: %w", e.Email, err)
		}

		now := s.now().UTC()
		user := &domain.User{
			Name:         e.Name,
			Email:        e.Email,
			PasswordHash: hash,
			Level:        level,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("seed user %s: %w", e.Email, err)
		}
		s.logger.Info("seeded user", zap.String("email", e.Email), zap.Int64("id", user.ID))
		res.Created++
	}
	return res, nil
}
