// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-api/internal/domain"
	"github.com/spec-kit/helpdesk-api/internal/repository"
)

// Users is an in-memory repository.UserRepository with a unique email index.
type Users struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.User
	// Err, when set, is returned by every call.
	Err error
}

// NewUsers returns an empty store.
func NewUsers() *Users {
	return &Users{rows: make(map[int64]domain.User)}
}

var _ repository.UserRepository = (*Users)(nil)

func (u *Users) List(_ context.Context) ([]domain.UserSummary, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	out := make([]domain.UserSummary, 0, len(u.rows))
	for _, row := range u.rows {
		out = append(out, domain.UserSummary{ID: row.ID, Name: row.Name, Email: row.Email, Level: row.Level})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (u *Users) Create(_ context.Context, user *domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	if u.emailUsedLocked(user.Email, 0) {
		return repository.ErrDuplicateEmail
	}
	u.nextID++
	user.ID = u.nextID
	u.rows[user.ID] = *user
	return nil
}

func (u *Users) Update(_ context.Context, user *domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	if _, ok := u.rows[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	if u.emailUsedLocked(user.Email, user.ID) {
		return repository.ErrDuplicateEmail
	}
	u.rows[user.ID] = *user
	return nil
}

func (u *Users) Delete(_ context.Context, id int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	if _, ok := u.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(u.rows, id)
	return nil
}

func (u *Users) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	row, ok := u.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &row, nil
}

func (u *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	for _, row := range u.rows {
		if row.Email == email {
			return &row, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (u *Users) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return false, u.Err
	}
	return u.emailUsedLocked(email, excludeID), nil
}

// Count returns the number of stored users.
func (u *Users) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.rows)
}

func (u *Users) emailUsedLocked(email string, excludeID int64) bool {
	for id, row := range u.rows {
		if id != excludeID && row.Email == email {
			return true
		}
	}
	return false
}

// Revocations is an in-memory repository.TokenRevocationRepository.
type Revocations struct {
	mu      sync.Mutex
	entries map[string]time.Duration
	Err     error
}

// NewRevocations returns an empty store.
func NewRevocations() *Revocations {
	return &Revocations{entries: make(map[string]time.Duration)}
}

var _ repository.TokenRevocationRepository = (*Revocations)(nil)

func (r *Revocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if ttl > 0 {
		r.entries[tokenID] = ttl
	}
	return nil
}

func (r *Revocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	_, ok := r.entries[tokenID]
	return ok, nil
}

// TTL returns the lifetime a token was revoked for.
func (r *Revocations) TTL(tokenID string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[tokenID]
}
