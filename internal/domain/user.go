package domain

import "time"

// UserLevel is the flat privilege label carried by every user.
type UserLevel string

const (
	UserLevelAdmin UserLevel = "admin"
	UserLevelUser  UserLevel = "user"
)

// Valid reports whether the level is one of the permitted literals.
func (l UserLevel) Valid() bool {
	return l == UserLevelAdmin || l == UserLevelUser
}

// User is the identity and credential record.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Level        UserLevel
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the projection returned by directory listings.
type UserSummary struct {
	ID    int64
	Name  string
	Email string
	Level UserLevel
}
