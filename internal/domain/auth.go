package domain

import "time"

// Identity is the caller proven by a valid access token.
type Identity struct {
	UserID    int64
	Email     string
	Level     UserLevel
	TokenID   string
	ExpiresAt time.Time
}
