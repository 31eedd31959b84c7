package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-api/internal/domain"
)

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRequest payload shared by store and update.
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Level    string `json:"level"`
}

// UserResponse is the public view of a user. The password hash is never included.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummaryResponse is a row of the user listing.
type UserSummaryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Level string `json:"level"`
}

// LoginResponse standard response for POST /login.
type LoginResponse struct {
	Success   bool         `json:"success"`
	DataUser  UserResponse `json:"datauser"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// DataResponse wraps a single resource with a status message.
type DataResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    UserResponse `json:"data"`
}

// MessageResponse carries only a status message.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewUserResponse projects a user onto its public fields.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Level:     string(user.Level),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserSummaryResponses converts listing rows, returning an empty slice for none.
func NewUserSummaryResponses(users []domain.UserSummary) []UserSummaryResponse {
	out := make([]UserSummaryResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummaryResponse{ID: u.ID, Name: u.Name, Email: u.Email, Level: string(u.Level)})
	}
	return out
}
