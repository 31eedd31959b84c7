package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	cause := errors.New("connection reset")

	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewFieldError("email", "email is a required field"), CodeValidation, http.StatusUnprocessableEntity},
		{"authentication", NewAuthenticationFailed("invalid email or password"), CodeAuthentication, http.StatusForbidden},
		{"wrapped not found", fmt.Errorf("show: %w", NewNotFound("User")), CodeNotFound, http.StatusNotFound},
		{"conflict", NewConflict("email already exists", cause), CodeConflict, http.StatusConflict},
		{"no rows", pgx.ErrNoRows, CodeNotFound, http.StatusNotFound},
		{"fiber not found", fiber.ErrNotFound, CodeNotFound, http.StatusNotFound},
		{"fiber unauthorized", fiber.ErrUnauthorized, CodeAuthentication, http.StatusForbidden},
		{"fiber bad request", fiber.ErrBadRequest, CodeBadRequest, http.StatusBadRequest},
		{"unknown", cause, CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			de := ToDomainError(tc.err)
			require.NotNil(t, de)
			assert.Equal(t, tc.code, de.Code)
			assert.Equal(t, tc.status, de.HTTPStatus)
		})
	}
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error: disk full", err.Error())
}

func TestNewFieldError(t *testing.T) {
	de := ToDomainError(NewFieldError("email", "email has already been taken"))

	assert.Equal(t, map[string][]string{"email": {"email has already been taken"}}, de.Fields)
	assert.Equal(t, "Validation errors", de.Message)
}
