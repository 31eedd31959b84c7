package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/helpdesk-api/pkg/util/errorutil"
)

type signup struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
	Level    string `json:"level" validate:"required,oneof=admin user"`
}

func TestStructValid(t *testing.T) {
	v := MustNew()

	err := v.Struct(signup{Name: "Ann", Email: "ann@x.com", Level: "user"})
	require.NoError(t, err)
}

func TestStructCollectsEveryField(t *testing.T) {
	v := MustNew()

	err := v.Struct(signup{Email: "not-an-email", Password: "short", Level: "root"})
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidation, de.Code)
	assert.Equal(t, 422, de.HTTPStatus)
	assert.ElementsMatch(t, []string{"name", "email", "password", "level"}, keys(de.Fields))
	assert.Equal(t, []string{"name is a required field"}, de.Fields["name"])
	assert.Equal(t, []string{"email must be a valid email address"}, de.Fields["email"])
	assert.Contains(t, de.Fields["level"][0], "admin user")
}

func TestStructMaxLength(t *testing.T) {
	v := MustNew()
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}

	err := v.Struct(signup{Name: string(long), Email: "ann@x.com", Level: "admin"})
	de := apperrors.ToDomainError(err)
	require.Contains(t, de.Fields, "name")
	assert.NotContains(t, de.Fields, "email")
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
