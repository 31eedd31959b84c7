package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-api/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: 42, Name: "Ann", Email: "ann@x.com", Level: domain.UserLevelUser}
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", 15)

	token, exp, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)

	identity := claims.Identity()
	assert.Equal(t, int64(42), identity.UserID)
	assert.Equal(t, "ann@x.com", identity.Email)
	assert.Equal(t, domain.UserLevelUser, identity.Level)
	assert.NotEmpty(t, identity.TokenID)
	assert.Equal(t, exp.Unix(), identity.ExpiresAt.Unix())
}

func TestTokensHaveDistinctIDs(t *testing.T) {
	tm := NewTokenManager("secret", 15)

	a, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	b, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	ca, err := tm.ParseToken(a)
	require.NoError(t, err)
	cb, err := tm.ParseToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	issued := time.Now().Add(-2 * time.Hour)
	tm.now = func() time.Time { return issued }

	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ParseToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret", 5).GenerateToken(testUser())
	require.NoError(t, err)

	_, err = NewTokenManager("other", 5).ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forged := parts[0] + "." + parts[1] + "x." + parts[2]

	_, err = tm.ParseToken(forged)
	require.Error(t, err)
}

func TestParseTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		Email: "ann@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "abc",
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 5).ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsNonNumericSubject(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "abc",
			Subject:   "ann",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 5).ParseToken(token)
	require.Error(t, err)
}
