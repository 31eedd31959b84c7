package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-api/internal/config"
	"github.com/spec-kit/helpdesk-api/internal/domain"
	"github.com/spec-kit/helpdesk-api/internal/repository/repotest"
	"github.com/spec-kit/helpdesk-api/internal/service"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util/errorutil"
)

type authFixture struct {
	users       *repotest.Users
	revocations *repotest.Revocations
	auth        *service.AuthService
	directory   *service.UserService
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	users := repotest.NewUsers()
	revocations := repotest.NewRevocations()
	f := authFixture{
		users:       users,
		revocations: revocations,
		auth: service.NewAuthService(config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 30}, service.AuthDependencies{
			UserRepo:       users,
			RevocationRepo: revocations,
		}),
		directory: newUserService(users),
	}
	_, err := f.directory.Create(context.Background(), ann())
	require.NoError(t, err)
	return f
}

func TestAuthService_LoginThenAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	result, err := f.auth.Login(ctx, service.LoginInput{Email: "ann@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ann@x.com", result.User.Email)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), result.ExpiresAt, 5*time.Second)

	identity, err := f.auth.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, identity.UserID)
	assert.Equal(t, result.User.Level, identity.Level)
}

func TestAuthService_LoginFailuresLookAlike(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, unknownErr := f.auth.Login(ctx, service.LoginInput{Email: "ghost@x.com", Password: "secret123"})
	_, wrongErr := f.auth.Login(ctx, service.LoginInput{Email: "ann@x.com", Password: "wrong"})

	unknown := requireCode(t, unknownErr, apperrors.CodeAuthentication)
	wrong := requireCode(t, wrongErr, apperrors.CodeAuthentication)
	assert.Equal(t, unknown.Message, wrong.Message)
	assert.Equal(t, unknown.HTTPStatus, wrong.HTTPStatus)
	assert.Equal(t, 403, wrong.HTTPStatus)
	assert.Empty(t, wrong.Fields)
}

func TestAuthService_LoginValidation(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Login(context.Background(), service.LoginInput{})
	de := requireCode(t, err, apperrors.CodeValidation)
	assert.Contains(t, de.Fields, "email")
	assert.Contains(t, de.Fields, "password")

	// Email format is not checked at login: the lookup simply misses.
	_, err = f.auth.Login(context.Background(), service.LoginInput{Email: "not-an-email", Password: "x"})
	requireCode(t, err, apperrors.CodeAuthentication)
}

func TestAuthService_LoginStoreError(t *testing.T) {
	f := newAuthFixture(t)
	f.users.Err = errors.New("db down")

	_, err := f.auth.Login(context.Background(), service.LoginInput{Email: "ann@x.com", Password: "secret123"})
	requireCode(t, err, apperrors.CodeInternal)
}

func TestAuthService_LoginAfterDelete(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	users, err := f.directory.List(ctx)
	require.NoError(t, err)
	require.NoError(t, f.directory.Delete(ctx, users[0].ID))

	_, err = f.auth.Login(ctx, service.LoginInput{Email: "ann@x.com", Password: "secret123"})
	requireCode(t, err, apperrors.CodeAuthentication)
}

func TestAuthService_AuthenticateRejectsGarbage(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Authenticate(context.Background(), "not.a.token")
	requireCode(t, err, apperrors.CodeAuthentication)
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	result, err := f.auth.Login(ctx, service.LoginInput{Email: "ann@x.com", Password: "secret123"})
	require.NoError(t, err)
	identity, err := f.auth.Authenticate(ctx, result.Token)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, result.Token))

	ttl := f.revocations.TTL(identity.TokenID)
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)

	_, err = f.auth.Authenticate(ctx, result.Token)
	requireCode(t, err, apperrors.CodeAuthentication)

	err = f.auth.Logout(ctx, result.Token)
	requireCode(t, err, apperrors.CodeAuthentication)

	other, err := f.auth.Login(ctx, service.LoginInput{Email: "ann@x.com", Password: "secret123"})
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, other.Token)
	require.NoError(t, err, "a fresh login is unaffected by an earlier logout")
}

func TestAuthService_RevocationStoreDownFailsClosed(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	result, err := f.auth.Login(ctx, service.LoginInput{Email: "ann@x.com", Password: "secret123"})
	require.NoError(t, err)

	f.revocations.Err = errors.New("redis down")
	_, err = f.auth.Authenticate(ctx, result.Token)
	requireCode(t, err, apperrors.CodeInternal)
}

func TestAuthService_AuthenticateUsesStoredLevel(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	boss, err := f.directory.Create(ctx, service.CreateUserInput{Name: "Boss", Email: "boss@x.com", Password: "secret123", Level: "admin"})
	require.NoError(t, err)
	result, err := f.auth.Login(ctx, service.LoginInput{Email: "boss@x.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.directory.Update(ctx, boss.ID, service.UpdateUserInput{Name: "Boss", Email: "boss@x.com", Level: "user"})
	require.NoError(t, err)

	identity, err := f.auth.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.UserLevelUser, identity.Level)
}

func TestAuthService_AuthenticateDeletedUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	result, err := f.auth.Login(ctx, service.LoginInput{Email: "ann@x.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, f.directory.Delete(ctx, result.User.ID))

	_, err = f.auth.Authenticate(ctx, result.Token)
	requireCode(t, err, apperrors.CodeAuthentication)
}

func TestAuthService_AuthenticateStoreError(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	result, err := f.auth.Login(ctx, service.LoginInput{Email: "ann@x.com", Password: "secret123"})
	require.NoError(t, err)

	f.users.Err = errors.New("db down")
	_, err = f.auth.Authenticate(ctx, result.Token)
	requireCode(t, err, apperrors.CodeInternal)
}
