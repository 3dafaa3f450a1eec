package user

import (
	"context"
	"testing"
	"time"

	"github.com/paydivvy/paydivvy/internal/auth"
	"github.com/paydivvy/paydivvy/internal/utils"
	"github.com/stretchr/testify/assert"
)

func setupUserService() (*ServiceImpl, *StubUserRepo) {
	repo := NewStubUserRepo()
	tokens := auth.NewTokenManager("test-secret", 24*time.Hour, &utils.MockClock{FixedNow: time.Now()})
	return NewUserService(repo, tokens), repo
}

func TestServiceImpl_SignUp(t *testing.T) {
	service, _ := setupUserService()
	ctx := context.Background()

	user, token, err := service.SignUp(ctx, "Alice@Example.com", "hunter22")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, user.Uid)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.DisplayName)
	assert.Equal(t, PasswordProvider, user.Provider)
}

func TestServiceImpl_SignUp_DuplicateEmail(t *testing.T) {
	service, _ := setupUserService()
	ctx := context.Background()

	_, _, err := service.SignUp(ctx, "alice@example.com", "hunter22")
	assert.NoError(t, err)

	_, _, err = service.SignUp(ctx, "alice@example.com", "hunter23")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestServiceImpl_SignUp_InvalidInput(t *testing.T) {
	service, _ := setupUserService()
	ctx := context.Background()

	_, _, err := service.SignUp(ctx, "not-an-email", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, _, err = service.SignUp(ctx, "alice@example.com", "short")
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestServiceImpl_SignIn(t *testing.T) {
	service, _ := setupUserService()
	ctx := context.Background()

	_, _, err := service.SignUp(ctx, "alice@example.com", "hunter22")
	assert.NoError(t, err)

	user, token, err := service.SignIn(ctx, "alice@example.com", "hunter22")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", user.Email)

	_, _, err = service.SignIn(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.SignIn(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestServiceImpl_GetOrCreateGoogleUser(t *testing.T) {
	service, _ := setupUserService()
	ctx := context.Background()

	first, token, err := service.GetOrCreateGoogleUser(ctx, "google-123", "bob@example.com", "Bob")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, GoogleProvider, first.Provider)

	// Signing in again with the same Google account must not create a second user.
	second, _, err := service.GetOrCreateGoogleUser(ctx, "google-123", "bob@example.com", "Bob")
	assert.NoError(t, err)
	assert.Equal(t, first.Uid, second.Uid)

	// A Google account cannot sign in with a password.
	_, _, err = service.SignIn(ctx, "bob@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
