package auth

import (
	"testing"
	"time"

	"github.com/paydivvy/paydivvy/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Now()}
	manager := NewTokenManager("test-secret-key-32-bytes-long!!!", 24*time.Hour, clock)

	token, err := manager.Generate("user-uid-1", "user@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-uid-1", claims.UserUid)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestTokenManager_Validate_ExpiredToken(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Now().Add(-48 * time.Hour)}
	manager := NewTokenManager("test-secret-key-32-bytes-long!!!", 24*time.Hour, clock)

	token, err := manager.Generate("user-uid-1", "user@example.com")
	assert.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Validate_WrongSecret(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Now()}
	manager := NewTokenManager("secret-one", 24*time.Hour, clock)
	other := NewTokenManager("secret-two", 24*time.Hour, clock)

	token, err := manager.Generate("user-uid-1", "user@example.com")
	assert.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	assert.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("abc")
	assert.ErrorIs(t, err, ErrWeakPassword)
}
