package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret")

	token, err := manager.GenerateToken("user-1", "regular", time.Minute)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, role, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "regular", role)
}

func TestJWTManager_RoleClaimSurvives(t *testing.T) {
	manager := NewJWTManager("test-secret")

	token, err := manager.GenerateToken("admin-1", "admin", time.Minute)
	assert.NoError(t, err)

	_, role, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", role)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret")

	token, err := manager.GenerateToken("user-1", "regular", -time.Minute)
	assert.NoError(t, err)

	_, _, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredJWTToken)
}

func TestJWTManager_WrongSecretRejected(t *testing.T) {
	manager := NewJWTManager("test-secret")
	other := NewJWTManager("other-secret")

	token, err := manager.GenerateToken("user-1", "regular", time.Minute)
	assert.NoError(t, err)

	_, _, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_GarbageTokenRejected(t *testing.T) {
	manager := NewJWTManager("test-secret")

	_, _, err := manager.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
