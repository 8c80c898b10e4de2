package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionManager_GenerateAndVerify(t *testing.T) {
	sm := NewSessionManager()

	token, err := sm.GenerateSessionToken("user-1", time.Minute)
	assert.NoError(t, err)
	assert.Len(t, token, 64)

	userID, err := sm.VerifySessionToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestSessionManager_UnknownTokenInvalid(t *testing.T) {
	sm := NewSessionManager()

	_, err := sm.VerifySessionToken("does-not-exist")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionManager_ExpiredTokenRejected(t *testing.T) {
	sm := NewSessionManager()

	token, err := sm.GenerateSessionToken("user-1", -time.Second)
	assert.NoError(t, err)

	_, err = sm.VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrExpiredSessionToken)
}

func TestSessionManager_DeleteToken(t *testing.T) {
	sm := NewSessionManager()

	token, _ := sm.GenerateSessionToken("user-1", time.Minute)
	sm.DeleteSessionToken(token)

	_, err := sm.VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionManager_CleanupRemovesOnlyExpired(t *testing.T) {
	sm := NewSessionManager()

	expired, _ := sm.GenerateSessionToken("user-1", -time.Second)
	live, _ := sm.GenerateSessionToken("user-2", time.Minute)

	removed := sm.CleanupExpiredTokens()
	assert.Equal(t, 1, removed)

	_, err := sm.VerifySessionToken(expired)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	userID, err := sm.VerifySessionToken(live)
	assert.NoError(t, err)
	assert.Equal(t, "user-2", userID)
}
