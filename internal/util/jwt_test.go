package util

import (
	"study_portal_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-release"

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{Email: "student@sppu.com", Role: model.RoleUser}
	user.ID = 7

	token, err := GenerateJWT(user, testSecret, 24*time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "student@sppu.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, uint(7), claims.UserID)
	assert.False(t, claims.IsAdmin())
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseJWTRejectsExpiredAndForeignTokens(t *testing.T) {
	user := &model.User{Email: "admin@sppu.com", Role: model.RoleAdmin}

	expired, err := GenerateJWT(user, testSecret, -time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(expired, testSecret)
	assert.Error(t, err)

	other, err := GenerateJWT(user, "another-secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(other, testSecret)
	assert.Error(t, err)
}
