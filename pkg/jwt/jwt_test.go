package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Minute)

	token, expiresAt, err := m.GenerateAccessToken("7b1c", "alice", true)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 5*time.Second)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7b1c", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.Staff)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, _, err := NewManager("one", time.Minute).GenerateAccessToken("u", "bob", false)
	require.NoError(t, err)

	_, err = NewManager("two", time.Minute).ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewManager("s", time.Minute)
	m.ttl = -time.Minute

	token, _, err := m.GenerateAccessToken("u", "bob", false)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	require.Error(t, err)
}
