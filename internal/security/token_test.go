package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-0123456789"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret)

	tokenString, err := tm.GenerateStaffToken("emp-1", "hr@corp.example.com", []string{"hr", "admin"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := tm.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.Equal(t, "hr@corp.example.com", claims.Email)
	assert.Equal(t, []string{"hr", "admin"}, claims.Roles)
	assert.Equal(t, "talentdesk", claims.Issuer)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager(testSecret)

	tokenString, err := tm.GenerateStaffToken("emp-1", "hr@corp.example.com", nil, -time.Minute)
	require.NoError(t, err)

	_, err = tm.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret)
	other := NewTokenManager("a-completely-different-secret-value-9876543210")

	tokenString, err := tm.GenerateStaffToken("emp-1", "", nil, time.Hour)
	require.NoError(t, err)

	_, err = other.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_GarbageToken(t *testing.T) {
	tm := NewTokenManager(testSecret)

	_, err := tm.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewPublicToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewPublicToken()
		require.NoError(t, err)
		assert.Len(t, token, 64)
		assert.Regexp(t, "^[0-9a-f]+$", token)
		assert.False(t, seen[token], "tokens must not repeat")
		seen[token] = true
	}
}
