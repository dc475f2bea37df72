package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ResolveToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestResolveTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")

	_, err := ResolveToken("not-a-token")
	assert.Error(t, err)
}

func TestResolveTokenRejectsTampering(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken(42, "user@example.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = ResolveToken(tampered)
	assert.Error(t, err)
}

func TestResolveTokenRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("first-secret")

	token, err := GenerateToken(7, "user@example.com")
	require.NoError(t, err)

	SetJWTSecret("second-secret")

	_, err = ResolveToken(token)
	assert.Error(t, err)
}
