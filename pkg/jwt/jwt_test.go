package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, expireAt, err := GenerateToken("secret", 42, "alice", 1)
	require.NoError(t, err)
	assert.False(t, expireAt.IsZero())

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateToken("secret", 42, "alice", 1)
	require.NoError(t, err)

	_, err = ParseToken("other", token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("secret", "not-a-token")
	assert.Error(t, err)
}
