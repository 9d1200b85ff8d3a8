package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	signingKey := []byte("test-signing-key")

	t.Run("round trip preserves the claims", func(t *testing.T) {
		token, err := GenerateToken(signingKey, 42, "some-agent")
		require.NoError(t, err)

		claims, err := ParseToken(signingKey, token)

		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "some-agent", claims.UserAgent)
	})

	t.Run("a token signed with a different key is rejected", func(t *testing.T) {
		token, err := GenerateToken([]byte("other-key"), 42, "some-agent")
		require.NoError(t, err)

		_, err = ParseToken(signingKey, token)

		assert.Error(t, err)
	})

	t.Run("garbage input is rejected", func(t *testing.T) {
		_, err := ParseToken(signingKey, "not.a.token")

		assert.Error(t, err)
	})
}
