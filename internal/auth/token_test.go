package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifier(t *testing.T) {
	const secret = "test-secret"
	verifier := NewJWTVerifier(secret)

	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateToken(secret, Identity{UID: "u1", Email: "u1@example.com"}, time.Hour)
		require.NoError(t, err)

		id, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", id.UID)
		assert.Equal(t, "u1@example.com", id.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken("another-secret", Identity{UID: "u1", Email: "u1@example.com"}, time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateToken(secret, Identity{UID: "u1", Email: "u1@example.com"}, -time.Minute)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.Error(t, err)
	})

	t.Run("missing uid", func(t *testing.T) {
		token, err := GenerateToken(secret, Identity{Email: "u1@example.com"}, time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := verifier.Verify("not-a-token")
		assert.Error(t, err)
	})
}
