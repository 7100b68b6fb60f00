package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeekClaims(t *testing.T) {
	t.Run("reads subject and expiry without a key", func(t *testing.T) {
		exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "a@b.com",
			ExpiresAt: jwt.NewNumericDate(exp),
		})
		signed, err := token.SignedString([]byte("server-side-secret"))
		require.NoError(t, err)

		claims, ok := PeekClaims(signed)
		require.True(t, ok)
		assert.Equal(t, "a@b.com", claims.Subject)
		assert.True(t, claims.ExpiresAt.Equal(exp))
	})

	t.Run("opaque tokens are not an error, just not peekable", func(t *testing.T) {
		_, ok := PeekClaims("not-a-jwt")
		assert.False(t, ok)
	})
}
