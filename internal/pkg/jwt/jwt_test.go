//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/user"
	"stayhub/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	userID := uuid.New()

	t.Run("generate and validate roundtrip", func(t *testing.T) {
		svc := jwt.NewService("test-secret", time.Hour)

		token, err := svc.GenerateToken(userID, user.RoleHost)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "host", claims.Role)
	})

	t.Run("expired token", func(t *testing.T) {
		svc := jwt.NewService("test-secret", -time.Minute)

		token, err := svc.GenerateToken(userID, user.RoleGuest)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := jwt.NewService("secret-a", time.Hour).GenerateToken(userID, user.RoleGuest)
		require.NoError(t, err)

		_, err = jwt.NewService("secret-b", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage input", func(t *testing.T) {
		svc := jwt.NewService("test-secret", time.Hour)
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
