package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars!!",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "resto-backend",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService()
	tenantID := uuid.New()
	userID := uuid.New()
	branchID := uuid.New()

	token, expiresAt, err := svc.GenerateAccessToken(GenerateTokenInput{
		TenantID:  tenantID,
		UserID:    userID,
		Username:  "chef",
		Role:      "manager",
		BranchIDs: []uuid.UUID{branchID},
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "chef", claims.Username)
	assert.Equal(t, "manager", claims.Role)
	require.Len(t, claims.BranchIDs, 1)
	assert.Equal(t, branchID.String(), claims.BranchIDs[0])
}

func TestJWTService_ValidateAccessToken_Invalid(t *testing.T) {
	svc := newTestService()

	t.Run("rejects garbage token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken("not-a-token")
		assert.Nil(t, claims)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-key-also-32-chars!!!",
			AccessTokenExpiration: 15 * time.Minute,
			Issuer:                "resto-backend",
		})
		token, _, err := other.GenerateAccessToken(GenerateTokenInput{
			TenantID: uuid.New(),
			UserID:   uuid.New(),
			Username: "chef",
		})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(token)
		assert.Nil(t, claims)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-at-least-32-chars!!",
			AccessTokenExpiration: -1 * time.Minute,
			Issuer:                "resto-backend",
		})
		token, _, err := expired.GenerateAccessToken(GenerateTokenInput{
			TenantID: uuid.New(),
			UserID:   uuid.New(),
			Username: "chef",
		})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(token)
		assert.Nil(t, claims)
		assert.Equal(t, ErrExpiredToken, err)
	})
}
