package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarumajaya/umkm-backend/config"
	"github.com/tarumajaya/umkm-backend/pkg/util"
)

func setupAuthService(t *testing.T) AuthService {
	hash, err := util.HashPassword("rahasia-admin")
	require.NoError(t, err)

	cfg := &config.Config{
		Admin: config.AdminConfig{PasswordHash: hash},
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			TokenExpiry: time.Hour,
		},
	}
	return NewAuthService(cfg)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthService(t)

	result, err := svc.Login("rahasia-admin")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, 5*time.Second)

	claims, err := util.ValidateToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Login("salah")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Login("")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}
