package service

import (
	"errors"
	"time"

	"github.com/tarumajaya/umkm-backend/config"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
	"github.com/tarumajaya/umkm-backend/pkg/util"
)

var ErrInvalidPassword = errors.New("kata sandi salah")

// LoginResult carries the issued session token and its lifetime
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Login(password string) (*LoginResult, error)
}

type authService struct {
	adminHash   string
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{
		adminHash:   cfg.Admin.PasswordHash,
		jwtSecret:   cfg.JWT.Secret,
		tokenExpiry: cfg.JWT.TokenExpiry,
	}
}

// Login checks the admin password against the configured hash and issues a
// session token. There is no user table: one credential gates the admin area.
func (s *authService) Login(password string) (*LoginResult, error) {
	if !util.VerifyPassword(s.adminHash, password) {
		logger.Warn("Admin login attempt with wrong password")
		return nil, ErrInvalidPassword
	}

	token, err := util.GenerateToken("admin", s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate session token", err)
		return nil, err
	}

	logger.Info("Admin logged in successfully")
	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenExpiry),
	}, nil
}
