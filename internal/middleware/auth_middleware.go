package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/tarumajaya/umkm-backend/internal/errors"
	"github.com/tarumajaya/umkm-backend/pkg/util"
)

const roleContextKey = "role"

// Authenticate validates the Bearer token and stores the session role in the
// request context.
func Authenticate(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Format token tidak valid")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(token, jwtSecret)
		if err != nil {
			if errors.Is(err, util.ErrExpiredToken) {
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenExpired, "Sesi sudah berakhir, silakan masuk kembali")
			} else {
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Token tidak valid")
			}
			c.Abort()
			return
		}

		c.Set(roleContextKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin rejects sessions whose token does not carry the admin role.
// It must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(roleContextKey)
		if !exists || role != "admin" {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthUnauthorized, "Akses hanya untuk admin")
			c.Abort()
			return
		}
		c.Next()
	}
}
