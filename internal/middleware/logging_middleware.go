package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
)

const loggerContextKey = "logger"

// RequestLogger attaches a request-scoped logger and logs each request with
// its latency and status.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()

		reqLogger := logger.WithContext(map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Set(loggerContextKey, reqLogger)
		c.Header("X-Request-ID", requestID)

		c.Next()

		fields := map[string]interface{}{
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case c.Writer.Status() >= 500:
			reqLogger.Error("Request failed", nil, fields)
		case c.Writer.Status() >= 400:
			reqLogger.Warn("Request rejected", fields)
		default:
			reqLogger.Info("Request completed", fields)
		}
	}
}

// GetLoggerFromContext returns the request-scoped logger, or the global one
// outside a request.
func GetLoggerFromContext(c *gin.Context) *logger.Logger {
	if l, exists := c.Get(loggerContextKey); exists {
		if reqLogger, ok := l.(*logger.Logger); ok {
			return reqLogger
		}
	}
	return logger.Get()
}
