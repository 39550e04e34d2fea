package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tarumajaya/umkm-backend/config"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
)

var client *redis.Client

// Init initializes the Redis connection. Redis is optional here: it only
// backs short-lived caches, so a missing address just disables caching.
func Init(cfg *config.RedisConfig) error {
	if cfg.Addr == "" {
		logger.Info("Redis not configured, caching disabled")
		return nil
	}

	logger.Info("Initializing Redis connection", map[string]interface{}{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, caching disabled", map[string]interface{}{
			"addr":  cfg.Addr,
			"error": err.Error(),
		})
		client = nil
		return nil
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// GetClient returns the Redis client instance, or nil when caching is disabled
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}
