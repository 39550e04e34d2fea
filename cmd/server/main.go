package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tarumajaya/umkm-backend/config"
	"github.com/tarumajaya/umkm-backend/internal/app/controller"
	"github.com/tarumajaya/umkm-backend/internal/app/fallback"
	"github.com/tarumajaya/umkm-backend/internal/app/repository"
	"github.com/tarumajaya/umkm-backend/internal/app/service"
	"github.com/tarumajaya/umkm-backend/internal/db"
	"github.com/tarumajaya/umkm-backend/internal/router"
	"github.com/tarumajaya/umkm-backend/internal/scheduler"
	"github.com/tarumajaya/umkm-backend/internal/storage"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
	"github.com/tarumajaya/umkm-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logFormat := "json"
	enableColor := false
	if cfg.Server.Environment == "development" {
		logFormat = "console"
		enableColor = true
	}
	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      logFormat,
		EnableColor: enableColor,
	})

	logger.Info("Starting UMKM directory server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer redis.Close()

	// S3 needs credentials; local runs without them keep images in memory
	var objects storage.ObjectStorage
	if cfg.S3.AccessKeyID != "" || cfg.Server.Environment == "production" {
		objects = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
	} else {
		logger.Warn("No S3 credentials configured, using in-memory image storage")
		objects = storage.NewMemoryStorage()
	}
	images := storage.NewImageStore(objects)

	umkmRepo := repository.NewUmkmRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	fb := fallback.NewStatic()

	authService := service.NewAuthService(cfg)
	categoryService := service.NewCategoryService(categoryRepo, fb)
	umkmService := service.NewUmkmService(umkmRepo, categoryRepo, images, fb, redis.GetClient())

	engine := router.Setup(cfg, router.Controllers{
		Auth:     controller.NewAuthController(authService),
		Category: controller.NewCategoryController(categoryService),
		Umkm:     controller.NewUmkmController(umkmService),
		Export:   controller.NewExportController(umkmService),
	})

	sweeper := scheduler.NewOrphanSweeper(umkmRepo, images)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start orphan sweeper", err)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Server listening", map[string]interface{}{
			"addr": server.Addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", err)
	}

	logger.Info("Server stopped")
}
