package db

import (
	"github.com/tarumajaya/umkm-backend/internal/app/model"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Category{},
		&model.Umkm{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedCategories(); err != nil {
		logger.Error("Failed to seed categories during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// seedCategories creates the default directory categories on first run
func seedCategories() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding default categories...")

	categories := []model.Category{
		{Name: "Kuliner", Description: "Makanan dan minuman"},
		{Name: "Kerajinan", Description: "Kerajinan tangan dan produk kreatif"},
		{Name: "Fashion", Description: "Pakaian, kain, dan aksesori"},
		{Name: "Jasa", Description: "Layanan dan jasa lokal"},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"name": category.Name,
			})
			return err
		}
	}

	logger.Info("Default categories seeded successfully", map[string]interface{}{
		"count": len(categories),
	})
	return nil
}
