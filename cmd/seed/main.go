package main

import (
	"errors"
	"flag"
	"strings"

	"github.com/tarumajaya/umkm-backend/config"
	"github.com/tarumajaya/umkm-backend/internal/app/fallback"
	"github.com/tarumajaya/umkm-backend/internal/app/model"
	"github.com/tarumajaya/umkm-backend/internal/app/repository"
	"github.com/tarumajaya/umkm-backend/internal/app/service"
	"github.com/tarumajaya/umkm-backend/internal/db"
	"github.com/tarumajaya/umkm-backend/internal/storage"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// Seeds the directory from an xlsx workbook. Expected columns, first sheet,
// header in row 1: Nama | Kategori | Deskripsi | Alamat | WhatsApp | Unggulan.
func main() {
	filePath := flag.String("file", "umkm.xlsx", "path to the xlsx workbook")
	flag.Parse()

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		EnableColor: true,
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	umkmRepo := repository.NewUmkmRepository(db.GetDB())
	fb := fallback.NewStatic()

	// Seed rows carry no image payloads, storage stays untouched
	images := storage.NewImageStore(storage.NewMemoryStorage())

	categoryService := service.NewCategoryService(categoryRepo, fb)
	umkmService := service.NewUmkmService(umkmRepo, categoryRepo, images, fb, nil)

	created, skipped, err := importWorkbook(*filePath, categoryService, umkmService)
	if err != nil {
		logger.Fatal("Import failed", err)
	}

	logger.Info("Import completed", map[string]interface{}{
		"created": created,
		"skipped": skipped,
	})
}

func importWorkbook(path string, categories service.CategoryService, umkm service.UmkmService) (int, int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return 0, 0, err
	}
	if len(rows) < 2 {
		return 0, 0, errors.New("workbook has no data rows")
	}

	created, skipped := 0, 0
	for i, row := range rows[1:] {
		name := cell(row, 0)
		categoryName := cell(row, 1)
		if name == "" || categoryName == "" {
			logger.Warn("Skipping row with missing name or category", map[string]interface{}{
				"row": i + 2,
			})
			skipped++
			continue
		}

		category, err := resolveCategory(categories, categoryName)
		if err != nil {
			return created, skipped, err
		}

		_, err = umkm.CreateUmkm(service.UmkmInput{
			Name:        name,
			CategoryID:  category.ID,
			Description: cell(row, 2),
			Address:     cell(row, 3),
			Whatsapp:    cell(row, 4),
			Featured:    strings.EqualFold(cell(row, 5), "ya"),
		})
		if err != nil {
			if errors.Is(err, service.ErrUmkmSlugTaken) {
				logger.Warn("Skipping duplicate business", map[string]interface{}{
					"row":  i + 2,
					"name": name,
				})
				skipped++
				continue
			}
			return created, skipped, err
		}
		created++
	}

	return created, skipped, nil
}

// resolveCategory finds a category by name, creating it on first sight
func resolveCategory(categories service.CategoryService, name string) (*model.Category, error) {
	category, err := categories.GetCategoryByName(name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, service.ErrCategoryNotFound) {
		return nil, err
	}
	return categories.CreateCategory(service.CategoryInput{Name: name})
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
