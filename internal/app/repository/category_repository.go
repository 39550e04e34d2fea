package repository

import (
	"github.com/tarumajaya/umkm-backend/internal/app/model"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
	"gorm.io/gorm"
)

// CategoryUsage is one row of the per-category usage aggregation
type CategoryUsage struct {
	CategoryID string
	Count      int64
}

type CategoryRepository interface {
	Create(category *model.Category) error
	Update(category *model.Category) error
	Delete(id string) error
	FindAll() ([]model.Category, error)
	FindByID(id string) (*model.Category, error)
	FindByName(name string) (*model.Category, error)
	Count() (int64, error)
	CountUmkm(categoryID string) (int64, error)
	UsageCounts() ([]CategoryUsage, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name": category.Name,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}

	logger.Debug("Category created in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	logger.Debug("Updating category in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) Delete(id string) error {
	logger.Debug("Deleting category from database", map[string]interface{}{
		"category_id": id,
	})

	if err := r.db.Delete(&model.Category{}, "id = ?", id).Error; err != nil {
		logger.Error("Failed to delete category from database", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories", err)
		return nil, err
	}

	logger.Debug("Categories found", map[string]interface{}{
		"count": len(categories),
	})
	return categories, nil
}

func (r *categoryRepository) FindByID(id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByName(name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *categoryRepository) CountUmkm(categoryID string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Umkm{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		logger.Error("Failed to count UMKM for category", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return 0, err
	}
	return count, nil
}

func (r *categoryRepository) UsageCounts() ([]CategoryUsage, error) {
	var usage []CategoryUsage
	if err := r.db.Model(&model.Umkm{}).
		Select("category_id, COUNT(*) as count").
		Group("category_id").
		Scan(&usage).Error; err != nil {
		logger.Error("Failed to aggregate category usage", err)
		return nil, err
	}

	logger.Debug("Category usage aggregated", map[string]interface{}{
		"categories": len(usage),
	})
	return usage, nil
}
