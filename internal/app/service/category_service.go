package service

import (
	"errors"

	"github.com/tarumajaya/umkm-backend/internal/app/fallback"
	"github.com/tarumajaya/umkm-backend/internal/app/model"
	"github.com/tarumajaya/umkm-backend/internal/app/repository"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("kategori tidak ditemukan")
	ErrCategoryNameTaken = errors.New("kategori dengan nama tersebut sudah ada")
	ErrCategoryInUse     = errors.New("kategori masih digunakan oleh UMKM")
)

// CategoryInput carries the fields of a new category
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryMutation carries a partial update. Nil fields keep their value.
type CategoryMutation struct {
	Name        *string
	Description *string
}

type CategoryService interface {
	GetAllCategories() []model.Category
	GetCategoryByID(id string) (*model.Category, error)
	GetCategoryByName(name string) (*model.Category, error)
	CreateCategory(input CategoryInput) (*model.Category, error)
	UpdateCategory(id string, mutation CategoryMutation) (*model.Category, error)
	DeleteCategory(id string) error
	GetCategoryStats() (map[string]int64, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	fallback     fallback.Provider
}

func NewCategoryService(categoryRepo repository.CategoryRepository, fb fallback.Provider) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		fallback:     fb,
	}
}

// GetAllCategories returns every category ordered by name. When the database
// is unreachable it degrades to the bundled fallback dataset so the public
// catalog keeps rendering.
func (s *categoryService) GetAllCategories() []model.Category {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Warn("Database unavailable, serving fallback categories", map[string]interface{}{
			"error": err.Error(),
		})
		return s.fallback.Categories()
	}
	return categories
}

func (s *categoryService) GetCategoryByID(id string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategoryByName(name string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(input CategoryInput) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name": input.Name,
	})

	// Pre-check gives the friendly error; the unique index on name still
	// closes the race between concurrent creates.
	if _, err := s.categoryRepo.FindByName(input.Name); err == nil {
		return nil, ErrCategoryNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &model.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	logger.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

func (s *categoryService) UpdateCategory(id string, mutation CategoryMutation) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if mutation.Name != nil && *mutation.Name != category.Name {
		if existing, err := s.categoryRepo.FindByName(*mutation.Name); err == nil && existing.ID != id {
			return nil, ErrCategoryNameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		category.Name = *mutation.Name
	}
	if mutation.Description != nil {
		category.Description = *mutation.Description
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	logger.Info("Category updated successfully", map[string]interface{}{
		"category_id": category.ID,
	})
	return category, nil
}

// DeleteCategory removes a category unless any business still references it
func (s *categoryService) DeleteCategory(id string) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.categoryRepo.CountUmkm(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Refusing to delete category in use", map[string]interface{}{
			"category_id": id,
			"umkm_count":  count,
		})
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Category deleted successfully", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

// GetCategoryStats returns the number of businesses per category id.
// Categories without businesses appear with a zero count.
func (s *categoryService) GetCategoryStats() (map[string]int64, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	usage, err := s.categoryRepo.UsageCounts()
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(categories))
	for _, category := range categories {
		stats[category.ID] = 0
	}
	for _, row := range usage {
		stats[row.CategoryID] = row.Count
	}
	return stats, nil
}
