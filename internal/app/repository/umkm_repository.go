package repository

import (
	"github.com/tarumajaya/umkm-backend/internal/app/model"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
	"gorm.io/gorm"
)

// UmkmFilter narrows list reads. All lists come back newest-first with the
// category join populated.
type UmkmFilter struct {
	FeaturedOnly bool
	Limit        int
}

// UmkmCounts aggregates the dashboard numbers
type UmkmCounts struct {
	Total    int64
	Featured int64
}

type UmkmRepository interface {
	Create(umkm *model.Umkm) error
	Save(umkm *model.Umkm) error
	Delete(id string) error
	FindAll(filter UmkmFilter) ([]model.Umkm, error)
	FindByID(id string) (*model.Umkm, error)
	FindBySlug(slug string) (*model.Umkm, error)
	SlugExists(slug string, excludeID string) (bool, error)
	Counts() (UmkmCounts, error)
	AllImageURLs() ([]string, error)
}

type umkmRepository struct {
	db *gorm.DB
}

func NewUmkmRepository(db *gorm.DB) UmkmRepository {
	return &umkmRepository{db: db}
}

func (r *umkmRepository) Create(umkm *model.Umkm) error {
	logger.Debug("Creating UMKM in database", map[string]interface{}{
		"name": umkm.Name,
		"slug": umkm.Slug,
	})

	if err := r.db.Create(umkm).Error; err != nil {
		logger.Error("Failed to create UMKM in database", err, map[string]interface{}{
			"name": umkm.Name,
			"slug": umkm.Slug,
		})
		return err
	}

	logger.Debug("UMKM created in database", map[string]interface{}{
		"umkm_id": umkm.ID,
		"slug":    umkm.Slug,
	})
	return nil
}

func (r *umkmRepository) Save(umkm *model.Umkm) error {
	logger.Debug("Updating UMKM in database", map[string]interface{}{
		"umkm_id": umkm.ID,
		"slug":    umkm.Slug,
	})

	if err := r.db.Save(umkm).Error; err != nil {
		logger.Error("Failed to update UMKM in database", err, map[string]interface{}{
			"umkm_id": umkm.ID,
		})
		return err
	}
	return nil
}

func (r *umkmRepository) Delete(id string) error {
	logger.Debug("Deleting UMKM from database", map[string]interface{}{
		"umkm_id": id,
	})

	if err := r.db.Delete(&model.Umkm{}, "id = ?", id).Error; err != nil {
		logger.Error("Failed to delete UMKM from database", err, map[string]interface{}{
			"umkm_id": id,
		})
		return err
	}
	return nil
}

func (r *umkmRepository) FindAll(filter UmkmFilter) ([]model.Umkm, error) {
	query := r.db.Model(&model.Umkm{}).
		Preload("Category").
		Order("created_at DESC")

	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var list []model.Umkm
	if err := query.Find(&list).Error; err != nil {
		logger.Error("Failed to find UMKM list", err, map[string]interface{}{
			"featured_only": filter.FeaturedOnly,
			"limit":         filter.Limit,
		})
		return nil, err
	}

	logger.Debug("UMKM list found", map[string]interface{}{
		"count": len(list),
	})
	return list, nil
}

func (r *umkmRepository) FindByID(id string) (*model.Umkm, error) {
	var umkm model.Umkm
	if err := r.db.Preload("Category").First(&umkm, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &umkm, nil
}

func (r *umkmRepository) FindBySlug(slug string) (*model.Umkm, error) {
	var umkm model.Umkm
	if err := r.db.Preload("Category").First(&umkm, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &umkm, nil
}

// SlugExists reports whether a slug is taken, optionally excluding one row
// (the row being renamed).
func (r *umkmRepository) SlugExists(slug string, excludeID string) (bool, error) {
	query := r.db.Model(&model.Umkm{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Failed to check slug existence", err, map[string]interface{}{
			"slug": slug,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *umkmRepository) Counts() (UmkmCounts, error) {
	var counts UmkmCounts

	if err := r.db.Model(&model.Umkm{}).Count(&counts.Total).Error; err != nil {
		return UmkmCounts{}, err
	}
	if err := r.db.Model(&model.Umkm{}).Where("featured = ?", true).Count(&counts.Featured).Error; err != nil {
		return UmkmCounts{}, err
	}
	return counts, nil
}

// AllImageURLs returns every logo and gallery URL referenced by any row,
// used by the orphan sweeper to decide what storage still owns.
func (r *umkmRepository) AllImageURLs() ([]string, error) {
	var rows []model.Umkm
	if err := r.db.Select("id", "logo", "images").Find(&rows).Error; err != nil {
		logger.Error("Failed to collect referenced image URLs", err)
		return nil, err
	}

	var urls []string
	for _, row := range rows {
		if row.Logo != "" {
			urls = append(urls, row.Logo)
		}
		urls = append(urls, row.Images...)
	}
	return urls, nil
}
