package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tarumajaya/umkm-backend/internal/app/fallback"
	"github.com/tarumajaya/umkm-backend/internal/app/model"
	"github.com/tarumajaya/umkm-backend/internal/app/repository"
	apperrors "github.com/tarumajaya/umkm-backend/internal/errors"
	"github.com/tarumajaya/umkm-backend/internal/storage"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
	"github.com/tarumajaya/umkm-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUmkmNotFound  = errors.New("UMKM tidak ditemukan")
	ErrUmkmSlugTaken = errors.New("UMKM dengan nama tersebut sudah ada")
)

const (
	defaultLatestLimit   = 8
	defaultFeaturedLimit = 6

	statsCacheKey = "umkm:stats"
	statsCacheTTL = 60 * time.Second
)

// UmkmInput carries the fields of a new business. Logo and Images may be
// base64 data URIs (uploaded to storage) or already-durable URLs.
type UmkmInput struct {
	Name        string
	CategoryID  string
	Description string
	Address     string
	Logo        string
	Images      []string
	Whatsapp    string
	Social      *model.SocialLinks
	Marketplace *model.MarketplaceLinks
	Location    *model.Location
	OwnerStory  string
	Featured    bool
	Products    model.ProductList
}

// UmkmMutation carries a partial update. Nil fields keep their value; the
// Images slice, when present, replaces the gallery wholesale and may mix
// retained URLs with new payloads.
type UmkmMutation struct {
	Name        *string
	CategoryID  *string
	Description *string
	Address     *string
	Logo        *string
	Images      *[]string
	Whatsapp    *string
	Social      *model.SocialLinks
	Marketplace *model.MarketplaceLinks
	Location    *model.Location
	OwnerStory  *string
	Featured    *bool
	Products    *model.ProductList
}

// UmkmStats is the admin dashboard summary
type UmkmStats struct {
	TotalUmkm       int64 `json:"total_umkm"`
	FeaturedUmkm    int64 `json:"featured_umkm"`
	TotalCategories int64 `json:"total_categories"`
}

type UmkmService interface {
	GetAllUmkm() []model.Umkm
	GetFeaturedUmkm(limit int) []model.Umkm
	GetLatestUmkm(limit int) []model.Umkm
	GetUmkmBySlug(slug string) (*model.Umkm, error)
	GetUmkmByID(id string) (*model.Umkm, error)
	CreateUmkm(input UmkmInput) (*model.Umkm, error)
	UpdateUmkm(id string, mutation UmkmMutation) (*model.Umkm, error)
	DeleteUmkm(id string) error
	GetUmkmStats() UmkmStats
}

type umkmService struct {
	umkmRepo     repository.UmkmRepository
	categoryRepo repository.CategoryRepository
	images       *storage.ImageStore
	fallback     fallback.Provider
	cache        *redis.Client
}

// NewUmkmService wires the business catalog service. cache may be nil,
// which disables stats caching.
func NewUmkmService(
	umkmRepo repository.UmkmRepository,
	categoryRepo repository.CategoryRepository,
	images *storage.ImageStore,
	fb fallback.Provider,
	cache *redis.Client,
) UmkmService {
	return &umkmService{
		umkmRepo:     umkmRepo,
		categoryRepo: categoryRepo,
		images:       images,
		fallback:     fb,
		cache:        cache,
	}
}

// GetAllUmkm returns every business newest-first, degrading to the fallback
// dataset when the database is unreachable.
func (s *umkmService) GetAllUmkm() []model.Umkm {
	list, err := s.umkmRepo.FindAll(repository.UmkmFilter{})
	if err != nil {
		logger.Warn("Database unavailable, serving fallback UMKM list", map[string]interface{}{
			"error": err.Error(),
		})
		return s.fallback.Umkm()
	}
	return list
}

// GetFeaturedUmkm returns highlighted businesses for the landing page
func (s *umkmService) GetFeaturedUmkm(limit int) []model.Umkm {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}

	list, err := s.umkmRepo.FindAll(repository.UmkmFilter{FeaturedOnly: true, Limit: limit})
	if err != nil {
		logger.Warn("Database unavailable, serving fallback featured UMKM", map[string]interface{}{
			"error": err.Error(),
		})
		return filterFeatured(s.fallback.Umkm(), limit)
	}
	return list
}

// GetLatestUmkm returns the most recently added businesses
func (s *umkmService) GetLatestUmkm(limit int) []model.Umkm {
	if limit <= 0 {
		limit = defaultLatestLimit
	}

	list, err := s.umkmRepo.FindAll(repository.UmkmFilter{Limit: limit})
	if err != nil {
		logger.Warn("Database unavailable, serving fallback latest UMKM", map[string]interface{}{
			"error": err.Error(),
		})
		return limitList(s.fallback.Umkm(), limit)
	}
	return list
}

// GetUmkmBySlug resolves a detail page. Missing rows return ErrUmkmNotFound;
// an unreachable database falls back to the bundled dataset before giving up.
func (s *umkmService) GetUmkmBySlug(slug string) (*model.Umkm, error) {
	umkm, err := s.umkmRepo.FindBySlug(slug)
	if err == nil {
		return umkm, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUmkmNotFound
	}

	logger.Warn("Database unavailable, searching fallback dataset", map[string]interface{}{
		"slug":  slug,
		"error": err.Error(),
	})
	for _, candidate := range s.fallback.Umkm() {
		if candidate.Slug == slug {
			return &candidate, nil
		}
	}
	return nil, ErrUmkmNotFound
}

// GetUmkmByID is the admin-side lookup. No fallback here: admin mutations
// must see the real database state.
func (s *umkmService) GetUmkmByID(id string) (*model.Umkm, error) {
	umkm, err := s.umkmRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUmkmNotFound
		}
		return nil, err
	}
	return umkm, nil
}

// CreateUmkm registers a business. The id is generated up front so images
// can be uploaded into their namespace before the row is inserted; if the
// insert then fails, the namespace is purged to compensate.
func (s *umkmService) CreateUmkm(input UmkmInput) (*model.Umkm, error) {
	slug := util.Slugify(input.Name)

	logger.Info("Creating UMKM", map[string]interface{}{
		"name": input.Name,
		"slug": slug,
	})

	taken, err := s.umkmRepo.SlugExists(slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUmkmSlugTaken
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	ctx := context.Background()
	id := uuid.New().String()
	namespace := storage.UmkmNamespace(id)

	logo := input.Logo
	if storage.IsDataURI(logo) {
		logo = s.images.UploadImage(ctx, namespace, "logo.jpg", input.Logo)
	}
	images := s.images.UploadImages(ctx, namespace, input.Images)

	umkm := &model.Umkm{
		ID:          id,
		Slug:        slug,
		Name:        input.Name,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Address:     input.Address,
		Logo:        logo,
		Images:      images,
		Whatsapp:    input.Whatsapp,
		Social:      input.Social,
		Marketplace: input.Marketplace,
		Location:    input.Location,
		OwnerStory:  input.OwnerStory,
		Featured:    input.Featured,
		Products:    input.Products,
	}

	if err := s.umkmRepo.Create(umkm); err != nil {
		// Roll back the uploads so nothing orphans in storage
		s.images.DeleteNamespace(ctx, namespace)

		if apperrors.ParseError(err, "umkm create").Code == apperrors.UmkmSlugExists {
			return nil, ErrUmkmSlugTaken
		}
		return nil, err
	}

	logger.Info("UMKM created successfully", map[string]interface{}{
		"umkm_id": umkm.ID,
		"slug":    umkm.Slug,
	})
	return s.umkmRepo.FindByID(umkm.ID)
}

// UpdateUmkm applies a partial update. New image payloads are uploaded into
// the existing namespace, and gallery URLs dropped by the mutation are
// deleted from storage after the row saves.
func (s *umkmService) UpdateUmkm(id string, mutation UmkmMutation) (*model.Umkm, error) {
	umkm, err := s.umkmRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUmkmNotFound
		}
		return nil, err
	}

	logger.Info("Updating UMKM", map[string]interface{}{
		"umkm_id": id,
	})

	if mutation.Name != nil && *mutation.Name != umkm.Name {
		slug := util.Slugify(*mutation.Name)
		taken, err := s.umkmRepo.SlugExists(slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUmkmSlugTaken
		}
		umkm.Name = *mutation.Name
		umkm.Slug = slug
	}

	if mutation.CategoryID != nil && *mutation.CategoryID != umkm.CategoryID {
		if _, err := s.categoryRepo.FindByID(*mutation.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		umkm.CategoryID = *mutation.CategoryID
	}

	ctx := context.Background()
	namespace := storage.UmkmNamespace(id)

	if mutation.Logo != nil {
		logo := *mutation.Logo
		if storage.IsDataURI(logo) {
			filename := fmt.Sprintf("logo-%d.jpg", time.Now().UnixNano())
			logo = s.images.UploadImage(ctx, namespace, filename, *mutation.Logo)
		}
		umkm.Logo = logo
	}

	oldImages := append([]string(nil), umkm.Images...)
	imagesChanged := false
	if mutation.Images != nil {
		umkm.Images = s.images.UploadImages(ctx, namespace, *mutation.Images)
		imagesChanged = true
	}

	if mutation.Description != nil {
		umkm.Description = *mutation.Description
	}
	if mutation.Address != nil {
		umkm.Address = *mutation.Address
	}
	if mutation.Whatsapp != nil {
		umkm.Whatsapp = *mutation.Whatsapp
	}
	if mutation.Social != nil {
		umkm.Social = mutation.Social
	}
	if mutation.Marketplace != nil {
		umkm.Marketplace = mutation.Marketplace
	}
	if mutation.Location != nil {
		umkm.Location = mutation.Location
	}
	if mutation.OwnerStory != nil {
		umkm.OwnerStory = *mutation.OwnerStory
	}
	if mutation.Featured != nil {
		umkm.Featured = *mutation.Featured
	}
	if mutation.Products != nil {
		umkm.Products = *mutation.Products
	}

	if err := s.umkmRepo.Save(umkm); err != nil {
		if apperrors.ParseError(err, "umkm update").Code == apperrors.UmkmSlugExists {
			return nil, ErrUmkmSlugTaken
		}
		return nil, err
	}

	// Only after the row is durable may replaced gallery objects go away
	if imagesChanged {
		s.images.CleanupOrphanedImages(ctx, namespace, umkm.Images, oldImages)
	}

	logger.Info("UMKM updated successfully", map[string]interface{}{
		"umkm_id": id,
		"slug":    umkm.Slug,
	})
	return s.umkmRepo.FindByID(id)
}

// DeleteUmkm removes a business and purges its image namespace
func (s *umkmService) DeleteUmkm(id string) error {
	if _, err := s.umkmRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUmkmNotFound
		}
		return err
	}

	// Storage first: if the purge partially fails, the sweeper picks up
	// the leftovers once the row is gone.
	s.images.DeleteNamespace(context.Background(), storage.UmkmNamespace(id))

	if err := s.umkmRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("UMKM deleted successfully", map[string]interface{}{
		"umkm_id": id,
	})
	return nil
}

// GetUmkmStats returns dashboard counters, cached briefly in Redis. Errors
// degrade to zeros so the dashboard renders regardless.
func (s *umkmService) GetUmkmStats() UmkmStats {
	ctx := context.Background()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats UmkmStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats
			}
		}
	}

	counts, err := s.umkmRepo.Counts()
	if err != nil {
		logger.Error("Failed to count UMKM for stats", err)
		return UmkmStats{}
	}
	categoryCount, err := s.categoryRepo.Count()
	if err != nil {
		logger.Error("Failed to count categories for stats", err)
		return UmkmStats{}
	}

	stats := UmkmStats{
		TotalUmkm:       counts.Total,
		FeaturedUmkm:    counts.Featured,
		TotalCategories: categoryCount,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				logger.Warn("Failed to cache UMKM stats", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
	return stats
}

func filterFeatured(list []model.Umkm, limit int) []model.Umkm {
	var featured []model.Umkm
	for _, umkm := range list {
		if umkm.Featured {
			featured = append(featured, umkm)
		}
	}
	return limitList(featured, limit)
}

func limitList(list []model.Umkm, limit int) []model.Umkm {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
