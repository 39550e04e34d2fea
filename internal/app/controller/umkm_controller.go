package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tarumajaya/umkm-backend/internal/app/model"
	"github.com/tarumajaya/umkm-backend/internal/app/service"
	apperrors "github.com/tarumajaya/umkm-backend/internal/errors"
)

type UmkmController struct {
	umkmService service.UmkmService
}

func NewUmkmController(umkmService service.UmkmService) *UmkmController {
	return &UmkmController{umkmService: umkmService}
}

// CreateUmkmRequest is the admin form payload. Logo and images may be base64
// data URIs or already-uploaded URLs.
type CreateUmkmRequest struct {
	Name        string                  `json:"name" binding:"required,max=150"`
	CategoryID  string                  `json:"category_id" binding:"required"`
	Description string                  `json:"description"`
	Address     string                  `json:"address"`
	Logo        string                  `json:"logo"`
	Images      []string                `json:"images"`
	Whatsapp    string                  `json:"whatsapp" binding:"omitempty,max=30"`
	Social      *model.SocialLinks      `json:"social"`
	Marketplace *model.MarketplaceLinks `json:"marketplace"`
	Location    *model.Location         `json:"location"`
	OwnerStory  string                  `json:"owner_story"`
	Featured    bool                    `json:"featured"`
	Products    model.ProductList       `json:"products"`
}

type UpdateUmkmRequest struct {
	Name        *string                 `json:"name" binding:"omitempty,max=150"`
	CategoryID  *string                 `json:"category_id"`
	Description *string                 `json:"description"`
	Address     *string                 `json:"address"`
	Logo        *string                 `json:"logo"`
	Images      *[]string               `json:"images"`
	Whatsapp    *string                 `json:"whatsapp" binding:"omitempty,max=30"`
	Social      *model.SocialLinks      `json:"social"`
	Marketplace *model.MarketplaceLinks `json:"marketplace"`
	Location    *model.Location         `json:"location"`
	OwnerStory  *string                 `json:"owner_story"`
	Featured    *bool                   `json:"featured"`
	Products    *model.ProductList      `json:"products"`
}

// GetUmkmList handles GET /api/v1/umkm with optional ?featured=true and
// ?limit=n filters.
func (ctrl *UmkmController) GetUmkmList(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Parameter limit tidak valid")
			return
		}
		limit = parsed
	}

	var list []model.Umkm
	switch {
	case c.Query("featured") == "true":
		list = ctrl.umkmService.GetFeaturedUmkm(limit)
	case c.Query("latest") == "true":
		list = ctrl.umkmService.GetLatestUmkm(limit)
	default:
		list = ctrl.umkmService.GetAllUmkm()
		if limit > 0 && len(list) > limit {
			list = list[:limit]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"umkm":  list,
		"count": len(list),
	})
}

// GetUmkmBySlug handles GET /api/v1/umkm/:slug
func (ctrl *UmkmController) GetUmkmBySlug(c *gin.Context) {
	umkm, err := ctrl.umkmService.GetUmkmBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrUmkmNotFound) {
			apperrors.NotFound(c, apperrors.UmkmNotFound, "UMKM tidak ditemukan")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"umkm": umkm})
}

// GetUmkmByID handles GET /api/v1/admin/umkm/:id
func (ctrl *UmkmController) GetUmkmByID(c *gin.Context) {
	umkm, err := ctrl.umkmService.GetUmkmByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUmkmNotFound) {
			apperrors.NotFound(c, apperrors.UmkmNotFound, "UMKM tidak ditemukan")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"umkm": umkm})
}

// GetUmkmStats handles GET /api/v1/stats
func (ctrl *UmkmController) GetUmkmStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": ctrl.umkmService.GetUmkmStats()})
}

// CreateUmkm handles POST /api/v1/admin/umkm
func (ctrl *UmkmController) CreateUmkm(c *gin.Context) {
	var req CreateUmkmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Nama dan kategori wajib diisi")
		return
	}

	umkm, err := ctrl.umkmService.CreateUmkm(service.UmkmInput{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Address:     req.Address,
		Logo:        req.Logo,
		Images:      req.Images,
		Whatsapp:    req.Whatsapp,
		Social:      req.Social,
		Marketplace: req.Marketplace,
		Location:    req.Location,
		OwnerStory:  req.OwnerStory,
		Featured:    req.Featured,
		Products:    req.Products,
	})
	if err != nil {
		ctrl.respondMutationError(c, err, "create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "UMKM berhasil didaftarkan",
		"umkm":    umkm,
	})
}

// UpdateUmkm handles PUT /api/v1/admin/umkm/:id
func (ctrl *UmkmController) UpdateUmkm(c *gin.Context) {
	var req UpdateUmkmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Data UMKM tidak valid")
		return
	}

	umkm, err := ctrl.umkmService.UpdateUmkm(c.Param("id"), service.UmkmMutation{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Address:     req.Address,
		Logo:        req.Logo,
		Images:      req.Images,
		Whatsapp:    req.Whatsapp,
		Social:      req.Social,
		Marketplace: req.Marketplace,
		Location:    req.Location,
		OwnerStory:  req.OwnerStory,
		Featured:    req.Featured,
		Products:    req.Products,
	})
	if err != nil {
		ctrl.respondMutationError(c, err, "update")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "UMKM berhasil diperbarui",
		"umkm":    umkm,
	})
}

// DeleteUmkm handles DELETE /api/v1/admin/umkm/:id
func (ctrl *UmkmController) DeleteUmkm(c *gin.Context) {
	if err := ctrl.umkmService.DeleteUmkm(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUmkmNotFound) {
			apperrors.NotFound(c, apperrors.UmkmNotFound, "UMKM tidak ditemukan")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "UMKM berhasil dihapus"})
}

func (ctrl *UmkmController) respondMutationError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, service.ErrUmkmNotFound):
		apperrors.NotFound(c, apperrors.UmkmNotFound, "UMKM tidak ditemukan")
	case errors.Is(err, service.ErrUmkmSlugTaken):
		apperrors.Conflict(c, apperrors.UmkmSlugExists, "UMKM dengan nama tersebut sudah ada")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.BadRequest(c, apperrors.CategoryNotFound, "Kategori tidak ditemukan")
	default:
		info := apperrors.ParseError(err, "umkm "+operation)
		apperrors.InternalError(c, info.Message)
	}
}
