package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tarumajaya/umkm-backend/internal/app/service"
	apperrors "github.com/tarumajaya/umkm-backend/internal/errors"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

// GetCategories handles GET /api/v1/categories
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	categories := ctrl.categoryService.GetAllCategories()
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory handles GET /api/v1/categories/:id
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	category, err := ctrl.categoryService.GetCategoryByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Kategori tidak ditemukan")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// GetCategoryStats handles GET /api/v1/categories/stats
func (ctrl *CategoryController) GetCategoryStats(c *gin.Context) {
	stats, err := ctrl.categoryService.GetCategoryStats()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// CreateCategory handles POST /api/v1/admin/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Nama kategori wajib diisi")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameTaken) {
			apperrors.Conflict(c, apperrors.CategoryNameExists, "Kategori dengan nama tersebut sudah ada")
			return
		}
		info := apperrors.ParseError(err, "category create")
		apperrors.InternalError(c, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Kategori berhasil dibuat",
		"category": category,
	})
}

// UpdateCategory handles PUT /api/v1/admin/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Data kategori tidak valid")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(c.Param("id"), service.CategoryMutation{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Kategori tidak ditemukan")
		case errors.Is(err, service.ErrCategoryNameTaken):
			apperrors.Conflict(c, apperrors.CategoryNameExists, "Kategori dengan nama tersebut sudah ada")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Kategori berhasil diperbarui",
		"category": category,
	})
}

// DeleteCategory handles DELETE /api/v1/admin/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	err := ctrl.categoryService.DeleteCategory(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Kategori tidak ditemukan")
		case errors.Is(err, service.ErrCategoryInUse):
			apperrors.Conflict(c, apperrors.CategoryInUse, "Kategori masih digunakan dan tidak dapat dihapus")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Kategori berhasil dihapus"})
}
