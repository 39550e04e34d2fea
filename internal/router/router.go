package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tarumajaya/umkm-backend/config"
	"github.com/tarumajaya/umkm-backend/internal/app/controller"
	"github.com/tarumajaya/umkm-backend/internal/middleware"
)

// Controllers groups the handlers the router wires up
type Controllers struct {
	Auth     *controller.AuthController
	Category *controller.CategoryController
	Umkm     *controller.UmkmController
	Export   *controller.ExportController
}

// Setup builds the gin engine with public catalog routes and the
// password-gated admin area.
func Setup(cfg *config.Config, ctrl Controllers) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/auth/login", ctrl.Auth.Login)

		// Public catalog
		v1.GET("/categories", ctrl.Category.GetCategories)
		v1.GET("/categories/stats", ctrl.Category.GetCategoryStats)
		v1.GET("/categories/:id", ctrl.Category.GetCategory)
		v1.GET("/umkm", ctrl.Umkm.GetUmkmList)
		v1.GET("/umkm/:slug", ctrl.Umkm.GetUmkmBySlug)
		v1.GET("/stats", ctrl.Umkm.GetUmkmStats)

		// Admin area
		admin := v1.Group("/admin")
		admin.Use(middleware.Authenticate(cfg.JWT.Secret), middleware.RequireAdmin())
		{
			admin.POST("/categories", ctrl.Category.CreateCategory)
			admin.PUT("/categories/:id", ctrl.Category.UpdateCategory)
			admin.DELETE("/categories/:id", ctrl.Category.DeleteCategory)

			admin.GET("/umkm/export", ctrl.Export.ExportUmkm)
			admin.GET("/umkm/:id", ctrl.Umkm.GetUmkmByID)
			admin.POST("/umkm", ctrl.Umkm.CreateUmkm)
			admin.PUT("/umkm/:id", ctrl.Umkm.UpdateUmkm)
			admin.DELETE("/umkm/:id", ctrl.Umkm.DeleteUmkm)
		}
	}

	return engine
}
