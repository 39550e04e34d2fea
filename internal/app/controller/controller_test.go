package controller

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tarumajaya/umkm-backend/config"
	"github.com/tarumajaya/umkm-backend/internal/app/fallback"
	"github.com/tarumajaya/umkm-backend/internal/app/model"
	"github.com/tarumajaya/umkm-backend/internal/app/repository"
	"github.com/tarumajaya/umkm-backend/internal/app/service"
	"github.com/tarumajaya/umkm-backend/internal/db"
	"github.com/tarumajaya/umkm-backend/internal/middleware"
	"github.com/tarumajaya/umkm-backend/internal/storage"
	"github.com/tarumajaya/umkm-backend/pkg/util"
	"gorm.io/gorm"
)

const (
	testJWTSecret = "test-secret"
	testPassword  = "rahasia-admin"
)

type fixture struct {
	router   *gin.Engine
	db       *gorm.DB
	objects  *storage.MemoryStorage
	category *model.Category
}

// setupFixture wires real services over an in-memory database and in-memory
// object storage, with the same route layout as production.
func setupFixture(t *testing.T) *fixture {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	hash, err := util.HashPassword(testPassword)
	require.NoError(t, err)

	cfg := &config.Config{
		Admin: config.AdminConfig{PasswordHash: hash},
		JWT: config.JWTConfig{
			Secret:      testJWTSecret,
			TokenExpiry: time.Hour,
		},
	}

	objects := storage.NewMemoryStorage()
	images := storage.NewImageStore(objects)
	fb := fallback.NewStatic()

	categoryRepo := repository.NewCategoryRepository(testDB)
	umkmRepo := repository.NewUmkmRepository(testDB)

	category := &model.Category{Name: "Kuliner"}
	require.NoError(t, categoryRepo.Create(category))

	categoryService := service.NewCategoryService(categoryRepo, fb)
	umkmService := service.NewUmkmService(umkmRepo, categoryRepo, images, fb, nil)

	authCtrl := NewAuthController(service.NewAuthService(cfg))
	categoryCtrl := NewCategoryController(categoryService)
	umkmCtrl := NewUmkmController(umkmService)
	exportCtrl := NewExportController(umkmService)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", authCtrl.Login)
	v1.GET("/categories", categoryCtrl.GetCategories)
	v1.GET("/categories/stats", categoryCtrl.GetCategoryStats)
	v1.GET("/categories/:id", categoryCtrl.GetCategory)
	v1.GET("/umkm", umkmCtrl.GetUmkmList)
	v1.GET("/umkm/:slug", umkmCtrl.GetUmkmBySlug)
	v1.GET("/stats", umkmCtrl.GetUmkmStats)

	admin := v1.Group("/admin")
	admin.Use(middleware.Authenticate(testJWTSecret), middleware.RequireAdmin())
	admin.POST("/categories", categoryCtrl.CreateCategory)
	admin.PUT("/categories/:id", categoryCtrl.UpdateCategory)
	admin.DELETE("/categories/:id", categoryCtrl.DeleteCategory)
	admin.GET("/umkm/export", exportCtrl.ExportUmkm)
	admin.GET("/umkm/:id", umkmCtrl.GetUmkmByID)
	admin.POST("/umkm", umkmCtrl.CreateUmkm)
	admin.PUT("/umkm/:id", umkmCtrl.UpdateUmkm)
	admin.DELETE("/umkm/:id", umkmCtrl.DeleteUmkm)

	return &fixture{
		router:   router,
		db:       testDB,
		objects:  objects,
		category: category,
	}
}

func (f *fixture) adminToken(t *testing.T) string {
	token, err := util.GenerateToken("admin", testJWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (f *fixture) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func testDataURI(content string) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte(content))
}

func (f *fixture) createUmkm(t *testing.T, name string) model.Umkm {
	w := f.request(t, http.MethodPost, "/api/v1/admin/umkm", CreateUmkmRequest{
		Name:       name,
		CategoryID: f.category.ID,
	}, f.adminToken(t))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var umkm model.Umkm
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["umkm"], &umkm))
	return umkm
}
