package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarumajaya/umkm-backend/internal/app/fallback"
	"github.com/tarumajaya/umkm-backend/internal/app/model"
	"github.com/tarumajaya/umkm-backend/internal/app/repository"
	"github.com/tarumajaya/umkm-backend/internal/db"
	"gorm.io/gorm"
)

func setupCategoryService(t *testing.T) (*gorm.DB, CategoryService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	svc := NewCategoryService(repository.NewCategoryRepository(testDB), fallback.NewStatic())
	return testDB, svc
}

func TestCategoryService_CreateCategory(t *testing.T) {
	_, svc := setupCategoryService(t)

	category, err := svc.CreateCategory(CategoryInput{Name: "Kuliner", Description: "Makanan dan minuman"})
	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "Kuliner", category.Name)
}

func TestCategoryService_CreateCategory_DuplicateName(t *testing.T) {
	_, svc := setupCategoryService(t)

	_, err := svc.CreateCategory(CategoryInput{Name: "Kuliner"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(CategoryInput{Name: "Kuliner"})
	assert.ErrorIs(t, err, ErrCategoryNameTaken)
}

func TestCategoryService_GetAllCategories(t *testing.T) {
	_, svc := setupCategoryService(t)

	for _, name := range []string{"Kuliner", "Fashion"} {
		_, err := svc.CreateCategory(CategoryInput{Name: name})
		require.NoError(t, err)
	}

	categories := svc.GetAllCategories()
	require.Len(t, categories, 2)
	assert.Equal(t, "Fashion", categories[0].Name)
}

func TestCategoryService_GetAllCategories_FallbackWhenDatabaseDown(t *testing.T) {
	testDB, svc := setupCategoryService(t)

	// Simulate an unreachable database
	db.CleanupTestDB(testDB)

	categories := svc.GetAllCategories()
	require.NotEmpty(t, categories, "fallback dataset must keep the catalog rendering")

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	assert.Contains(t, names, "Kuliner")
}

func TestCategoryService_GetCategoryByID_NotFound(t *testing.T) {
	_, svc := setupCategoryService(t)

	_, err := svc.GetCategoryByID("missing-id")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	_, svc := setupCategoryService(t)

	category, err := svc.CreateCategory(CategoryInput{Name: "Kuliner"})
	require.NoError(t, err)

	newName := "Kuliner Tradisional"
	newDescription := "Makanan khas daerah"
	updated, err := svc.UpdateCategory(category.ID, CategoryMutation{
		Name:        &newName,
		Description: &newDescription,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kuliner Tradisional", updated.Name)
	assert.Equal(t, "Makanan khas daerah", updated.Description)
}

func TestCategoryService_UpdateCategory_NameTaken(t *testing.T) {
	_, svc := setupCategoryService(t)

	_, err := svc.CreateCategory(CategoryInput{Name: "Kuliner"})
	require.NoError(t, err)
	other, err := svc.CreateCategory(CategoryInput{Name: "Fashion"})
	require.NoError(t, err)

	taken := "Kuliner"
	_, err = svc.UpdateCategory(other.ID, CategoryMutation{Name: &taken})
	assert.ErrorIs(t, err, ErrCategoryNameTaken)
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	_, svc := setupCategoryService(t)

	category, err := svc.CreateCategory(CategoryInput{Name: "Sementara"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(category.ID))

	_, err = svc.GetCategoryByID(category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_DeleteCategory_InUse(t *testing.T) {
	testDB, svc := setupCategoryService(t)

	category, err := svc.CreateCategory(CategoryInput{Name: "Kuliner"})
	require.NoError(t, err)
	require.NoError(t, testDB.Create(&model.Umkm{
		Slug: "toko-a", Name: "Toko A", CategoryID: category.ID,
	}).Error)

	err = svc.DeleteCategory(category.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	// Still there
	_, err = svc.GetCategoryByID(category.ID)
	assert.NoError(t, err)
}

func TestCategoryService_GetCategoryStats(t *testing.T) {
	testDB, svc := setupCategoryService(t)

	kuliner, err := svc.CreateCategory(CategoryInput{Name: "Kuliner"})
	require.NoError(t, err)
	jasa, err := svc.CreateCategory(CategoryInput{Name: "Jasa"})
	require.NoError(t, err)

	for _, slug := range []string{"a", "b"} {
		require.NoError(t, testDB.Create(&model.Umkm{
			Slug: slug, Name: slug, CategoryID: kuliner.ID,
		}).Error)
	}

	stats, err := svc.GetCategoryStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats[kuliner.ID])
	assert.Equal(t, int64(0), stats[jasa.ID], "empty categories still appear with zero")
}
