package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarumajaya/umkm-backend/internal/app/fallback"
	"github.com/tarumajaya/umkm-backend/internal/app/model"
	"github.com/tarumajaya/umkm-backend/internal/app/repository"
	"github.com/tarumajaya/umkm-backend/internal/db"
	"github.com/tarumajaya/umkm-backend/internal/storage"
	"gorm.io/gorm"
)

type umkmFixture struct {
	db          *gorm.DB
	svc         UmkmService
	categorySvc CategoryService
	objects     *storage.MemoryStorage
	category    *model.Category
}

func setupUmkmService(t *testing.T, cache *goredis.Client) *umkmFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	objects := storage.NewMemoryStorage()
	categoryRepo := repository.NewCategoryRepository(testDB)
	fb := fallback.NewStatic()

	category := &model.Category{Name: "Kuliner"}
	require.NoError(t, categoryRepo.Create(category))

	svc := NewUmkmService(
		repository.NewUmkmRepository(testDB),
		categoryRepo,
		storage.NewImageStore(objects),
		fb,
		cache,
	)
	return &umkmFixture{
		db:          testDB,
		svc:         svc,
		categorySvc: NewCategoryService(categoryRepo, fb),
		objects:     objects,
		category:    category,
	}
}

func jpegDataURI(content string) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte(content))
}

func TestUmkmService_CreateUmkm(t *testing.T) {
	f := setupUmkmService(t, nil)

	umkm, err := f.svc.CreateUmkm(UmkmInput{
		Name:       "Warung Sedap Rasa",
		CategoryID: f.category.ID,
		Logo:       jpegDataURI("logo-bytes"),
		Images:     []string{jpegDataURI("one"), jpegDataURI("two")},
		Whatsapp:   "6281234567890",
		Products: model.ProductList{
			{Name: "Nasi Goreng", Price: 15000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "warung-sedap-rasa", umkm.Slug)
	require.NotNil(t, umkm.Category, "create must return the joined category")
	assert.Equal(t, "Kuliner", umkm.Category.Name)

	// Payloads became durable URLs under the business's namespace
	assert.False(t, storage.IsDataURI(umkm.Logo))
	assert.True(t, f.objects.Has("umkm/"+umkm.ID+"/logo.jpg"))
	require.Len(t, umkm.Images, 2)
	for _, url := range umkm.Images {
		assert.True(t, f.objects.HasURL(url))
	}
}

func TestUmkmService_CreateUmkm_KeepsExternalURLs(t *testing.T) {
	f := setupUmkmService(t, nil)

	umkm, err := f.svc.CreateUmkm(UmkmInput{
		Name:       "Toko A",
		CategoryID: f.category.ID,
		Logo:       "https://cdn.example.com/logo.png",
		Images:     []string{"https://cdn.example.com/1.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/logo.png", umkm.Logo)
	assert.Equal(t, model.StringArray{"https://cdn.example.com/1.jpg"}, umkm.Images)
	assert.Equal(t, 0, f.objects.Len(), "nothing to upload")
}

func TestUmkmService_CreateUmkm_SlugTaken(t *testing.T) {
	f := setupUmkmService(t, nil)

	_, err := f.svc.CreateUmkm(UmkmInput{Name: "Toko A", CategoryID: f.category.ID})
	require.NoError(t, err)

	// A different display name can still collide after slugification
	_, err = f.svc.CreateUmkm(UmkmInput{Name: "Toko  A!", CategoryID: f.category.ID})
	assert.ErrorIs(t, err, ErrUmkmSlugTaken)
}

func TestUmkmService_CreateUmkm_CategoryMissing(t *testing.T) {
	f := setupUmkmService(t, nil)

	_, err := f.svc.CreateUmkm(UmkmInput{Name: "Toko A", CategoryID: "missing"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUmkmService_GetUmkmBySlug(t *testing.T) {
	f := setupUmkmService(t, nil)

	created, err := f.svc.CreateUmkm(UmkmInput{Name: "Toko A", CategoryID: f.category.ID})
	require.NoError(t, err)

	found, err := f.svc.GetUmkmBySlug("toko-a")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = f.svc.GetUmkmBySlug("tidak-ada")
	assert.ErrorIs(t, err, ErrUmkmNotFound)
}

func TestUmkmService_GetUmkmBySlug_FallbackWhenDatabaseDown(t *testing.T) {
	f := setupUmkmService(t, nil)

	db.CleanupTestDB(f.db)

	found, err := f.svc.GetUmkmBySlug("warung-nasi-pak-budi")
	require.NoError(t, err)
	assert.Equal(t, "Warung Nasi Pak Budi", found.Name)

	_, err = f.svc.GetUmkmBySlug("tidak-ada-di-fallback")
	assert.ErrorIs(t, err, ErrUmkmNotFound)
}

func TestUmkmService_GetAllUmkm_FallbackWhenDatabaseDown(t *testing.T) {
	f := setupUmkmService(t, nil)

	db.CleanupTestDB(f.db)

	list := f.svc.GetAllUmkm()
	require.NotEmpty(t, list)
	assert.Equal(t, "warung-nasi-pak-budi", list[0].Slug, "fallback list is newest first")
}

func TestUmkmService_GetFeaturedUmkm(t *testing.T) {
	f := setupUmkmService(t, nil)

	for _, input := range []UmkmInput{
		{Name: "Toko A", CategoryID: f.category.ID, Featured: true},
		{Name: "Toko B", CategoryID: f.category.ID},
		{Name: "Toko C", CategoryID: f.category.ID, Featured: true},
	} {
		_, err := f.svc.CreateUmkm(input)
		require.NoError(t, err)
	}

	list := f.svc.GetFeaturedUmkm(0)
	require.Len(t, list, 2)
	for _, umkm := range list {
		assert.True(t, umkm.Featured)
	}
}

func TestUmkmService_GetFeaturedUmkm_FallbackWhenDatabaseDown(t *testing.T) {
	f := setupUmkmService(t, nil)

	db.CleanupTestDB(f.db)

	list := f.svc.GetFeaturedUmkm(1)
	require.Len(t, list, 1)
	assert.True(t, list[0].Featured)
}

func TestUmkmService_GetLatestUmkm_Limit(t *testing.T) {
	f := setupUmkmService(t, nil)

	for _, name := range []string{"Toko A", "Toko B", "Toko C"} {
		_, err := f.svc.CreateUmkm(UmkmInput{Name: name, CategoryID: f.category.ID})
		require.NoError(t, err)
	}

	list := f.svc.GetLatestUmkm(2)
	assert.Len(t, list, 2)
}

func TestUmkmService_UpdateUmkm_Rename(t *testing.T) {
	f := setupUmkmService(t, nil)

	created, err := f.svc.CreateUmkm(UmkmInput{Name: "Toko A", CategoryID: f.category.ID})
	require.NoError(t, err)

	newName := "Toko Baru"
	updated, err := f.svc.UpdateUmkm(created.ID, UmkmMutation{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Toko Baru", updated.Name)
	assert.Equal(t, "toko-baru", updated.Slug, "slug follows the name")

	// Old slug no longer resolves
	_, err = f.svc.GetUmkmBySlug("toko-a")
	assert.ErrorIs(t, err, ErrUmkmNotFound)
}

func TestUmkmService_UpdateUmkm_RenameToTakenSlug(t *testing.T) {
	f := setupUmkmService(t, nil)

	_, err := f.svc.CreateUmkm(UmkmInput{Name: "Toko A", CategoryID: f.category.ID})
	require.NoError(t, err)
	other, err := f.svc.CreateUmkm(UmkmInput{Name: "Toko B", CategoryID: f.category.ID})
	require.NoError(t, err)

	taken := "Toko A"
	_, err = f.svc.UpdateUmkm(other.ID, UmkmMutation{Name: &taken})
	assert.ErrorIs(t, err, ErrUmkmSlugTaken)
}

func TestUmkmService_UpdateUmkm_SameNameKeepsSlug(t *testing.T) {
	f := setupUmkmService(t, nil)

	created, err := f.svc.CreateUmkm(UmkmInput{Name: "Toko A", CategoryID: f.category.ID})
	require.NoError(t, err)

	sameName := "Toko A"
	description := "Deskripsi baru"
	updated, err := f.svc.UpdateUmkm(created.ID, UmkmMutation{
		Name:        &sameName,
		Description: &description,
	})
	require.NoError(t, err)
	assert.Equal(t, "toko-a", updated.Slug)
	assert.Equal(t, "Deskripsi baru", updated.Description)
}

func TestUmkmService_UpdateUmkm_ReplacesGalleryAndCleansOrphans(t *testing.T) {
	f := setupUmkmService(t, nil)

	created, err := f.svc.CreateUmkm(UmkmInput{
		Name:       "Toko A",
		CategoryID: f.category.ID,
		Images:     []string{jpegDataURI("one"), jpegDataURI("two")},
	})
	require.NoError(t, err)
	require.Len(t, created.Images, 2)
	kept, dropped := created.Images[0], created.Images[1]

	newGallery := []string{kept, jpegDataURI("three")}
	updated, err := f.svc.UpdateUmkm(created.ID, UmkmMutation{Images: &newGallery})
	require.NoError(t, err)
	require.Len(t, updated.Images, 2)

	assert.True(t, f.objects.HasURL(kept), "retained image survives")
	assert.False(t, f.objects.HasURL(dropped), "replaced image is cleaned up")
}

func TestUmkmService_UpdateUmkm_NewLogoPayload(t *testing.T) {
	f := setupUmkmService(t, nil)

	created, err := f.svc.CreateUmkm(UmkmInput{
		Name:       "Toko A",
		CategoryID: f.category.ID,
		Logo:       jpegDataURI("v1"),
	})
	require.NoError(t, err)

	newLogo := jpegDataURI("v2")
	updated, err := f.svc.UpdateUmkm(created.ID, UmkmMutation{Logo: &newLogo})
	require.NoError(t, err)
	assert.False(t, storage.IsDataURI(updated.Logo))
	assert.NotEqual(t, created.Logo, updated.Logo, "replacement logo gets a fresh filename")
	assert.True(t, f.objects.HasURL(updated.Logo))
}

func TestUmkmService_UpdateUmkm_NotFound(t *testing.T) {
	f := setupUmkmService(t, nil)

	name := "Apapun"
	_, err := f.svc.UpdateUmkm("missing-id", UmkmMutation{Name: &name})
	assert.ErrorIs(t, err, ErrUmkmNotFound)
}

func TestUmkmService_DeleteUmkm(t *testing.T) {
	f := setupUmkmService(t, nil)

	created, err := f.svc.CreateUmkm(UmkmInput{
		Name:       "Toko A",
		CategoryID: f.category.ID,
		Logo:       jpegDataURI("logo"),
		Images:     []string{jpegDataURI("one")},
	})
	require.NoError(t, err)
	require.Equal(t, 2, f.objects.Len())

	require.NoError(t, f.svc.DeleteUmkm(created.ID))

	_, err = f.svc.GetUmkmByID(created.ID)
	assert.ErrorIs(t, err, ErrUmkmNotFound)

	keys, err := f.objects.List(context.Background(), "umkm/"+created.ID+"/")
	require.NoError(t, err)
	assert.Empty(t, keys, "image namespace purged with the row")
}

func TestUmkmService_DeleteUmkm_NotFound(t *testing.T) {
	f := setupUmkmService(t, nil)

	err := f.svc.DeleteUmkm("missing-id")
	assert.ErrorIs(t, err, ErrUmkmNotFound)
}

func TestUmkmService_GetUmkmStats(t *testing.T) {
	f := setupUmkmService(t, nil)

	for _, input := range []UmkmInput{
		{Name: "Toko A", CategoryID: f.category.ID, Featured: true},
		{Name: "Toko B", CategoryID: f.category.ID},
	} {
		_, err := f.svc.CreateUmkm(input)
		require.NoError(t, err)
	}

	stats := f.svc.GetUmkmStats()
	assert.Equal(t, int64(2), stats.TotalUmkm)
	assert.Equal(t, int64(1), stats.FeaturedUmkm)
	assert.Equal(t, int64(1), stats.TotalCategories)
}

func TestUmkmService_GetUmkmStats_Cached(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.Close()
	})

	f := setupUmkmService(t, cache)

	_, err := f.svc.CreateUmkm(UmkmInput{Name: "Toko A", CategoryID: f.category.ID})
	require.NoError(t, err)

	first := f.svc.GetUmkmStats()
	assert.Equal(t, int64(1), first.TotalUmkm)

	// A write after the cache fill is invisible until the TTL lapses
	_, err = f.svc.CreateUmkm(UmkmInput{Name: "Toko B", CategoryID: f.category.ID})
	require.NoError(t, err)

	cached := f.svc.GetUmkmStats()
	assert.Equal(t, int64(1), cached.TotalUmkm)

	mr.FastForward(statsCacheTTL)

	refreshed := f.svc.GetUmkmStats()
	assert.Equal(t, int64(2), refreshed.TotalUmkm)
}

func TestUmkmService_GetUmkmStats_ZerosWhenDatabaseDown(t *testing.T) {
	f := setupUmkmService(t, nil)

	db.CleanupTestDB(f.db)

	stats := f.svc.GetUmkmStats()
	assert.Equal(t, UmkmStats{}, stats)
}
