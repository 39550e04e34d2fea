package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarumajaya/umkm-backend/internal/app/model"
)

// Walks the whole admin flow over HTTP: create a category, register a
// business under it, read it publicly, then tear both down in the only
// order the referential rules allow.
func TestDirectoryLifecycle(t *testing.T) {
	f := setupFixture(t)
	token := f.adminToken(t)

	// Create a fresh category
	w := f.request(t, http.MethodPost, "/api/v1/admin/categories", CreateCategoryRequest{
		Name: "Kerajinan",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	var category model.Category
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["category"], &category))

	// Register a business under it, with images
	w = f.request(t, http.MethodPost, "/api/v1/admin/umkm", CreateUmkmRequest{
		Name:       "Anyaman Bu Sari",
		CategoryID: category.ID,
		Logo:       testDataURI("logo"),
		Images:     []string{testDataURI("workshop")},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Umkm
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["umkm"], &created))

	// The public detail page resolves by slug and joins the category
	w = f.request(t, http.MethodGet, "/api/v1/umkm/anyaman-bu-sari", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched model.Umkm
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["umkm"], &fetched))
	require.NotNil(t, fetched.Category)
	assert.Equal(t, "Kerajinan", fetched.Category.Name)
	assert.Equal(t, 2, f.objects.Len(), "logo and gallery image stored")

	// The category cannot go while the business references it
	w = f.request(t, http.MethodDelete, "/api/v1/admin/categories/"+category.ID, nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Deleting the business purges its images
	w = f.request(t, http.MethodDelete, "/api/v1/admin/umkm/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, f.objects.Len())

	// Now the category can go
	w = f.request(t, http.MethodDelete, "/api/v1/admin/categories/"+category.ID, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}
