package server

import (
	"net/http"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCategories_PublishedOnly(t *testing.T) {
	_, app, db := newTestServer(t)
	createTestCategory(t, db, "travel", true)
	createTestCategory(t, db, "food", true)
	createTestCategory(t, db, "drafts", false)

	resp := doJSON(t, app, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []models.Category
	decodeBody(t, resp, &categories)
	require.Len(t, categories, 2)
	// Alphabetical by title.
	assert.Equal(t, "food", categories[0].Slug)
	assert.Equal(t, "travel", categories[1].Slug)
}

func TestGetCategoryPosts(t *testing.T) {
	_, app, db := newTestServer(t)
	author := createTestUser(t, db, "author")
	travel := createTestCategory(t, db, "travel", true)
	food := createTestCategory(t, db, "food", true)
	hidden := createTestCategory(t, db, "secret", false)

	visible := createTestPost(t, db, author, travel, time.Now().Add(-time.Hour), true)
	createTestPost(t, db, author, food, time.Now().Add(-time.Hour), true)
	createTestPost(t, db, author, travel, time.Now().Add(time.Hour), true) // scheduled

	t.Run("lists visible posts in the category", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/categories/travel/posts", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Category models.Category `json:"category"`
			Posts    []models.Post   `json:"posts"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "travel", body.Category.Slug)
		require.Len(t, body.Posts, 1)
		assert.Equal(t, visible.ID, body.Posts[0].ID)
	})

	t.Run("unpublished category is missing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/categories/"+hidden.Slug+"/posts", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("unknown slug is missing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/categories/nowhere/posts", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestGetLocations_PublishedOnly(t *testing.T) {
	_, app, db := newTestServer(t)
	require.NoError(t, db.Create(&models.Location{Name: "Lisbon", IsPublished: true}).Error)
	require.NoError(t, db.Create(&models.Location{Name: "Atlantis", IsPublished: false}).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/locations", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var locations []models.Location
	decodeBody(t, resp, &locations)
	require.Len(t, locations, 1)
	assert.Equal(t, "Lisbon", locations[0].Name)
}
