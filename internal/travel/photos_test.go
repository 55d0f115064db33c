package travel_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/travel-dashboard/internal/travel"
)

func TestPhotoClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "Paris city landmarks", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"photos": []map[string]any{
				{
					"photographer":     "Jean Dupont",
					"photographer_url": "https://www.pexels.com/@jean",
					"alt":              "Eiffel Tower at dusk",
					"src":              map[string]any{"large": "https://images.pexels.com/1.jpg"},
				},
			},
		})
	}))
	defer srv.Close()

	c := travel.NewPhotoClientWithURL(srv.URL, "test-key")
	photos, err := c.Search(context.Background(), "Paris city landmarks", 1)
	require.NoError(t, err)
	require.Len(t, photos, 1)

	assert.Equal(t, "https://images.pexels.com/1.jpg", photos[0].URL)
	assert.Equal(t, "Jean Dupont", photos[0].Photographer)
}

func TestPhotoClient_EmptyQueryDefaultsToTravel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "travel", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"photos": []map[string]any{}})
	}))
	defer srv.Close()

	c := travel.NewPhotoClientWithURL(srv.URL, "test-key")
	photos, err := c.Search(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestPhotoClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := travel.NewPhotoClientWithURL(srv.URL, "bad-key")
	_, err := c.Search(context.Background(), "Paris", 1)
	require.Error(t, err)
}
