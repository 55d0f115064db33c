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

func placesHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{
				{
					"properties": map[string]any{
						"place_id":   "pl-1",
						"name":       "Eiffel Tower",
						"categories": []string{"tourism", "tourism.attraction"},
						"formatted":  "Champ de Mars, Paris",
						"distance":   1200.0,
						"lat":        48.8584,
						"lon":        2.2945,
					},
				},
				{
					// No distance from the feed; the client computes one.
					"properties": map[string]any{
						"place_id":   "pl-2",
						"name":       "Louvre Museum",
						"categories": []string{"entertainment.museum"},
						"formatted":  "Rue de Rivoli, Paris",
						"lat":        48.8606,
						"lon":        2.3376,
					},
				},
				{
					// Unnamed features are dropped.
					"properties": map[string]any{"place_id": "pl-3", "lat": 48.0, "lon": 2.0},
				},
			},
		})
	}
}

func TestPlacesClient_Search(t *testing.T) {
	srv := httptest.NewServer(placesHandler(t))
	defer srv.Close()

	c := travel.NewPlacesClientWithURLs(srv.URL, srv.URL, "key")
	places, err := c.Search(context.Background(), 48.8566, 2.3522, "tourism", travel.DefaultPlaceRadius, travel.DefaultPlaceLimit)
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "pl-1", places[0].ID)
	assert.Equal(t, "Eiffel Tower", places[0].Name)
	assert.Equal(t, 1200.0, places[0].DistanceM)
	assert.False(t, places[0].Mock)

	// The Louvre is roughly 1.1 km from the query centre.
	assert.InDelta(t, 1100, places[1].DistanceM, 200)
}

func TestPlacesClient_SearchEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"features": []map[string]any{}})
	}))
	defer srv.Close()

	c := travel.NewPlacesClientWithURLs(srv.URL, srv.URL, "key")
	places, err := c.Search(context.Background(), 0, 0, "tourism", travel.DefaultPlaceRadius, travel.DefaultPlaceLimit)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestPlacesClient_Detail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{
				{
					"properties": map[string]any{
						"place_id":      "pl-1",
						"description":   "Iron lattice tower on the Champ de Mars.",
						"website":       "https://www.toureiffel.paris",
						"opening_hours": "09:00-23:45",
						"rating":        4.7,
						"reviews":       230,
					},
				},
			},
		})
	}))
	defer srv.Close()

	c := travel.NewPlacesClientWithURLs(srv.URL, srv.URL, "key")
	d, err := c.Detail(context.Background(), "pl-1")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "pl-1", d.PlaceID)
	assert.Equal(t, 4.7, d.Rating)
	assert.Equal(t, "https://www.toureiffel.paris", d.Website)
}

func TestPlacesClient_DetailMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"features": []map[string]any{}})
	}))
	defer srv.Close()

	c := travel.NewPlacesClientWithURLs(srv.URL, srv.URL, "key")
	d, err := c.Detail(context.Background(), "pl-404")
	require.NoError(t, err)
	assert.Nil(t, d, "missing detail is nil, nil, not an error")
}

func TestGreatCircleMeters(t *testing.T) {
	// Paris to Tokyo is about 9,710 km.
	d := travel.GreatCircleMeters(48.8566, 2.3522, 35.6762, 139.6503)
	assert.InDelta(t, 9_710_000, d, 50_000)

	assert.Zero(t, travel.GreatCircleMeters(48.85, 2.35, 48.85, 2.35))
}
