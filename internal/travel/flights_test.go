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

func flightsHandler(t *testing.T, count int) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "active", r.URL.Query().Get("flight_status"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		data := make([]map[string]any, 0, count)
		for i := 0; i < count; i++ {
			data = append(data, map[string]any{
				"flight_status": "active",
				"airline":       map[string]any{"name": "Air France"},
				"flight":        map[string]any{"iata": "AF123"},
				"departure": map[string]any{
					"airport":   "Charles de Gaulle",
					"iata":      "CDG",
					"scheduled": "2025-06-01T10:30:00+00:00",
				},
				"arrival": map[string]any{
					"airport": "Haneda",
					"iata":    "HND",
				},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}
}

func TestFlightsClient_Active(t *testing.T) {
	srv := httptest.NewServer(flightsHandler(t, 2))
	defer srv.Close()

	c := travel.NewFlightsClientWithURL(srv.URL, "key")
	flights, err := c.Active(context.Background(), "FR")
	require.NoError(t, err)
	require.Len(t, flights, 2)

	f := flights[0]
	assert.Equal(t, "Air France", f.Airline)
	assert.Equal(t, "AF123", f.FlightNumber)
	assert.Equal(t, travel.FlightActive, f.Status)
	assert.Equal(t, "CDG", f.Departure.IATA)
	assert.Equal(t, "Charles de Gaulle", f.Departure.Name)
	require.NotNil(t, f.Departure.Scheduled)
	assert.Equal(t, "HND", f.Arrival.IATA)
	assert.Nil(t, f.Arrival.Scheduled)
}

func TestFlightsClient_BoundsResultCount(t *testing.T) {
	srv := httptest.NewServer(flightsHandler(t, 9))
	defer srv.Close()

	c := travel.NewFlightsClientWithURL(srv.URL, "key")
	flights, err := c.Active(context.Background(), "FR")
	require.NoError(t, err)
	assert.Len(t, flights, 5, "the flight list is bounded even if the upstream ignores the limit")
}

func TestFlightsClient_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"flight_status": "diverted"}},
		})
	}))
	defer srv.Close()

	c := travel.NewFlightsClientWithURL(srv.URL, "key")
	flights, err := c.Active(context.Background(), "FR")
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, travel.FlightUnknown, flights[0].Status)
}

func TestFlightsClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := travel.NewFlightsClientWithURL(srv.URL, "key")
	_, err := c.Active(context.Background(), "FR")
	require.Error(t, err)
}
