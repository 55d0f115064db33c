package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voyago/travel-dashboard/internal/query"
	"github.com/voyago/travel-dashboard/internal/travel"
	"github.com/voyago/travel-dashboard/internal/view"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	resolver DestinationResolver
	cache    ViewCache
	log      *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(resolver DestinationResolver, cache ViewCache, log *slog.Logger) *Handlers {
	return &Handlers{resolver: resolver, cache: cache, log: log}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GetDestination handles GET /api/v1/destinations/{name}.
// Cache hit → return. Miss → orchestrate, cache the view, return.
func (h *Handlers) GetDestination(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "destination name is required"})
		return
	}
	h.serve(w, r, travel.Query{Name: name})
}

// GetNearby handles GET /api/v1/destinations/nearby?lat=&lon=.
func (h *Handlers) GetNearby(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	// ParseFloat accepts "NaN", and NaN slips past range comparisons.
	if errLat != nil || errLon != nil || math.IsNaN(lat) || math.IsNaN(lon) ||
		lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "valid lat and lon query parameters are required"})
		return
	}
	h.serve(w, r, travel.Query{Coordinates: &travel.Coordinates{Lat: lat, Lon: lon}})
}

func (h *Handlers) serve(w http.ResponseWriter, r *http.Request, q travel.Query) {
	cached, err := h.cache.Get(r.Context(), q)
	if err != nil {
		h.log.Error("view cache get failed", "query", q, "err", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	snap := h.resolver.Resolve(r.Context(), q)
	dest := view.Assemble(snap)

	// Only a primary-lookup failure maps to an error status; secondary
	// failures render as a degraded 200 with the aggregate flags set.
	if snap.Statuses[query.KindLocation] == query.StatusError {
		switch {
		case errors.Is(snap.Err, travel.ErrNotFound):
			writeJSON(w, http.StatusNotFound, dest)
		default:
			writeJSON(w, http.StatusBadGateway, dest)
		}
		return
	}

	if err := h.cache.Set(r.Context(), q, dest); err != nil {
		h.log.Warn("view cache set failed", "query", q, "err", err)
	}

	writeJSON(w, http.StatusOK, dest)
}

// RefreshDestination handles POST /api/v1/destinations/{name}/refresh.
// Drops the cached view and re-orchestrates.
func (h *Handlers) RefreshDestination(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "destination name is required"})
		return
	}
	q := travel.Query{Name: name}

	if err := h.cache.Delete(r.Context(), q); err != nil {
		h.log.Warn("view cache delete failed", "query", q, "err", err)
	}
	h.serve(w, r, q)
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks redis connectivity.
func HealthHandlerFunc(redis redisPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		redisStatus := "ok"
		overall := "ok"

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			redisStatus = "error"
			overall = "degraded"
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"redis":  redisStatus,
		})
	}
}
