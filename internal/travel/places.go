package travel

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang/geo/s2"
)

// earthRadiusMeters is the mean Earth radius used for great-circle distances.
const earthRadiusMeters = 6371008.8

// PlacesClient searches points of interest and place details on Geoapify.
type PlacesClient struct {
	apiKey        string
	searchBaseURL string
	detailBaseURL string
	client        *http.Client
}

const (
	geoapifyPlacesDefaultURL      = "https://api.geoapify.com/v2/places"
	geoapifyPlaceDetailDefaultURL = "https://api.geoapify.com/v2/place-details"

	// DefaultPlaceRadius and DefaultPlaceLimit match the dashboard's search
	// window: everything within 50 km, at most 15 results.
	DefaultPlaceRadius = 50000
	DefaultPlaceLimit  = 15
)

// NewPlacesClient constructs a PlacesClient with the given API key.
func NewPlacesClient(apiKey string) *PlacesClient {
	return &PlacesClient{
		apiKey:        apiKey,
		searchBaseURL: geoapifyPlacesDefaultURL,
		detailBaseURL: geoapifyPlaceDetailDefaultURL,
		client:        newHTTPClient(),
	}
}

// NewPlacesClientWithURLs constructs a PlacesClient pointing at custom URLs (for tests).
func NewPlacesClientWithURLs(searchBaseURL, detailBaseURL, apiKey string) *PlacesClient {
	return &PlacesClient{
		apiKey:        apiKey,
		searchBaseURL: searchBaseURL,
		detailBaseURL: detailBaseURL,
		client:        newHTTPClient(),
	}
}

type geoapifyFeatureCollection struct {
	Features []struct {
		Properties struct {
			PlaceID    string   `json:"place_id"`
			Name       string   `json:"name"`
			Categories []string `json:"categories"`
			Formatted  string   `json:"formatted"`
			Distance   float64  `json:"distance"`
			Lat        float64  `json:"lat"`
			Lon        float64  `json:"lon"`
		} `json:"properties"`
	} `json:"features"`
}

// Search retrieves places of the given category within radius meters of
// (lat, lon), at most limit of them. When the feed omits a distance the
// great-circle distance from the query centre is filled in.
func (c *PlacesClient) Search(ctx context.Context, lat, lon float64, category string, radius, limit int) ([]Place, error) {
	endpoint := fmt.Sprintf("%s?categories=%s&filter=circle:%f,%f,%d&limit=%d&apiKey=%s",
		c.searchBaseURL, category, lon, lat, radius, limit, c.apiKey)

	var raw geoapifyFeatureCollection
	if err := doGet(ctx, c.client, "geoapify places", endpoint, nil, &raw); err != nil {
		return nil, fmt.Errorf("places search %q at (%f, %f): %w", category, lat, lon, err)
	}

	places := make([]Place, 0, len(raw.Features))
	for _, f := range raw.Features {
		p := f.Properties
		if p.Name == "" {
			continue
		}
		dist := p.Distance
		if dist == 0 {
			dist = GreatCircleMeters(lat, lon, p.Lat, p.Lon)
		}
		places = append(places, Place{
			ID:         p.PlaceID,
			Name:       p.Name,
			Categories: p.Categories,
			Address:    p.Formatted,
			DistanceM:  dist,
			Location:   Coordinates{Lat: p.Lat, Lon: p.Lon},
		})
	}
	return places, nil
}

type geoapifyDetailResponse struct {
	Features []struct {
		Properties struct {
			PlaceID      string  `json:"place_id"`
			Description  string  `json:"description"`
			Website      string  `json:"website"`
			OpeningHours string  `json:"opening_hours"`
			Rating       float64 `json:"rating"`
			Reviews      int     `json:"reviews"`
			Image        string  `json:"image"`
		} `json:"properties"`
	} `json:"features"`
}

// Detail retrieves the enrichment record for one place id.
// Returns nil, nil when the upstream has no detail for the id.
func (c *PlacesClient) Detail(ctx context.Context, placeID string) (*PlaceDetail, error) {
	endpoint := fmt.Sprintf("%s?id=%s&apiKey=%s", c.detailBaseURL, placeID, c.apiKey)

	var raw geoapifyDetailResponse
	if err := doGet(ctx, c.client, "geoapify place details", endpoint, nil, &raw); err != nil {
		return nil, fmt.Errorf("place detail for %s: %w", placeID, err)
	}
	if len(raw.Features) == 0 {
		return nil, nil
	}

	p := raw.Features[0].Properties
	return &PlaceDetail{
		PlaceID:      firstNonEmpty(p.PlaceID, placeID),
		Rating:       p.Rating,
		Reviews:      p.Reviews,
		ImageURL:     p.Image,
		Description:  p.Description,
		OpeningHours: p.OpeningHours,
		Website:      p.Website,
	}, nil
}

// GreatCircleMeters is the great-circle distance between two points in meters.
func GreatCircleMeters(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}
