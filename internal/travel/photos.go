package travel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// PhotoClient searches stock photography on Pexels. The API key goes in the
// Authorization header, not the query string.
type PhotoClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

const pexelsDefaultURL = "https://api.pexels.com/v1/search"

// NewPhotoClient constructs a PhotoClient with the given API key.
func NewPhotoClient(apiKey string) *PhotoClient {
	return &PhotoClient{apiKey: apiKey, baseURL: pexelsDefaultURL, client: newHTTPClient()}
}

// NewPhotoClientWithURL constructs a PhotoClient pointing at a custom base URL (for tests).
func NewPhotoClientWithURL(baseURL, apiKey string) *PhotoClient {
	return &PhotoClient{apiKey: apiKey, baseURL: baseURL, client: newHTTPClient()}
}

type pexelsResponse struct {
	Photos []struct {
		Photographer    string `json:"photographer"`
		PhotographerURL string `json:"photographer_url"`
		Alt             string `json:"alt"`
		Src             struct {
			Large  string `json:"large"`
			Medium string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

// Search retrieves up to perPage photos matching the query.
func (c *PhotoClient) Search(ctx context.Context, query string, perPage int) ([]Photo, error) {
	if query == "" {
		query = "travel"
	}
	endpoint := fmt.Sprintf("%s?query=%s&per_page=%d", c.baseURL, url.QueryEscape(query), perPage)
	header := http.Header{"Authorization": []string{c.apiKey}}

	var raw pexelsResponse
	if err := doGet(ctx, c.client, "pexels", endpoint, header, &raw); err != nil {
		return nil, fmt.Errorf("photo search %q: %w", query, err)
	}

	photos := make([]Photo, 0, len(raw.Photos))
	for _, p := range raw.Photos {
		photos = append(photos, Photo{
			URL:             firstNonEmpty(p.Src.Large, p.Src.Medium),
			Photographer:    p.Photographer,
			PhotographerURL: p.PhotographerURL,
			Alt:             p.Alt,
		})
	}
	return photos, nil
}
