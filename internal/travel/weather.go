package travel

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// WeatherClient fetches current conditions from Open-Meteo (no API key required).
type WeatherClient struct {
	baseURL string
	client  *http.Client
}

const openMeteoDefaultURL = "https://api.open-meteo.com/v1/forecast"

// NewWeatherClient constructs a WeatherClient.
func NewWeatherClient() *WeatherClient {
	return &WeatherClient{baseURL: openMeteoDefaultURL, client: newHTTPClient()}
}

// NewWeatherClientWithURL constructs a WeatherClient pointing at a custom base URL (for tests).
func NewWeatherClientWithURL(baseURL string) *WeatherClient {
	return &WeatherClient{baseURL: baseURL, client: newHTTPClient()}
}

type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature   float64 `json:"temperature"`
		WeatherCode   int     `json:"weathercode"`
		WindSpeed     float64 `json:"windspeed"`
		WindDirection float64 `json:"winddirection"`
		Time          string  `json:"time"`
	} `json:"current_weather"`
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// Current retrieves current conditions for (lat, lon).
func (c *WeatherClient) Current(ctx context.Context, lat, lon float64) (*WeatherSnapshot, error) {
	endpoint := fmt.Sprintf("%s?latitude=%f&longitude=%f&current_weather=true&timezone=auto",
		c.baseURL, lat, lon)

	var raw openMeteoResponse
	if err := doGet(ctx, c.client, "open-meteo", endpoint, nil, &raw); err != nil {
		return nil, fmt.Errorf("weather fetch at (%f, %f): %w", lat, lon, err)
	}
	if raw.Error {
		return nil, fmt.Errorf("weather fetch at (%f, %f): %s", lat, lon, raw.Reason)
	}

	snap := &WeatherSnapshot{
		Temperature:   raw.CurrentWeather.Temperature,
		WeatherCode:   raw.CurrentWeather.WeatherCode,
		WindSpeed:     raw.CurrentWeather.WindSpeed,
		WindDirection: raw.CurrentWeather.WindDirection,
	}
	if ts, err := time.Parse("2006-01-02T15:04", raw.CurrentWeather.Time); err == nil {
		snap.ObservedAt = &ts
	}
	return snap, nil
}
