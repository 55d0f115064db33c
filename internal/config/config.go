// Package config builds the immutable process configuration. API keys are
// read once at startup; a missing required key fails construction, not the
// first request that needs it.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the process needs. Constructed once in main and
// passed by reference; never mutated afterwards.
type Config struct {
	Port        string
	RedisURL    string
	BearerToken string

	GeoapifyKey      string
	AviationStackKey string
	PexelsKey        string
	CurrencyRatesURL string
}

// required maps env var names to the Config field they populate.
var required = []string{
	"REDIS_URL",
	"BEARER_TOKEN",
	"GEOAPIFY_API_KEY",
	"AVIATIONSTACK_API_KEY",
	"PEXELS_API_KEY",
	"CURRENCY_API_URL",
}

// FromEnv reads configuration from the environment. All required keys are
// validated up front; the error names every missing one so a deployment
// defect surfaces immediately and completely.
func FromEnv() (*Config, error) {
	var missing []string
	for _, key := range required {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		RedisURL:         os.Getenv("REDIS_URL"),
		BearerToken:      os.Getenv("BEARER_TOKEN"),
		GeoapifyKey:      os.Getenv("GEOAPIFY_API_KEY"),
		AviationStackKey: os.Getenv("AVIATIONSTACK_API_KEY"),
		PexelsKey:        os.Getenv("PEXELS_API_KEY"),
		CurrencyRatesURL: os.Getenv("CURRENCY_API_URL"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
