package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/travel-dashboard/internal/config"
)

func setAllRequired(t *testing.T) {
	t.Helper()
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("BEARER_TOKEN", "secret")
	t.Setenv("GEOAPIFY_API_KEY", "geo-key")
	t.Setenv("AVIATIONSTACK_API_KEY", "avia-key")
	t.Setenv("PEXELS_API_KEY", "pexels-key")
	t.Setenv("CURRENCY_API_URL", "https://rates.example/v1/latest")
}

func TestFromEnv_AllSet(t *testing.T) {
	setAllRequired(t)
	t.Setenv("PORT", "9090")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "secret", cfg.BearerToken)
	assert.Equal(t, "geo-key", cfg.GeoapifyKey)
	assert.Equal(t, "avia-key", cfg.AviationStackKey)
	assert.Equal(t, "pexels-key", cfg.PexelsKey)
	assert.Equal(t, "https://rates.example/v1/latest", cfg.CurrencyRatesURL)
}

func TestFromEnv_PortDefaults(t *testing.T) {
	setAllRequired(t)
	t.Setenv("PORT", "")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestFromEnv_MissingKeysAllNamed(t *testing.T) {
	setAllRequired(t)
	t.Setenv("BEARER_TOKEN", "")
	t.Setenv("PEXELS_API_KEY", "")

	_, err := config.FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BEARER_TOKEN")
	assert.Contains(t, err.Error(), "PEXELS_API_KEY")
	assert.NotContains(t, err.Error(), "GEOAPIFY_API_KEY")
}
