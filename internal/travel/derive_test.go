package travel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/travel-dashboard/internal/travel"
)

func franceLocation() *travel.Location {
	pop := int64(67391582)
	return &travel.Location{
		Name:         "France",
		OfficialName: "French Republic",
		CountryCode:  "FR",
		Capital:      []string{"Paris"},
		Population:   &pop,
		Centroid:     &travel.Coordinates{Lat: 46.0, Lon: 2.0},
		Currencies:   map[string]travel.Currency{"EUR": {Name: "Euro", Symbol: "€"}},
	}
}

func TestDerive_NameQuery(t *testing.T) {
	keys := travel.Derive(franceLocation(), travel.Query{Name: "france"})

	require.NotNil(t, keys.Coordinates)
	assert.Equal(t, 46.0, keys.Coordinates.Lat)
	assert.Equal(t, 2.0, keys.Coordinates.Lon)
	assert.Equal(t, "EUR", keys.CurrencyCode)
	assert.Equal(t, "FR", keys.CountryCode)
	assert.Equal(t, "France", keys.DisplayName)
}

func TestDerive_CoordinateQueryPrefersUserCoordinates(t *testing.T) {
	q := travel.Query{Coordinates: &travel.Coordinates{Lat: 48.85, Lon: 2.35}}
	keys := travel.Derive(franceLocation(), q)

	require.NotNil(t, keys.Coordinates)
	assert.Equal(t, 48.85, keys.Coordinates.Lat, "explicit user coordinates win over the centroid")
	assert.Equal(t, 2.35, keys.Coordinates.Lon)
}

func TestDerive_NilLocation(t *testing.T) {
	keys := travel.Derive(nil, travel.Query{Name: "france"})

	assert.Nil(t, keys.Coordinates)
	assert.Empty(t, keys.CurrencyCode)
	assert.Empty(t, keys.CountryCode)
	assert.Equal(t, "france", keys.DisplayName, "display name falls back to the raw query string")
}

func TestDerive_MissingFieldsDegradeToZero(t *testing.T) {
	loc := &travel.Location{OfficialName: "Somewhere Official"}
	keys := travel.Derive(loc, travel.Query{Name: "somewhere"})

	assert.Nil(t, keys.Coordinates)
	assert.Empty(t, keys.CurrencyCode)
	assert.Empty(t, keys.CountryCode)
	assert.Equal(t, "Somewhere Official", keys.DisplayName, "official name fills in for a missing common name")
}

func TestDerive_CurrencyCodeDeterministic(t *testing.T) {
	loc := franceLocation()
	loc.Currencies = map[string]travel.Currency{
		"USD": {Name: "US Dollar"},
		"EUR": {Name: "Euro"},
		"GBP": {Name: "Pound"},
	}

	// Map order is random; the derived code must not be.
	for i := 0; i < 20; i++ {
		keys := travel.Derive(loc, travel.Query{Name: "x"})
		assert.Equal(t, "EUR", keys.CurrencyCode)
	}
}

func TestQuery_IsZero(t *testing.T) {
	assert.True(t, travel.Query{}.IsZero())
	assert.False(t, travel.Query{Name: "France"}.IsZero())
	assert.False(t, travel.Query{Coordinates: &travel.Coordinates{}}.IsZero())
}
