package view_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/travel-dashboard/internal/query"
	"github.com/voyago/travel-dashboard/internal/travel"
	"github.com/voyago/travel-dashboard/internal/view"
)

func TestAssemble_WeatherFeelsLikeFromFeed(t *testing.T) {
	apparent := 19.5
	snap := &query.Snapshot{
		Weather:  &travel.WeatherSnapshot{Temperature: 22, WindSpeed: 30, ApparentTemp: &apparent},
		Statuses: map[query.Kind]query.Status{},
	}

	d := view.Assemble(snap)

	require.NotNil(t, d.Weather)
	assert.Equal(t, 19.5, d.Weather.FeelsLike)
	assert.False(t, d.Weather.FeelsLikeEstimated)
}

func TestAssemble_WeatherFeelsLikeEstimated(t *testing.T) {
	snap := &query.Snapshot{
		Weather:  &travel.WeatherSnapshot{Temperature: 22, WindSpeed: 30},
		Statuses: map[query.Kind]query.Status{},
	}

	d := view.Assemble(snap)

	require.NotNil(t, d.Weather)
	// 22 - min(30/15, 3) = 20, wind capped at a 3 degree reduction.
	assert.Equal(t, 20.0, d.Weather.FeelsLike)
	assert.True(t, d.Weather.FeelsLikeEstimated)
}

func TestAssemble_WeatherFeelsLikeWindCapped(t *testing.T) {
	snap := &query.Snapshot{
		Weather:  &travel.WeatherSnapshot{Temperature: 10, WindSpeed: 90},
		Statuses: map[query.Kind]query.Status{},
	}

	d := view.Assemble(snap)

	require.NotNil(t, d.Weather)
	assert.Equal(t, 7.0, d.Weather.FeelsLike)
}

func TestAssemble_ZipsPlacesWithDetails(t *testing.T) {
	snap := &query.Snapshot{
		Places: []travel.Place{
			{ID: "a", Name: "Louvre"},
			{ID: "b", Name: "Eiffel Tower"},
			{ID: "c", Name: "Notre-Dame"},
		},
		PlaceDetails: []travel.PlaceDetail{
			{PlaceID: "c", Rating: 4.8},
			{PlaceID: "a", Rating: 4.6},
		},
		Statuses: map[query.Kind]query.Status{},
	}

	d := view.Assemble(snap)

	require.Len(t, d.Places, 3)
	require.NotNil(t, d.Places[0].Detail)
	assert.Equal(t, 4.6, d.Places[0].Detail.Rating)
	assert.Nil(t, d.Places[1].Detail, "no detail record resolved for this place")
	require.NotNil(t, d.Places[2].Detail)
	assert.Equal(t, 4.8, d.Places[2].Detail.Rating)
}

func TestAssemble_ErrorString(t *testing.T) {
	snap := &query.Snapshot{
		Err:      errors.New("rates api down"),
		IsError:  true,
		Statuses: map[query.Kind]query.Status{},
	}

	d := view.Assemble(snap)

	assert.True(t, d.IsError)
	assert.Equal(t, "rates api down", d.Error)
	assert.Nil(t, d.Weather)
	assert.Empty(t, d.Places)
}

func TestAssemble_PassesThroughAggregates(t *testing.T) {
	snap := &query.Snapshot{
		Query:    travel.Query{Name: "France"},
		Keys:     travel.Keys{CurrencyCode: "EUR", CountryCode: "FR", DisplayName: "France"},
		Location: &travel.Location{Name: "France", CountryCode: "FR"},
		Currency: &travel.CurrencyQuote{Code: "EUR", Rate: 0.92, Base: "USD"},
		Airports: []travel.Flight{{Airline: "Air France"}},
		Tours:    []travel.Tour{{Title: "City Highlights Tour"}},
		Statuses: map[query.Kind]query.Status{query.KindLocation: query.StatusSuccess},
	}

	d := view.Assemble(snap)

	assert.Equal(t, "France", d.Query.Name)
	assert.Equal(t, "EUR", d.Keys.CurrencyCode)
	require.NotNil(t, d.Location)
	assert.Equal(t, "FR", d.Location.CountryCode)
	require.Len(t, d.Airports, 1)
	require.Len(t, d.Tours, 1)
	assert.Equal(t, query.StatusSuccess, d.Statuses[query.KindLocation])
}
