// Package view shapes orchestrator snapshots into the flat object rendering
// components consume. It adds a couple of derived display fields but no
// orchestration logic of its own.
package view

import (
	"math"

	"github.com/voyago/travel-dashboard/internal/query"
	"github.com/voyago/travel-dashboard/internal/travel"
)

// Weather is a render-ready weather panel. FeelsLike is always populated:
// when the feed omits an apparent temperature it is estimated from
// temperature and wind, and FeelsLikeEstimated marks that.
type Weather struct {
	Temperature        float64 `json:"temperature"`
	WeatherCode        int     `json:"weather_code"`
	WindSpeed          float64 `json:"wind_speed"`
	WindDirection      float64 `json:"wind_direction"`
	Humidity           *int    `json:"humidity,omitempty"`
	FeelsLike          float64 `json:"feels_like"`
	FeelsLikeEstimated bool    `json:"feels_like_estimated"`
}

// PlaceView is a place zipped with its detail record, when one resolved.
type PlaceView struct {
	travel.Place
	Detail *travel.PlaceDetail `json:"detail,omitempty"`
}

// Destination is the single synchronous snapshot object handed to rendering:
// six raw results, derived keys, aggregate flags, and a per-query status map.
type Destination struct {
	Query travel.Query `json:"query"`
	Keys  travel.Keys  `json:"keys"`

	Location *travel.Location      `json:"location,omitempty"`
	Weather  *Weather              `json:"weather,omitempty"`
	Currency *travel.CurrencyQuote `json:"currency,omitempty"`
	Airports []travel.Flight       `json:"airports,omitempty"`
	Places   []PlaceView           `json:"places,omitempty"`
	Tours    []travel.Tour         `json:"tours,omitempty"`

	Statuses  map[query.Kind]query.Status `json:"statuses"`
	IsLoading bool                        `json:"is_loading"`
	IsError   bool                        `json:"is_error"`
	Error     string                      `json:"error,omitempty"`
}

// Assemble flattens a snapshot into a Destination.
func Assemble(snap *query.Snapshot) *Destination {
	d := &Destination{
		Query:     snap.Query,
		Keys:      snap.Keys,
		Location:  snap.Location,
		Currency:  snap.Currency,
		Airports:  snap.Airports,
		Tours:     snap.Tours,
		Statuses:  snap.Statuses,
		IsLoading: snap.IsLoading,
		IsError:   snap.IsError,
	}
	if snap.Err != nil {
		d.Error = snap.Err.Error()
	}
	if snap.Weather != nil {
		d.Weather = assembleWeather(snap.Weather)
	}
	if len(snap.Places) > 0 {
		d.Places = zipPlaces(snap.Places, snap.PlaceDetails)
	}
	return d
}

func assembleWeather(w *travel.WeatherSnapshot) *Weather {
	out := &Weather{
		Temperature:   w.Temperature,
		WeatherCode:   w.WeatherCode,
		WindSpeed:     w.WindSpeed,
		WindDirection: w.WindDirection,
		Humidity:      w.Humidity,
	}
	if w.ApparentTemp != nil {
		out.FeelsLike = *w.ApparentTemp
	} else {
		out.FeelsLike = estimateFeelsLike(w.Temperature, w.WindSpeed)
		out.FeelsLikeEstimated = true
	}
	return out
}

// estimateFeelsLike is a rough apparent-temperature estimate used only when
// the feed omits one: wind shaves up to a few degrees off the air
// temperature. Rounded to one decimal.
func estimateFeelsLike(tempC, windKmh float64) float64 {
	feels := tempC - math.Min(windKmh/15, 3)
	return math.Round(feels*10) / 10
}

func zipPlaces(places []travel.Place, details []travel.PlaceDetail) []PlaceView {
	byID := make(map[string]*travel.PlaceDetail, len(details))
	for i := range details {
		byID[details[i].PlaceID] = &details[i]
	}

	out := make([]PlaceView, 0, len(places))
	for _, p := range places {
		out = append(out, PlaceView{Place: p, Detail: byID[p.ID]})
	}
	return out
}
