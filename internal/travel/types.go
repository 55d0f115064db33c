package travel

import "time"

// Coordinates is a geographic point in floating-point degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Currency describes one currency as reported by the country lookup.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Location is the resolved identity of a place. It is produced either by the
// name-based country lookup or by the coordinate reverse lookup; the reverse
// lookup leaves Population nil and Currencies empty. Missing fields mean
// "unknown", never zero.
type Location struct {
	Name         string              `json:"name"`
	OfficialName string              `json:"official_name"`
	CountryCode  string              `json:"country_code"`
	CountryCode3 string              `json:"country_code3,omitempty"`
	Capital      []string            `json:"capital,omitempty"`
	Region       string              `json:"region,omitempty"`
	Subregion    string              `json:"subregion,omitempty"`
	Population   *int64              `json:"population,omitempty"`
	Centroid     *Coordinates        `json:"centroid,omitempty"`
	FlagURL      string              `json:"flag_url,omitempty"`
	Currencies   map[string]Currency `json:"currencies,omitempty"`
	Timezones    []string            `json:"timezones,omitempty"`
}

// WeatherSnapshot holds current conditions for a coordinate. Humidity and
// ApparentTemp may be absent from the feed; consumers estimate them rather
// than this layer inventing values.
type WeatherSnapshot struct {
	Temperature   float64    `json:"temperature"`
	WeatherCode   int        `json:"weather_code"`
	WindSpeed     float64    `json:"wind_speed"`
	WindDirection float64    `json:"wind_direction"`
	Humidity      *int       `json:"humidity,omitempty"`
	ApparentTemp  *float64   `json:"apparent_temp,omitempty"`
	ObservedAt    *time.Time `json:"observed_at,omitempty"`
}

// CurrencyQuote is the conversion rate from the USD base to one target code.
type CurrencyQuote struct {
	Code      string    `json:"code"`
	Rate      float64   `json:"rate"`
	Base      string    `json:"base"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FlightStatus is the normalized state of a tracked flight.
type FlightStatus string

const (
	FlightActive    FlightStatus = "active"
	FlightScheduled FlightStatus = "scheduled"
	FlightCancelled FlightStatus = "cancelled"
	FlightUnknown   FlightStatus = "unknown"
)

// Airport identifies one end of a flight.
type Airport struct {
	IATA      string     `json:"iata"`
	Name      string     `json:"name"`
	City      string     `json:"city,omitempty"`
	Country   string     `json:"country,omitempty"`
	Scheduled *time.Time `json:"scheduled,omitempty"`
}

// Flight is a single in-flight record from the flight status feed.
type Flight struct {
	Airline      string       `json:"airline"`
	FlightNumber string       `json:"flight_number"`
	Departure    Airport      `json:"departure"`
	Arrival      Airport      `json:"arrival"`
	Status       FlightStatus `json:"status"`
}

// Place is a single point of interest near the query centre.
type Place struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Categories []string    `json:"categories,omitempty"`
	Address    string      `json:"address,omitempty"`
	DistanceM  float64     `json:"distance_m"`
	Location   Coordinates `json:"location"`
	Mock       bool        `json:"mock,omitempty"`
}

// PlaceDetail is the optional enrichment record for one place id.
type PlaceDetail struct {
	PlaceID      string  `json:"place_id"`
	Rating       float64 `json:"rating,omitempty"`
	Reviews      int     `json:"reviews,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	Description  string  `json:"description,omitempty"`
	OpeningHours string  `json:"opening_hours,omitempty"`
	Website      string  `json:"website,omitempty"`
}

// Photo is a stock photo with its required attribution.
type Photo struct {
	URL             string `json:"url"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographer_url,omitempty"`
	Alt             string `json:"alt,omitempty"`
}

// Tour is one of the four fixed tour concepts enriched for a destination.
// Rating and Reviews are synthetic, generated client-side within a fixed
// plausible range per concept; they are decorative, not sourced data, and
// Synthetic is always true for them.
type Tour struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	PriceUSD    int     `json:"price_usd"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Synthetic   bool    `json:"synthetic"`
	Photo       *Photo  `json:"photo,omitempty"`
}
