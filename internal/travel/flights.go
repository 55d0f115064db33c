package travel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// FlightsClient fetches active flights from AviationStack. The upstream quota
// is tight, so callers cache results aggressively and never paginate.
type FlightsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limit   int
}

const (
	aviationStackDefaultURL = "https://api.aviationstack.com/v1/flights"
	flightLimit             = 5
)

// NewFlightsClient constructs a FlightsClient with the given API key.
func NewFlightsClient(apiKey string) *FlightsClient {
	return &FlightsClient{apiKey: apiKey, baseURL: aviationStackDefaultURL, client: newHTTPClient(), limit: flightLimit}
}

// NewFlightsClientWithURL constructs a FlightsClient pointing at a custom base URL (for tests).
func NewFlightsClientWithURL(baseURL, apiKey string) *FlightsClient {
	return &FlightsClient{apiKey: apiKey, baseURL: baseURL, client: newHTTPClient(), limit: flightLimit}
}

type aviationStackResponse struct {
	Data []struct {
		FlightStatus string `json:"flight_status"`
		Airline      struct {
			Name string `json:"name"`
		} `json:"airline"`
		Flight struct {
			IATA string `json:"iata"`
		} `json:"flight"`
		Departure aviationStackAirport `json:"departure"`
		Arrival   aviationStackAirport `json:"arrival"`
	} `json:"data"`
}

type aviationStackAirport struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	Timezone  string `json:"timezone"`
	Scheduled string `json:"scheduled"`
}

// Active retrieves up to the limit of in-flight records departing from the
// given country code.
func (c *FlightsClient) Active(ctx context.Context, countryCode string) ([]Flight, error) {
	params := url.Values{}
	params.Set("access_key", c.apiKey)
	params.Set("flight_status", "active")
	params.Set("dep_country", countryCode)
	params.Set("limit", fmt.Sprintf("%d", c.limit))

	var raw aviationStackResponse
	if err := doGet(ctx, c.client, "aviationstack", c.baseURL+"?"+params.Encode(), nil, &raw); err != nil {
		return nil, fmt.Errorf("flights fetch for %s: %w", countryCode, err)
	}

	flights := make([]Flight, 0, len(raw.Data))
	for _, d := range raw.Data {
		if len(flights) >= c.limit {
			break
		}
		flights = append(flights, Flight{
			Airline:      d.Airline.Name,
			FlightNumber: d.Flight.IATA,
			Departure:    toAirport(d.Departure),
			Arrival:      toAirport(d.Arrival),
			Status:       toFlightStatus(d.FlightStatus),
		})
	}
	return flights, nil
}

func toAirport(a aviationStackAirport) Airport {
	ap := Airport{IATA: a.IATA, Name: a.Airport}
	if ts, err := time.Parse(time.RFC3339, a.Scheduled); err == nil {
		ap.Scheduled = &ts
	}
	return ap
}

func toFlightStatus(s string) FlightStatus {
	switch s {
	case "active":
		return FlightActive
	case "scheduled":
		return FlightScheduled
	case "cancelled":
		return FlightCancelled
	default:
		return FlightUnknown
	}
}
