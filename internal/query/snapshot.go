package query

import (
	"github.com/voyago/travel-dashboard/internal/travel"
)

// Kind identifies one of the dependent query kinds the orchestrator manages.
type Kind string

const (
	KindLocation     Kind = "location"
	KindWeather      Kind = "weather"
	KindCurrency     Kind = "currency"
	KindAirports     Kind = "airports"
	KindPlaces       Kind = "places"
	KindPlaceDetails Kind = "place_details"
	KindTours        Kind = "tours"
)

// Kinds lists every query kind in aggregate-error priority order: the first
// errored kind in this order becomes the aggregate error.
var Kinds = []Kind{
	KindLocation,
	KindWeather,
	KindCurrency,
	KindAirports,
	KindPlaces,
	KindPlaceDetails,
	KindTours,
}

// Status is the lifecycle state of one query kind.
type Status string

const (
	// StatusIdle means the query is not enabled: its prerequisite key has not
	// resolved. Idle queries count as neither loading nor errored.
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Snapshot is one coherent view of the orchestrator's state: the six raw
// results, the derived keys, per-kind statuses, and the aggregate flags the
// UI branches on. Rendering code never re-derives orchestration logic.
type Snapshot struct {
	Query travel.Query
	Keys  travel.Keys

	Location     *travel.Location
	Weather      *travel.WeatherSnapshot
	Currency     *travel.CurrencyQuote
	Airports     []travel.Flight
	Places       []travel.Place
	PlaceDetails []travel.PlaceDetail
	Tours        []travel.Tour

	Statuses map[Kind]Status

	// IsLoading is true iff at least one enabled query is still pending and
	// no aggregate error is set.
	IsLoading bool
	IsError   bool
	Err       error
}

// state is the mutable record the orchestrator keeps per kind.
type state struct {
	status Status
	value  any
	err    error
}

// buildSnapshot assembles an immutable Snapshot from per-kind states.
func buildSnapshot(q travel.Query, keys travel.Keys, states map[Kind]state) *Snapshot {
	snap := &Snapshot{
		Query:    q,
		Keys:     keys,
		Statuses: make(map[Kind]Status, len(Kinds)),
	}

	pending := false
	for _, kind := range Kinds {
		st, ok := states[kind]
		if !ok {
			st = state{status: StatusIdle}
		}
		snap.Statuses[kind] = st.status
		if st.status == StatusPending {
			pending = true
		}
		if st.status == StatusError && snap.Err == nil {
			snap.Err = st.err
		}
		if st.status != StatusSuccess {
			continue
		}
		switch kind {
		case KindLocation:
			snap.Location, _ = st.value.(*travel.Location)
		case KindWeather:
			snap.Weather, _ = st.value.(*travel.WeatherSnapshot)
		case KindCurrency:
			snap.Currency, _ = st.value.(*travel.CurrencyQuote)
		case KindAirports:
			snap.Airports, _ = st.value.([]travel.Flight)
		case KindPlaces:
			snap.Places, _ = st.value.([]travel.Place)
		case KindPlaceDetails:
			snap.PlaceDetails, _ = st.value.([]travel.PlaceDetail)
		case KindTours:
			snap.Tours, _ = st.value.([]travel.Tour)
		}
	}

	snap.IsError = snap.Err != nil
	snap.IsLoading = pending && !snap.IsError
	return snap
}
