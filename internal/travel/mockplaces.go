package travel

import "math/rand/v2"

// mockEntry is a curated place plus the bounded range its distance is drawn
// from at read time.
type mockEntry struct {
	place      Place
	minM, maxM float64
}

// Curated fallback buckets. Everything except the distance is fixed so tests
// can assert on ids, names, and categories.
var mockBuckets = map[string][]mockEntry{
	"France": {
		{place: Place{ID: "mock-fr-1", Name: "Eiffel Tower", Categories: []string{"tourism", "tourism.attraction"}, Address: "Champ de Mars, Paris", Location: Coordinates{Lat: 48.8584, Lon: 2.2945}}, minM: 500, maxM: 5000},
		{place: Place{ID: "mock-fr-2", Name: "Louvre Museum", Categories: []string{"tourism", "entertainment.museum"}, Address: "Rue de Rivoli, Paris", Location: Coordinates{Lat: 48.8606, Lon: 2.3376}}, minM: 500, maxM: 5000},
		{place: Place{ID: "mock-fr-3", Name: "Notre-Dame Cathedral", Categories: []string{"religion", "tourism.sights"}, Address: "Île de la Cité, Paris", Location: Coordinates{Lat: 48.8530, Lon: 2.3499}}, minM: 500, maxM: 6000},
		{place: Place{ID: "mock-fr-4", Name: "Mont Saint-Michel", Categories: []string{"tourism", "tourism.sights"}, Address: "Normandy", Location: Coordinates{Lat: 48.6361, Lon: -1.5115}}, minM: 20000, maxM: 50000},
	},
	"Japan": {
		{place: Place{ID: "mock-jp-1", Name: "Senso-ji Temple", Categories: []string{"religion", "tourism.sights"}, Address: "Asakusa, Tokyo", Location: Coordinates{Lat: 35.7148, Lon: 139.7967}}, minM: 500, maxM: 5000},
		{place: Place{ID: "mock-jp-2", Name: "Fushimi Inari Shrine", Categories: []string{"religion", "tourism.sights"}, Address: "Fushimi Ward, Kyoto", Location: Coordinates{Lat: 34.9671, Lon: 135.7727}}, minM: 1000, maxM: 10000},
		{place: Place{ID: "mock-jp-3", Name: "Shibuya Crossing", Categories: []string{"tourism", "commercial"}, Address: "Shibuya, Tokyo", Location: Coordinates{Lat: 35.6595, Lon: 139.7005}}, minM: 500, maxM: 5000},
		{place: Place{ID: "mock-jp-4", Name: "Mount Fuji Viewpoint", Categories: []string{"natural", "tourism.attraction"}, Address: "Yamanashi Prefecture", Location: Coordinates{Lat: 35.3606, Lon: 138.7274}}, minM: 20000, maxM: 50000},
	},
}

var mockGenericBucket = []mockEntry{
	{place: Place{ID: "mock-gen-1", Name: "Old Town Square", Categories: []string{"tourism", "tourism.sights"}, Address: "City centre"}, minM: 300, maxM: 3000},
	{place: Place{ID: "mock-gen-2", Name: "National Museum", Categories: []string{"entertainment.museum", "tourism"}, Address: "Museum district"}, minM: 500, maxM: 5000},
	{place: Place{ID: "mock-gen-3", Name: "Central Market Hall", Categories: []string{"commercial", "catering"}, Address: "Market street"}, minM: 300, maxM: 4000},
	{place: Place{ID: "mock-gen-4", Name: "Riverside Park", Categories: []string{"natural", "leisure.park"}, Address: "Riverbank"}, minM: 500, maxM: 6000},
}

// MockPlaces returns the deterministic fallback place list for a country
// display name, so the dashboard never renders a hard empty state when the
// live search comes back dry. Unrecognized country names get the generic
// bucket. Distances are randomized within each entry's bounded range at read
// time; every other field is fixed.
func MockPlaces(countryName string) []Place {
	entries, ok := mockBuckets[countryName]
	if !ok {
		entries = mockGenericBucket
	}

	places := make([]Place, 0, len(entries))
	for _, e := range entries {
		p := e.place
		p.DistanceM = e.minM + rand.Float64()*(e.maxM-e.minM)
		p.Mock = true
		places = append(places, p)
	}
	return places
}
