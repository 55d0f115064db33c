package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/voyago/travel-dashboard/internal/travel"
)

// Consumer-side interfaces, each satisfied by the corresponding travel client.

type locationResolver interface {
	ByName(ctx context.Context, name string) (*travel.Location, error)
}

type geoResolver interface {
	ByCoordinates(ctx context.Context, lat, lon float64) (*travel.Location, error)
}

type weatherFetcher interface {
	Current(ctx context.Context, lat, lon float64) (*travel.WeatherSnapshot, error)
}

type currencyFetcher interface {
	Rate(ctx context.Context, code string) (*travel.CurrencyQuote, error)
}

type flightsFetcher interface {
	Active(ctx context.Context, countryCode string) ([]travel.Flight, error)
}

type placesSearcher interface {
	Search(ctx context.Context, lat, lon float64, category string, radius, limit int) ([]travel.Place, error)
}

type placeDetailFetcher interface {
	Detail(ctx context.Context, placeID string) (*travel.PlaceDetail, error)
}

type photoSearcher interface {
	Search(ctx context.Context, query string, perPage int) ([]travel.Photo, error)
}

// Clients bundles the remote data clients the orchestrator fans out to.
type Clients struct {
	Location locationResolver
	Geo      geoResolver
	Weather  weatherFetcher
	Currency currencyFetcher
	Flights  flightsFetcher
	Places   placesSearcher
	Details  placeDetailFetcher
	Photos   photoSearcher
}

// Category fallback chain for the places search, tried in order when the
// primary tourism search comes back empty.
var fallbackCategories = []string{
	"accommodation",
	"catering",
	"commercial",
	"entertainment",
	"natural",
	"religion",
	"sport",
}

const (
	primaryPlaceCategory = "tourism"

	// detailLookupLimit bounds the secondary fan-out for place details.
	detailLookupLimit = 3

	defaultFetchTimeout = 10 * time.Second
)

// Orchestrator owns the dependency graph between the destination queries. It
// resolves the primary location, derives the dependent keys, fans out the
// enabled queries, and maintains one coherent status snapshot. Results are
// cached per (kind, resolved key) and concurrent identical fetches are
// deduplicated.
type Orchestrator struct {
	clients Clients
	cache   *Cache
	sf      singleflight.Group
	timeout time.Duration
	log     *slog.Logger

	mu     sync.RWMutex
	gen    uint64
	query  travel.Query
	keys   travel.Keys
	states map[Kind]state
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTimeout bounds each individual fetch attempt. Every suspension point is
// bounded so the aggregate loading flag can never hang.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithCache swaps in a caller-owned cache (shared across orchestrators, or a
// test fixture with a fake clock).
func WithCache(c *Cache) Option {
	return func(o *Orchestrator) { o.cache = c }
}

// New constructs an Orchestrator.
func New(clients Clients, log *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		clients: clients,
		cache:   NewCache(),
		timeout: defaultFetchTimeout,
		log:     log,
		states:  make(map[Kind]state),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Snapshot returns the current aggregate state. Safe to call at any time,
// including while a Resolve is in flight.
func (o *Orchestrator) Snapshot() *Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return buildSnapshot(o.query, o.keys, o.states)
}

// Resolve drives one destination query to settlement and returns the final
// snapshot. If a newer Resolve starts before this one settles, the stale
// results are discarded: the visible state always reflects the newest query.
func (o *Orchestrator) Resolve(ctx context.Context, q travel.Query) *Snapshot {
	gen := o.begin(q)

	if q.IsZero() {
		return o.snapshotAt(gen, q)
	}

	loc, err := o.resolveLocation(ctx, gen, q)
	if err != nil {
		// Dependents stay idle, not errored.
		return o.snapshotAt(gen, q)
	}

	keys := travel.Derive(loc, q)
	o.setKeys(gen, keys)

	var places []travel.Place
	g, gCtx := errgroup.WithContext(ctx)

	if keys.Coordinates != nil {
		c := *keys.Coordinates
		g.Go(func() error {
			key := coordKey(c)
			o.run(gCtx, gen, KindWeather, key, func(ctx context.Context) (any, error) {
				return o.clients.Weather.Current(ctx, c.Lat, c.Lon)
			})
			return nil
		})
	}

	if keys.CurrencyCode != "" {
		code := keys.CurrencyCode
		g.Go(func() error {
			o.run(gCtx, gen, KindCurrency, code, func(ctx context.Context) (any, error) {
				return o.clients.Currency.Rate(ctx, code)
			})
			return nil
		})
	}

	if keys.CountryCode != "" {
		cc := keys.CountryCode
		g.Go(func() error {
			o.run(gCtx, gen, KindAirports, cc, func(ctx context.Context) (any, error) {
				return o.clients.Flights.Active(ctx, cc)
			})
			return nil
		})
	}

	if keys.Coordinates != nil && keys.DisplayName != "" {
		c := *keys.Coordinates
		name := keys.DisplayName
		g.Go(func() error {
			key := coordKey(c) + "|" + strings.ToLower(name)
			v, _ := o.run(gCtx, gen, KindPlaces, key, func(ctx context.Context) (any, error) {
				return o.searchPlaces(ctx, c, name), nil
			})
			places, _ = v.([]travel.Place)
			return nil
		})
	}

	g.Go(func() error {
		key := strings.ToLower(keys.DisplayName)
		o.run(gCtx, gen, KindTours, key, func(ctx context.Context) (any, error) {
			return travel.BuildTours(ctx, o.clients.Photos, loc, o.log), nil
		})
		return nil
	})

	_ = g.Wait()

	if targets := detailTargets(places); len(targets) > 0 {
		o.run(ctx, gen, KindPlaceDetails, placesKey(targets), func(ctx context.Context) (any, error) {
			return o.fetchDetails(ctx, targets), nil
		})
	}

	return o.snapshotAt(gen, q)
}

// begin starts a new generation: all states reset to idle and any in-flight
// fetches from earlier generations will have their results discarded.
func (o *Orchestrator) begin(q travel.Query) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen++
	o.query = q
	o.keys = travel.Keys{}
	o.states = make(map[Kind]state)
	return o.gen
}

// setState applies a state transition, dropping it when a newer generation
// has started. This is the stale-result guard: a slow response for an old
// query can never overwrite the new query's state.
func (o *Orchestrator) setState(gen uint64, kind Kind, st state) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return
	}
	o.states[kind] = st
}

func (o *Orchestrator) setKeys(gen uint64, keys travel.Keys) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return
	}
	o.keys = keys
}

// snapshotAt builds the snapshot for gen. A stale generation falls back to
// the current state so callers always see the newest query's view.
func (o *Orchestrator) snapshotAt(gen uint64, q travel.Query) *Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if gen != o.gen {
		return buildSnapshot(o.query, o.keys, o.states)
	}
	return buildSnapshot(q, o.keys, o.states)
}

// run executes one query kind: pending transition, cache/dedup read, fetch
// with a bounded timeout, then a terminal success or error transition.
func (o *Orchestrator) run(ctx context.Context, gen uint64, kind Kind, key string, fetch func(context.Context) (any, error)) (any, error) {
	o.setState(gen, kind, state{status: StatusPending})

	v, err := o.cachedFetch(ctx, kind, key, fetch)
	if err != nil {
		o.log.Warn("query failed", "kind", kind, "key", key, "err", err)
		o.setState(gen, kind, state{status: StatusError, err: err})
		return nil, err
	}

	o.setState(gen, kind, state{status: StatusSuccess, value: v})
	return v, nil
}

// cachedFetch consults the cache first, then deduplicates concurrent
// identical fetches through singleflight. Settled outcomes, errors included,
// are written back with the kind's TTL.
func (o *Orchestrator) cachedFetch(ctx context.Context, kind Kind, key string, fetch func(context.Context) (any, error)) (any, error) {
	if v, err, ok := o.cache.Get(kind, key); ok {
		return v, err
	}

	sfKey := string(kind) + "|" + key
	v, err, _ := o.sf.Do(sfKey, func() (any, error) {
		if v, err, ok := o.cache.Get(kind, key); ok {
			return v, err
		}

		fctx, cancel := context.WithTimeout(ctx, o.timeout)
		defer cancel()

		v, err := fetch(fctx)
		if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			// Not a settled upstream outcome: the caller went away or the
			// fetch timed out. Caching it would pin the failure for the
			// kind's full TTL, so the next caller refetches instead.
			return v, err
		}
		o.cache.Put(kind, key, v, err)
		return v, err
	})
	return v, err
}

// resolveLocation runs the primary lookup. Name takes priority over
// coordinates; the coordinate path cannot fail (the geocode client degrades
// to a default record instead).
func (o *Orchestrator) resolveLocation(ctx context.Context, gen uint64, q travel.Query) (*travel.Location, error) {
	var (
		key   string
		fetch func(context.Context) (any, error)
	)
	if q.Name != "" {
		name := q.Name
		key = "name:" + strings.ToLower(strings.TrimSpace(name))
		fetch = func(ctx context.Context) (any, error) {
			return o.clients.Location.ByName(ctx, name)
		}
	} else {
		c := *q.Coordinates
		key = "geo:" + coordKey(c)
		fetch = func(ctx context.Context) (any, error) {
			return o.clients.Geo.ByCoordinates(ctx, c.Lat, c.Lon)
		}
	}

	v, err := o.run(ctx, gen, KindLocation, key, fetch)
	if err != nil {
		return nil, err
	}
	loc, ok := v.(*travel.Location)
	if !ok || loc == nil {
		err := fmt.Errorf("location resolved to nothing: %w", travel.ErrNotFound)
		o.setState(gen, KindLocation, state{status: StatusError, err: err})
		return nil, err
	}
	return loc, nil
}

// searchPlaces runs the primary tourism search, then the fixed category
// fallback chain, and finally substitutes the curated mock list. Everything
// here is absorbed locally: the places query always succeeds.
func (o *Orchestrator) searchPlaces(ctx context.Context, c travel.Coordinates, countryName string) []travel.Place {
	found, err := o.clients.Places.Search(ctx, c.Lat, c.Lon, primaryPlaceCategory, travel.DefaultPlaceRadius, travel.DefaultPlaceLimit)
	if err != nil {
		o.log.Warn("primary places search failed, using mock places", "country", countryName, "err", err)
		return travel.MockPlaces(countryName)
	}
	if len(found) > 0 {
		return found
	}

	for _, category := range fallbackCategories {
		found, err = o.clients.Places.Search(ctx, c.Lat, c.Lon, category, travel.DefaultPlaceRadius, travel.DefaultPlaceLimit)
		if err != nil {
			continue
		}
		if len(found) > 0 {
			o.log.Info("places found via fallback category", "category", category, "count", len(found))
			return found
		}
	}

	o.log.Warn("no places in any category, using mock places", "country", countryName)
	return travel.MockPlaces(countryName)
}

// detailTargets picks the places worth a detail lookup: the first few
// non-mock entries. Mock places are skipped, they have no upstream record.
// The detail cache key is derived from this same list so that two place
// lists with different targets never share an entry.
func detailTargets(places []travel.Place) []travel.Place {
	var targets []travel.Place
	for _, p := range places {
		if p.Mock {
			continue
		}
		targets = append(targets, p)
		if len(targets) == detailLookupLimit {
			break
		}
	}
	return targets
}

// fetchDetails looks up details for the target places concurrently,
// tolerating individual failures.
func (o *Orchestrator) fetchDetails(ctx context.Context, targets []travel.Place) []travel.PlaceDetail {
	results := make([]*travel.PlaceDetail, len(targets))
	g, gCtx := errgroup.WithContext(ctx)
	for i, p := range targets {
		g.Go(func() error {
			d, err := o.clients.Details.Detail(gCtx, p.ID)
			if err != nil {
				o.log.Warn("place detail fetch failed", "place_id", p.ID, "err", err)
				return nil
			}
			results[i] = d
			return nil
		})
	}
	_ = g.Wait()

	details := make([]travel.PlaceDetail, 0, len(targets))
	for _, d := range results {
		if d != nil {
			details = append(details, *d)
		}
	}
	return details
}

func coordKey(c travel.Coordinates) string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

func placesKey(targets []travel.Place) string {
	ids := make([]string, 0, len(targets))
	for _, p := range targets {
		ids = append(ids, p.ID)
	}
	return strings.Join(ids, ",")
}
