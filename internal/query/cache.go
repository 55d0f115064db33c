package query

import (
	"sync"
	"time"
)

// Per-kind time-to-live. Airports get a day because the upstream quota is
// tight; everything else is minutes-to-an-hour fresh.
var defaultTTLs = map[Kind]time.Duration{
	KindLocation:     10 * time.Minute,
	KindWeather:      10 * time.Minute,
	KindCurrency:     time.Hour,
	KindAirports:     24 * time.Hour,
	KindPlaces:       15 * time.Minute,
	KindPlaceDetails: time.Hour,
	KindTours:        time.Hour,
}

type cacheKey struct {
	kind Kind
	key  string
}

// entry is an immutable terminal result. A fresh fetch replaces the entry
// wholesale; nothing mutates it in place.
type entry struct {
	value     any
	err       error
	expiresAt time.Time
}

// Cache is the in-memory result cache keyed by (query kind, resolved key).
// Both successes and errors are cached: a settled outcome is terminal until
// the key changes or the entry expires.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]entry
	ttls    map[Kind]time.Duration
	now     func() time.Time
}

// NewCache constructs a Cache with the default per-kind TTLs.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[cacheKey]entry),
		ttls:    defaultTTLs,
		now:     time.Now,
	}
}

// Get returns the unexpired entry for (kind, key), if any.
func (c *Cache) Get(kind Kind, key string) (any, error, bool) {
	c.mu.RLock()
	e, ok := c.entries[cacheKey{kind: kind, key: key}]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		return nil, nil, false
	}
	return e.value, e.err, true
}

// Put stores a settled outcome for (kind, key) with the kind's TTL.
func (c *Cache) Put(kind Kind, key string, value any, err error) {
	ttl, ok := c.ttls[kind]
	if !ok {
		ttl = 10 * time.Minute
	}
	e := entry{value: value, err: err, expiresAt: c.now().Add(ttl)}

	c.mu.Lock()
	c.entries[cacheKey{kind: kind, key: key}] = e
	c.mu.Unlock()
}

// Len reports how many entries are stored, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
