package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voyago/travel-dashboard/internal/travel"
	"github.com/voyago/travel-dashboard/internal/view"
)

const defaultTTL = 10 * time.Minute

// Cache wraps a Redis client and provides typed get/set/delete for assembled
// destination views, keyed by the normalized destination query. A hit lets
// the API layer skip orchestration entirely.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache with a 10-minute TTL.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// Key normalizes a destination query into its cache key. Names are
// case-insensitive; coordinates are rounded to four decimals.
func Key(q travel.Query) string {
	if q.Name != "" {
		return "view:name:" + strings.ToLower(strings.TrimSpace(q.Name))
	}
	if q.Coordinates != nil {
		return fmt.Sprintf("view:geo:%.4f,%.4f", q.Coordinates.Lat, q.Coordinates.Lon)
	}
	return "view:empty"
}

// Get retrieves an assembled view from cache.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) Get(ctx context.Context, q travel.Query) (*view.Destination, error) {
	val, err := c.client.Get(ctx, Key(q)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for %s: %w", Key(q), err)
	}

	var dest view.Destination
	if err := json.Unmarshal([]byte(val), &dest); err != nil {
		return nil, fmt.Errorf("unmarshaling cached view for %s: %w", Key(q), err)
	}

	return &dest, nil
}

// Set stores an assembled view in cache with the configured TTL. Views with
// an aggregate error are not cached: transient upstream failures should not
// be pinned for the TTL.
func (c *Cache) Set(ctx context.Context, q travel.Query, dest *view.Destination) error {
	if dest == nil || dest.IsError {
		return nil
	}

	b, err := json.Marshal(dest)
	if err != nil {
		return fmt.Errorf("marshaling view for %s: %w", Key(q), err)
	}

	if err := c.client.Set(ctx, Key(q), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for %s: %w", Key(q), err)
	}

	return nil
}

// Delete removes the cached view for the given query.
func (c *Cache) Delete(ctx context.Context, q travel.Query) error {
	if err := c.client.Del(ctx, Key(q)).Err(); err != nil {
		return fmt.Errorf("cache delete for %s: %w", Key(q), err)
	}
	return nil
}
