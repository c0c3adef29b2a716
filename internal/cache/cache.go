package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Entry is one cached query result with its fetch timestamp.
type Entry struct {
	Data      []byte    `json:"data"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Store is the backing storage for cached query results. The memory
// store is the default; the Redis store keeps results across process
// restarts.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}

// Cache is the explicit query cache owned by the composition root.
// Keys are resource name + canonical JSON of the query parameters, so
// invalidating a resource prefix covers every filter variant of it.
type Cache struct {
	store     Store
	staleness time.Duration
	log       *slog.Logger

	hits   prometheus.Counter
	misses prometheus.Counter
}

func New(store Store, staleness time.Duration, logger *slog.Logger, reg prometheus.Registerer) *Cache {
	c := &Cache{
		store:     store,
		staleness: staleness,
		log:       logger,
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hrconsole_cache_hits_total",
			Help: "Cache lookups served from a stored entry",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hrconsole_cache_misses_total",
			Help: "Cache lookups that required a fetch",
		}),
	}
	if reg != nil {
		reg.MustRegister(c.hits, c.misses)
	}
	return c
}

// Key builds the cache key for a resource and its parameters. The "/"
// separator keeps resource prefixes unambiguous ("profile/" never matches
// "profiles/..."). Params of nil keys the bare resource (singleton
// queries like currentUser).
func Key(resource string, params any) string {
	if params == nil {
		return resource + "/"
	}
	data, err := json.Marshal(params)
	if err != nil {
		// Unmarshalable params cannot collide with real keys.
		return fmt.Sprintf("%s/!%T", resource, params)
	}
	return resource + "/" + string(data)
}

// Lookup returns the stored entry and whether it is still fresh. A miss
// returns (nil, false).
func (c *Cache) Lookup(ctx context.Context, key string, now time.Time) (*Entry, bool) {
	entry, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("Cache lookup failed", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	if entry == nil {
		c.misses.Inc()
		return nil, false
	}

	c.hits.Inc()
	return entry, now.Sub(entry.FetchedAt) < c.staleness
}

func (c *Cache) Put(ctx context.Context, key string, data []byte, now time.Time) {
	if err := c.store.Set(ctx, key, Entry{Data: data, FetchedAt: now}); err != nil {
		c.log.Warn("Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// InvalidateResource drops every entry under the resource prefix. The
// breadth is intentional: a feedback mutation invalidates all feedback
// queries regardless of filter, favoring correctness over fetch
// efficiency.
func (c *Cache) InvalidateResource(ctx context.Context, resource string) {
	if err := c.store.DeleteByPrefix(ctx, resource); err != nil {
		c.log.Warn("Cache invalidation failed", slog.String("resource", resource), slog.String("error", err.Error()))
	}
}

func (c *Cache) Staleness() time.Duration {
	return c.staleness
}

func (c *Cache) Close() error {
	return c.store.Close()
}
