package city

import (
	"context"
	"sync"

	"github.com/couchcryptid/ajudejf/internal/observability"
	"golang.org/x/sync/singleflight"
)

// CachedResolver memoizes successful resolutions for the process lifetime.
// Concurrent misses for the same name share one remote lookup.
type CachedResolver struct {
	inner   Resolver
	metrics *observability.Metrics

	mu    sync.RWMutex
	ids   map[string]string
	group singleflight.Group
}

// NewCachedResolver creates a cache decorator around a resolver.
func NewCachedResolver(inner Resolver, metrics *observability.Metrics) *CachedResolver {
	return &CachedResolver{
		inner:   inner,
		metrics: metrics,
		ids:     make(map[string]string),
	}
}

func (c *CachedResolver) Resolve(ctx context.Context, name string) (string, error) {
	if id, ok := c.lookup(name); ok {
		c.metrics.CityCache.WithLabelValues("hit").Inc()
		return id, nil
	}
	c.metrics.CityCache.WithLabelValues("miss").Inc()

	v, err, _ := c.group.Do(name, func() (any, error) {
		if id, ok := c.lookup(name); ok {
			return id, nil
		}
		id, err := c.inner.Resolve(ctx, name)
		if err != nil {
			// Failures are not cached so a later retry can succeed.
			return "", err
		}
		c.mu.Lock()
		c.ids[name] = id
		c.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *CachedResolver) lookup(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.ids[name]
	return id, ok
}
