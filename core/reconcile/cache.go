package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ReconcileCache holds the indices of one reconciliation run.
type ReconcileCache struct {
	// Reference holds the documents every backend should carry.
	Reference Index

	// Storage holds the bucket copies, nil when storage is not configured.
	Storage Index

	// DB holds the database copies, nil when the database is not configured.
	DB Index

	// Built is the timestamp when this cache was built.
	Built time.Time

	// TTL is the time-to-live for this cache.
	TTL time.Duration
}

// IsExpired returns true if this cache has expired based on its TTL.
func (c *ReconcileCache) IsExpired() bool {
	if c.TTL == 0 {
		return true // No caching
	}
	return time.Since(c.Built) > c.TTL
}

// Has reports whether any source holds name.
func (c *ReconcileCache) Has(name string) bool {
	_, inRef := c.Reference[name]
	_, inStorage := c.Storage[name]
	_, inDB := c.DB[name]
	return inRef || inStorage || inDB
}

// cacheStore holds all reconcile caches keyed by spec cache key.
type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*ReconcileCache
	sf     singleflight.Group
}

var globalCacheStore = &cacheStore{
	caches: make(map[string]*ReconcileCache),
}

// BuildCache loads the three indices concurrently. It does not store the
// cache; use GetOrBuildCache for that.
func BuildCache(ctx context.Context, spec *Spec) (*ReconcileCache, error) {
	cache := &ReconcileCache{TTL: spec.CacheTTL}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		idx, err := spec.Adapter.LoadReference(gctx)
		if err != nil {
			return fmt.Errorf("failed to load reference documents: %w", err)
		}
		cache.Reference = idx
		return nil
	})
	g.Go(func() error {
		idx, err := spec.Adapter.LoadStorage(gctx)
		if err != nil {
			return fmt.Errorf("failed to load storage documents: %w", err)
		}
		cache.Storage = idx
		return nil
	})
	g.Go(func() error {
		idx, err := spec.Adapter.LoadDB(gctx)
		if err != nil {
			return fmt.Errorf("failed to load database documents: %w", err)
		}
		cache.DB = idx
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cache.Built = time.Now()
	return cache, nil
}

// GetOrBuildCache returns the cached indices for spec, building them when
// absent or expired. Concurrent callers share one build.
func GetOrBuildCache(ctx context.Context, spec *Spec) (*ReconcileCache, error) {
	cacheKey := spec.CacheKey()

	// Fast path: check if cache exists and is fresh
	globalCacheStore.mu.RLock()
	cache, exists := globalCacheStore.caches[cacheKey]
	globalCacheStore.mu.RUnlock()

	if exists && !cache.IsExpired() {
		return cache, nil
	}

	result, err, _ := globalCacheStore.sf.Do(cacheKey, func() (any, error) {
		// Double-check after acquiring singleflight lock
		globalCacheStore.mu.RLock()
		cache, exists := globalCacheStore.caches[cacheKey]
		globalCacheStore.mu.RUnlock()

		if exists && !cache.IsExpired() {
			return cache, nil
		}

		newCache, err := BuildCache(ctx, spec)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.caches[cacheKey] = newCache
		globalCacheStore.mu.Unlock()

		return newCache, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*ReconcileCache), nil
}

// InvalidateCache removes the cache for the given spec from the store.
func InvalidateCache(spec *Spec) {
	cacheKey := spec.CacheKey()
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, cacheKey)
	globalCacheStore.mu.Unlock()
}
