// Package cache provides bundle storage backends for the forecast cache.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"outdooradvisor.app/models"
)

// GenericCacheInterface defines generic cache operations
type GenericCacheInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// BundleStoreInterface defines storage operations for forecast bundles.
// Store TTLs enforce the cache hard ceiling; freshness decisions are made by
// the caller from the bundle's FetchedAt.
type BundleStoreInterface interface {
	Get(ctx context.Context, key string) (*models.ForecastBundle, bool)
	Set(ctx context.Context, key string, bundle *models.ForecastBundle, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

type cacheEntry struct {
	Data      []byte
	ExpiresAt time.Time
}

type MemoryCache struct {
	data   map[string]cacheEntry
	mutex  sync.RWMutex
	ticker *time.Ticker
	stopCh chan struct{}
}

func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data:   make(map[string]cacheEntry),
		ticker: time.NewTicker(5 * time.Minute),
		stopCh: make(chan struct{}),
	}

	go cache.cleanup()
	return cache
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (c *MemoryCache) Delete(ctx context.Context, key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

func (c *MemoryCache) Clear(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]cacheEntry)
}

// BundleStore wraps a generic byte cache with forecast-bundle serialization
type BundleStore struct {
	cache GenericCacheInterface
}

func NewBundleStore(cache GenericCacheInterface) BundleStoreInterface {
	return &BundleStore{
		cache: cache,
	}
}

func (s *BundleStore) Get(ctx context.Context, key string) (*models.ForecastBundle, bool) {
	data, found := s.cache.Get(ctx, key)
	if !found {
		return nil, false
	}

	var bundle models.ForecastBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, false
	}

	return &bundle, true
}

func (s *BundleStore) Set(ctx context.Context, key string, bundle *models.ForecastBundle, ttl time.Duration) {
	if bundle == nil {
		return
	}

	data, err := json.Marshal(bundle)
	if err != nil {
		return
	}

	s.cache.Set(ctx, key, data, ttl)
}

func (s *BundleStore) Delete(ctx context.Context, key string) {
	s.cache.Delete(ctx, key)
}

func (s *BundleStore) Clear(ctx context.Context) {
	s.cache.Clear(ctx)
}

// Stop terminates the background cleanup goroutine.
func (c *MemoryCache) Stop() {
	close(c.stopCh)
}

func (c *MemoryCache) cleanup() {
	for {
		select {
		case <-c.ticker.C:
			c.removeExpiredEntries()
		case <-c.stopCh:
			c.ticker.Stop()
			return
		}
	}
}

func (c *MemoryCache) removeExpiredEntries() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.ExpiresAt) {
			delete(c.data, key)
		}
	}
}
