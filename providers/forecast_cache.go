package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"outdooradvisor.app/config"
	"outdooradvisor.app/errors"
	"outdooradvisor.app/metrics"
	"outdooradvisor.app/models"
	"outdooradvisor.app/providers/cache"
)

const cacheKeyPrefix = "forecast:"

// ForecastCache memoizes provider bundles per coordinate bucket. A bundle
// younger than the freshness window is served without touching the provider;
// beyond it a refresh is attempted, and if every provider fails the old
// bundle is served marked stale, up to the hard age ceiling. Concurrent
// misses for the same bucket collapse into a single provider fetch.
type ForecastCache struct {
	fetcher   ForecastClient
	store     cache.BundleStoreInterface
	metrics   *metrics.CacheMetrics
	group     singleflight.Group
	freshness time.Duration
	maxAge    time.Duration
	precision int
	now       func() time.Time
}

func NewForecastCache(fetcher ForecastClient, store cache.BundleStoreInterface, cacheMetrics *metrics.CacheMetrics, cacheConfig *config.CacheConfig) *ForecastCache {
	return &ForecastCache{
		fetcher:   fetcher,
		store:     store,
		metrics:   cacheMetrics,
		freshness: cacheConfig.FreshnessWindow,
		maxAge:    cacheConfig.MaxAge,
		precision: cacheConfig.BucketPrecision,
		now:       time.Now,
	}
}

// Get returns the forecast bundle for the coordinate's bucket, fetching from
// the provider when no sufficiently recent bundle is cached.
func (fc *ForecastCache) Get(ctx context.Context, coord models.Coordinate) (*models.ForecastBundle, error) {
	if err := coord.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	startTime := fc.now()
	key := cacheKeyPrefix + coord.Bucket(fc.precision)

	cached := fc.lookup(ctx, key)
	if cached != nil && fc.age(cached) <= fc.freshness {
		fc.metrics.RecordHit()
		fc.metrics.RecordLatency("get", fc.now().Sub(startTime).Seconds())
		return cached, nil
	}

	bundle, err := fc.refresh(ctx, key, coord, cached)
	fc.metrics.RecordLatency("get", fc.now().Sub(startTime).Seconds())
	return bundle, err
}

// lookup reads the store and evicts entries past the hard ceiling. A nil
// return means no usable bundle exists.
func (fc *ForecastCache) lookup(ctx context.Context, key string) *models.ForecastBundle {
	bundle, found := fc.store.Get(ctx, key)
	if !found {
		return nil
	}

	if fc.age(bundle) >= fc.maxAge {
		fc.store.Delete(ctx, key)
		return nil
	}

	return bundle
}

// refresh fetches a new bundle through the singleflight group so concurrent
// misses on the same bucket share one provider call. The staleFallback bundle
// (possibly nil) is served with its Stale flag set when every provider fails.
func (fc *ForecastCache) refresh(ctx context.Context, key string, coord models.Coordinate, staleFallback *models.ForecastBundle) (*models.ForecastBundle, error) {
	result, err, _ := fc.group.Do(key, func() (interface{}, error) {
		// Another caller may have completed a refresh while this one
		// waited on the flight.
		if existing := fc.lookup(ctx, key); existing != nil && fc.age(existing) <= fc.freshness {
			return existing, nil
		}

		bundle, fetchErr := fc.fetcher.FetchForecast(ctx, coord)
		if fetchErr != nil {
			return nil, fetchErr
		}

		bundle.CoordinateBucket = key
		bundle.FetchedAt = fc.now()
		bundle.Stale = false

		fc.store.Set(ctx, key, bundle, fc.maxAge)

		return bundle, nil
	})

	if err == nil {
		fc.metrics.RecordMiss()
		return result.(*models.ForecastBundle), nil
	}

	if errors.IsProviderFailure(err) && staleFallback != nil {
		slog.Info("serving stale forecast after provider failure",
			"key", key,
			"age", fc.age(staleFallback),
			"error", err)
		fc.metrics.RecordStaleServe()
		staleCopy := *staleFallback
		staleCopy.Stale = true
		return &staleCopy, nil
	}

	return nil, err
}

func (fc *ForecastCache) age(bundle *models.ForecastBundle) time.Duration {
	return bundle.Age(fc.now())
}
