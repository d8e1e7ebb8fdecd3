package providers

import (
	"context"

	"outdooradvisor.app/models"
	"outdooradvisor.app/providers/cache"
)

// ForecastClient defines the boundary interface to an external weather data
// provider. Implementations return a time-ordered sample sequence spanning at
// least the next 72 hours at hourly or finer granularity, plus any active
// alerts for the coordinate's region. Failures are typed via the errors
// package: RateLimitError, UnauthorizedError, UnreachableError or
// MalformedResponseError.
type ForecastClient interface {
	FetchForecast(ctx context.Context, coord models.Coordinate) (*models.ForecastBundle, error)
}

// ForecastChain defines the interface for Chain of Responsibility pattern
// across forecast providers.
type ForecastChain interface {
	Handle(ctx context.Context, coord models.Coordinate) (*models.ForecastBundle, error)
	SetNext(handler ForecastChain)
	GetProviderName() string
}

// BundleStore is an alias to avoid circular imports
type BundleStore = cache.BundleStoreInterface

// ForecastCacheInterface defines the caching layer the advisory service
// reads forecasts through.
type ForecastCacheInterface interface {
	Get(ctx context.Context, coord models.Coordinate) (*models.ForecastBundle, error)
}
