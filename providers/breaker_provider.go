package providers

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"

	"outdooradvisor.app/errors"
	"outdooradvisor.app/models"
)

// BreakerProvider wraps a ForecastClient in a circuit breaker so that a
// provider failing repeatedly is skipped for a cooldown period instead of
// being hammered on every advisory request.
type BreakerProvider struct {
	wrappedProvider ForecastClient
	breaker         *gobreaker.CircuitBreaker[*models.ForecastBundle]
	providerName    string
}

// NewBreakerProvider wraps the given provider in a circuit breaker that opens
// after more than five consecutive failures and probes again after 30 seconds.
func NewBreakerProvider(provider ForecastClient, providerName string) ForecastClient {
	cb := gobreaker.NewCircuitBreaker[*models.ForecastBundle](gobreaker.Settings{
		Name:        providerName,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			// Caller mistakes such as invalid coordinates say nothing
			// about provider health.
			return err == nil || !errors.IsProviderFailure(err)
		},
	})

	return &BreakerProvider{
		wrappedProvider: provider,
		breaker:         cb,
		providerName:    providerName,
	}
}

func (p *BreakerProvider) FetchForecast(ctx context.Context, coord models.Coordinate) (*models.ForecastBundle, error) {
	bundle, err := p.breaker.Execute(func() (*models.ForecastBundle, error) {
		return p.wrappedProvider.FetchForecast(ctx, coord)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, errors.NewUnreachableError(p.providerName+": circuit breaker open", err)
	}
	return bundle, err
}
