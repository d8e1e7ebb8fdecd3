package providers

import (
	"context"

	"outdooradvisor.app/config"
	"outdooradvisor.app/errors"
	"outdooradvisor.app/models"
)

// ProviderManager assembles the configured forecast providers into a fallback
// chain and exposes the whole arrangement as a single ForecastClient. Each
// provider is wrapped in a circuit breaker and a logging decorator before
// being placed in the chain.
type ProviderManager struct {
	primaryChain ForecastChain
}

func NewProviderManager(weatherConfig *config.WeatherConfig) (*ProviderManager, error) {
	manager := &ProviderManager{}

	if err := manager.buildProviderChain(weatherConfig); err != nil {
		return nil, err
	}

	return manager, nil
}

func (pm *ProviderManager) buildProviderChain(weatherConfig *config.WeatherConfig) error {
	builder := NewChainBuilder()

	if weatherConfig.WeatherAPIKey != "" {
		var provider ForecastClient = NewWeatherAPIProvider(weatherConfig)
		provider = NewBreakerProvider(provider, "WeatherAPI")
		provider = NewLoggerDecorator(provider, "WeatherAPI")
		builder.AddHandler(NewWeatherAPIHandler(provider))
	}

	if weatherConfig.EnableFallback {
		var provider ForecastClient = NewOpenMeteoProvider(weatherConfig)
		provider = NewBreakerProvider(provider, "OpenMeteo")
		provider = NewLoggerDecorator(provider, "OpenMeteo")
		builder.AddHandler(NewOpenMeteoHandler(provider))
	}

	chain := builder.Build()
	if chain == nil {
		return errors.NewConfigurationError("no forecast providers configured", nil)
	}

	pm.primaryChain = chain
	return nil
}

// FetchForecast delegates to the provider chain, trying each provider in
// order until one produces a bundle.
func (pm *ProviderManager) FetchForecast(ctx context.Context, coord models.Coordinate) (*models.ForecastBundle, error) {
	return pm.primaryChain.Handle(ctx, coord)
}

// ProviderInfo describes the assembled chain for the debug endpoint.
func (pm *ProviderManager) ProviderInfo() map[string]interface{} {
	return map[string]interface{}{
		"chain_name": pm.primaryChain.GetProviderName(),
	}
}
