package providers

import (
	"context"
	"log/slog"
	"time"

	"outdooradvisor.app/models"
)

// LoggerDecorator logs every fetch against a provider with its outcome and
// duration.
type LoggerDecorator struct {
	wrappedProvider ForecastClient
	providerName    string
}

func NewLoggerDecorator(provider ForecastClient, providerName string) ForecastClient {
	return &LoggerDecorator{
		wrappedProvider: provider,
		providerName:    providerName,
	}
}

func (d *LoggerDecorator) FetchForecast(ctx context.Context, coord models.Coordinate) (*models.ForecastBundle, error) {
	slog.Debug("fetching forecast", "provider", d.providerName, "coordinate", coord.String())
	startTime := time.Now()

	bundle, err := d.wrappedProvider.FetchForecast(ctx, coord)
	duration := time.Since(startTime)

	if err != nil {
		slog.Warn("forecast fetch failed",
			"provider", d.providerName,
			"coordinate", coord.String(),
			"duration", duration,
			"error", err)
		return nil, err
	}

	slog.Info("forecast fetched",
		"provider", d.providerName,
		"coordinate", coord.String(),
		"samples", len(bundle.Samples),
		"alerts", len(bundle.Alerts),
		"duration", duration)
	return bundle, nil
}
