package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"outdooradvisor.app/config"
	"outdooradvisor.app/errors"
	"outdooradvisor.app/models"
)

// WeatherAPIProvider implements ForecastClient for WeatherAPI.com. The
// forecast.json endpoint returns hourly samples per forecast day, which at
// the configured day count covers the required 72 hour horizon.
type WeatherAPIProvider struct {
	apiKey  string
	baseURL string
	days    int
	client  *http.Client
}

// Response schema for forecast.json. Required numeric fields are pointers so
// that absent values fail validation instead of defaulting to zero; a zero
// temperature silently invented by the decoder could flip a verdict.
type weatherAPIResponse struct {
	Forecast *struct {
		ForecastDay []struct {
			Hour []weatherAPIHour `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
	Alerts struct {
		Alert []weatherAPIAlert `json:"alert"`
	} `json:"alerts"`
}

type weatherAPIHour struct {
	TimeEpoch    *int64   `json:"time_epoch"`
	TempF        *float64 `json:"temp_f"`
	FeelsLikeF   *float64 `json:"feelslike_f"`
	WindMph      *float64 `json:"wind_mph"`
	ChanceOfRain *int     `json:"chance_of_rain"`
	PrecipIn     *float64 `json:"precip_in"`
	Condition    struct {
		Text *string `json:"text"`
	} `json:"condition"`
}

type weatherAPIAlert struct {
	Headline  string `json:"headline"`
	Severity  string `json:"severity"`
	Event     string `json:"event"`
	Effective string `json:"effective"`
	Expires   string `json:"expires"`
}

// NewWeatherAPIProvider creates a new WeatherAPI.com forecast provider
func NewWeatherAPIProvider(config *config.WeatherConfig) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		apiKey:  config.WeatherAPIKey,
		baseURL: config.WeatherAPIBaseURL,
		days:    config.ForecastDays,
		client:  &http.Client{Timeout: config.RequestTimeout},
	}
}

// FetchForecast retrieves an hourly forecast bundle from WeatherAPI.com
func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, coord models.Coordinate) (*models.ForecastBundle, error) {
	if err := coord.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	url := fmt.Sprintf("%s/forecast.json?key=%s&q=%f,%f&days=%d&aqi=no&alerts=yes",
		p.baseURL, p.apiKey, coord.Latitude, coord.Longitude, p.days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewUnreachableError("build forecast request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		// Timeouts and cancellations are indistinguishable from an
		// unreachable provider for fallback purposes.
		return nil, errors.NewUnreachableError("forecast request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if err := p.checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var result weatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.NewMalformedResponseError("decode forecast response", err)
	}

	return p.convertToBundle(&result)
}

func (p *WeatherAPIProvider) checkStatus(statusCode int) error {
	switch statusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.NewUnauthorizedError("weatherapi: invalid or disabled API key", nil)
	case http.StatusTooManyRequests:
		return errors.NewRateLimitError("weatherapi: call quota exceeded", nil)
	default:
		return errors.NewUnreachableError(fmt.Sprintf("weatherapi: HTTP %d", statusCode), nil)
	}
}

func (p *WeatherAPIProvider) convertToBundle(result *weatherAPIResponse) (*models.ForecastBundle, error) {
	if result.Forecast == nil || len(result.Forecast.ForecastDay) == 0 {
		return nil, errors.NewMalformedResponseError("weatherapi: missing forecast data", nil)
	}

	var samples []models.ForecastSample
	for _, day := range result.Forecast.ForecastDay {
		for _, hour := range day.Hour {
			sample, err := convertHour(hour)
			if err != nil {
				return nil, err
			}
			samples = append(samples, sample)
		}
	}

	if len(samples) == 0 {
		return nil, errors.NewMalformedResponseError("weatherapi: forecast contains no hourly samples", nil)
	}

	samples = normalizeSamples(samples)

	return &models.ForecastBundle{
		Samples: samples,
		Alerts:  convertAlerts(result.Alerts.Alert),
	}, nil
}

func convertHour(hour weatherAPIHour) (models.ForecastSample, error) {
	if hour.TimeEpoch == nil || hour.TempF == nil || hour.FeelsLikeF == nil ||
		hour.WindMph == nil || hour.PrecipIn == nil || hour.Condition.Text == nil {
		return models.ForecastSample{}, errors.NewMalformedResponseError(
			"weatherapi: hourly sample missing required fields", nil)
	}

	chance := 0
	if hour.ChanceOfRain != nil {
		chance = *hour.ChanceOfRain
	}
	if chance < 0 || chance > 100 {
		return models.ForecastSample{}, errors.NewMalformedResponseError(
			"weatherapi: precipitation chance out of range", nil)
	}
	if *hour.PrecipIn < 0 {
		return models.ForecastSample{}, errors.NewMalformedResponseError(
			"weatherapi: negative precipitation amount", nil)
	}

	return models.ForecastSample{
		SampleTime:      time.Unix(*hour.TimeEpoch, 0).UTC(),
		TemperatureF:    *hour.TempF,
		FeelsLikeF:      *hour.FeelsLikeF,
		WindSpeedMph:    *hour.WindMph,
		PrecipChancePct: chance,
		PrecipAmountIn:  *hour.PrecipIn,
		ConditionText:   *hour.Condition.Text,
	}, nil
}

func convertAlerts(raw []weatherAPIAlert) []models.Alert {
	alerts := make([]models.Alert, 0, len(raw))
	for _, a := range raw {
		from, err := time.Parse(time.RFC3339, a.Effective)
		if err != nil {
			slog.Warn("skipping alert with invalid effective time", "headline", a.Headline, "error", err)
			continue
		}
		until, err := time.Parse(time.RFC3339, a.Expires)
		if err != nil {
			slog.Warn("skipping alert with invalid expiry time", "headline", a.Headline, "error", err)
			continue
		}
		alerts = append(alerts, models.Alert{
			Severity:       models.ParseAlertSeverity(a.Severity),
			Category:       a.Event,
			EffectiveFrom:  from.UTC(),
			EffectiveUntil: until.UTC(),
			Headline:       a.Headline,
		})
	}
	return alerts
}

// normalizeSamples enforces the bundle invariant: samples strictly ordered by
// sample time with no duplicates. The first occurrence of a timestamp wins.
func normalizeSamples(samples []models.ForecastSample) []models.ForecastSample {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].SampleTime.Before(samples[j].SampleTime)
	})

	deduped := samples[:0]
	for _, s := range samples {
		if len(deduped) > 0 && s.SampleTime.Equal(deduped[len(deduped)-1].SampleTime) {
			continue
		}
		deduped = append(deduped, s)
	}
	return deduped
}
