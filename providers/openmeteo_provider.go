package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"outdooradvisor.app/config"
	"outdooradvisor.app/errors"
	"outdooradvisor.app/models"
)

// OpenMeteoProvider implements ForecastClient for the Open-Meteo forecast
// API. It requires no API key and serves as the fallback provider. Open-Meteo
// does not publish weather alerts, so bundles from it carry an empty alert
// list.
type OpenMeteoProvider struct {
	baseURL string
	days    int
	client  *http.Client
}

// Open-Meteo returns hourly variables as parallel arrays keyed by a shared
// time array.
type openMeteoResponse struct {
	Hourly *struct {
		Time                     []int64   `json:"time"`
		Temperature2m            []float64 `json:"temperature_2m"`
		ApparentTemperature      []float64 `json:"apparent_temperature"`
		PrecipitationProbability []int     `json:"precipitation_probability"`
		Precipitation            []float64 `json:"precipitation"`
		WindSpeed10m             []float64 `json:"wind_speed_10m"`
		WeatherCode              []int     `json:"weather_code"`
	} `json:"hourly"`
}

// NewOpenMeteoProvider creates a new Open-Meteo forecast provider
func NewOpenMeteoProvider(config *config.WeatherConfig) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		baseURL: config.OpenMeteoBaseURL,
		days:    config.ForecastDays,
		client:  &http.Client{Timeout: config.RequestTimeout},
	}
}

// FetchForecast retrieves an hourly forecast bundle from Open-Meteo
func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, coord models.Coordinate) (*models.ForecastBundle, error) {
	if err := coord.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	url := fmt.Sprintf("%s/forecast?latitude=%f&longitude=%f"+
		"&hourly=temperature_2m,apparent_temperature,precipitation_probability,precipitation,wind_speed_10m,weather_code"+
		"&temperature_unit=fahrenheit&wind_speed_unit=mph&precipitation_unit=inch"+
		"&forecast_days=%d&timeformat=unixtime",
		p.baseURL, coord.Latitude, coord.Longitude, p.days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewUnreachableError("build forecast request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewUnreachableError("forecast request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.NewRateLimitError("open-meteo: call quota exceeded", nil)
	default:
		return nil, errors.NewUnreachableError(fmt.Sprintf("open-meteo: HTTP %d", resp.StatusCode), nil)
	}

	var result openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.NewMalformedResponseError("decode forecast response", err)
	}

	return p.convertToBundle(&result)
}

func (p *OpenMeteoProvider) convertToBundle(result *openMeteoResponse) (*models.ForecastBundle, error) {
	h := result.Hourly
	if h == nil || len(h.Time) == 0 {
		return nil, errors.NewMalformedResponseError("open-meteo: missing hourly data", nil)
	}

	n := len(h.Time)
	if len(h.Temperature2m) != n || len(h.ApparentTemperature) != n ||
		len(h.PrecipitationProbability) != n || len(h.Precipitation) != n ||
		len(h.WindSpeed10m) != n || len(h.WeatherCode) != n {
		return nil, errors.NewMalformedResponseError("open-meteo: hourly array lengths differ", nil)
	}

	samples := make([]models.ForecastSample, 0, n)
	for i := 0; i < n; i++ {
		if h.PrecipitationProbability[i] < 0 || h.PrecipitationProbability[i] > 100 {
			return nil, errors.NewMalformedResponseError("open-meteo: precipitation probability out of range", nil)
		}
		if h.Precipitation[i] < 0 {
			return nil, errors.NewMalformedResponseError("open-meteo: negative precipitation amount", nil)
		}
		samples = append(samples, models.ForecastSample{
			SampleTime:      time.Unix(h.Time[i], 0).UTC(),
			TemperatureF:    h.Temperature2m[i],
			FeelsLikeF:      h.ApparentTemperature[i],
			WindSpeedMph:    h.WindSpeed10m[i],
			PrecipChancePct: h.PrecipitationProbability[i],
			PrecipAmountIn:  h.Precipitation[i],
			ConditionText:   wmoConditionText(h.WeatherCode[i]),
		})
	}

	return &models.ForecastBundle{
		Samples: normalizeSamples(samples),
		Alerts:  []models.Alert{},
	}, nil
}

// wmoConditionText maps WMO weather interpretation codes to condition text
// comparable with what other providers report.
func wmoConditionText(code int) string {
	switch code {
	case 0:
		return "Clear"
	case 1, 2:
		return "Partly cloudy"
	case 3:
		return "Overcast"
	case 45, 48:
		return "Fog"
	case 51, 53, 55, 56, 57:
		return "Drizzle"
	case 61, 63, 65, 66, 67:
		return "Rain"
	case 71, 73, 75, 77:
		return "Snow"
	case 80, 81, 82:
		return "Rain showers"
	case 85, 86:
		return "Snow showers"
	case 95, 96, 99:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
