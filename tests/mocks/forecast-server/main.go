package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Mock WeatherAPI.com forecast endpoint for integration tests. The scenario
// is selected by the integer part of the request latitude:
//
//	61 -> internal server error
//	62 -> rate limited
//	63 -> unauthorized
//	64 -> malformed response body
//	55 -> rainy and windy forecast
//	56 -> fair forecast with an active severe alert
//
// Every other latitude returns a fair 72 hour forecast.
type forecastResponse struct {
	Forecast forecast `json:"forecast"`
	Alerts   alerts   `json:"alerts"`
}

type forecast struct {
	ForecastDay []forecastDay `json:"forecastday"`
}

type forecastDay struct {
	Hour []hour `json:"hour"`
}

type hour struct {
	TimeEpoch    int64     `json:"time_epoch"`
	TempF        float64   `json:"temp_f"`
	FeelsLikeF   float64   `json:"feelslike_f"`
	WindMph      float64   `json:"wind_mph"`
	ChanceOfRain int       `json:"chance_of_rain"`
	PrecipIn     float64   `json:"precip_in"`
	Condition    condition `json:"condition"`
}

type condition struct {
	Text string `json:"text"`
}

type alerts struct {
	Alert []alert `json:"alert"`
}

type alert struct {
	Headline  string `json:"headline"`
	Severity  string `json:"severity"`
	Event     string `json:"event"`
	Effective string `json:"effective"`
	Expires   string `json:"expires"`
}

func main() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/forecast.json", handleForecast)

	slog.Info("Mock forecast server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func handleForecast(c *gin.Context) {
	if c.Query("key") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
		return
	}

	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinate parameter required"})
		return
	}

	lat, err := strconv.ParseFloat(strings.SplitN(q, ",", 2)[0], 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinate"})
		return
	}

	switch int(lat) {
	case 61:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	case 62:
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "API call quota exceeded"})
		return
	case 63:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "API key invalid"})
		return
	case 64:
		c.Data(http.StatusOK, "application/json", []byte(`{"forecast": "not an object`))
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "3"))
	if days < 1 {
		days = 3
	}

	c.JSON(http.StatusOK, buildForecast(int(lat), days))
}

func buildForecast(latBucket, days int) forecastResponse {
	tempF, windMph, conditionText, chanceOfRain, precipIn := 68.0, 8.0, "Partly cloudy", 10, 0.0
	if latBucket == 55 {
		tempF, windMph, conditionText, chanceOfRain, precipIn = 50.0, 30.0, "Moderate rain", 90, 0.12
	}

	start := time.Now().UTC().Truncate(time.Hour)

	var response forecastResponse
	for d := 0; d < days; d++ {
		var day forecastDay
		for h := 0; h < 24; h++ {
			day.Hour = append(day.Hour, hour{
				TimeEpoch:    start.Add(time.Duration(d*24+h) * time.Hour).Unix(),
				TempF:        tempF,
				FeelsLikeF:   tempF - 2,
				WindMph:      windMph,
				ChanceOfRain: chanceOfRain,
				PrecipIn:     precipIn,
				Condition:    condition{Text: conditionText},
			})
		}
		response.Forecast.ForecastDay = append(response.Forecast.ForecastDay, day)
	}

	if latBucket == 56 {
		response.Alerts.Alert = append(response.Alerts.Alert, alert{
			Headline:  "Severe Thunderstorm Warning issued for the area",
			Severity:  "Severe",
			Event:     "Severe Thunderstorm Warning",
			Effective: start.Format(time.RFC3339),
			Expires:   start.Add(time.Duration(days) * 24 * time.Hour).Format(time.RFC3339),
		})
	}

	return response
}
