// Package models defines data structures used throughout the application
package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Coordinate is an immutable geographic point. Two coordinates share a cache
// bucket when they round to the same configured precision.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinate is on the globe
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// Bucket returns the cache bucket key for this coordinate at the given
// decimal precision. Three decimals is roughly a 110m grid.
func (c Coordinate) Bucket(precision int) string {
	return fmt.Sprintf("%.*f,%.*f", precision, c.Latitude, precision, c.Longitude)
}

// String returns a human-readable representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// AlertSeverity ranks severe-weather alerts
type AlertSeverity string

const (
	SeverityMinor    AlertSeverity = "minor"
	SeverityModerate AlertSeverity = "moderate"
	SeveritySevere   AlertSeverity = "severe"
	SeverityExtreme  AlertSeverity = "extreme"
)

// ParseAlertSeverity normalizes provider severity text into an AlertSeverity.
// Unknown values default to minor rather than failing the whole bundle.
func ParseAlertSeverity(s string) AlertSeverity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "moderate":
		return SeverityModerate
	case "severe":
		return SeveritySevere
	case "extreme":
		return SeverityExtreme
	default:
		return SeverityMinor
	}
}

// Alert is an informational severe-weather flag for a region. Alerts never
// flip a verdict by themselves; they are surfaced for human judgment.
type Alert struct {
	Severity       AlertSeverity `json:"severity"`
	Category       string        `json:"category"`
	EffectiveFrom  time.Time     `json:"effective_from"`
	EffectiveUntil time.Time     `json:"effective_until"`
	Headline       string        `json:"headline"`
}

// ActiveAt reports whether the alert interval contains t (inclusive bounds)
func (a Alert) ActiveAt(t time.Time) bool {
	return !t.Before(a.EffectiveFrom) && !t.After(a.EffectiveUntil)
}

// ForecastSample is one discrete weather reading at a point in time.
// SampleTime is the forecast's validity time, not the fetch time.
type ForecastSample struct {
	SampleTime       time.Time `json:"sample_time"`
	TemperatureF     float64   `json:"temperature_f"`
	FeelsLikeF       float64   `json:"feels_like_f"`
	WindSpeedMph     float64   `json:"wind_speed_mph"`
	PrecipChancePct  int       `json:"precip_chance_pct"`
	PrecipAmountIn   float64   `json:"precip_amount_in"`
	ConditionText    string    `json:"condition_text"`
}

// ForecastBundle is the full ordered sample set plus alerts for one
// coordinate bucket, as of one fetch. Bundles are never mutated after
// creation; a refresh replaces the bundle wholesale.
type ForecastBundle struct {
	CoordinateBucket string           `json:"coordinate_bucket"`
	Samples          []ForecastSample `json:"samples"`
	Alerts           []Alert          `json:"alerts"`
	FetchedAt        time.Time        `json:"fetched_at"`
	// Stale is set when the bundle is served past its freshness window
	// because a refresh attempt failed.
	Stale bool `json:"stale,omitempty"`
}

// Age returns how old the bundle is relative to now
func (b *ForecastBundle) Age(now time.Time) time.Duration {
	return now.Sub(b.FetchedAt)
}

// Verdict is the suitability outcome for one event evaluation. Created fresh
// per classification call and never persisted by this subsystem.
type Verdict struct {
	MatchedSample    ForecastSample `json:"matched_sample"`
	TimeDeltaMinutes int            `json:"time_delta_minutes"`
	Suitable         bool           `json:"suitable"`
	Reasons          []string       `json:"reasons"`
	ActiveAlerts     []Alert        `json:"active_alerts"`
	Stale            bool           `json:"stale,omitempty"`
}

// Event is a scheduled outdoor activity supplied by the event-management
// side of the system. Only the fields the advisory engine needs are kept.
type Event struct {
	ID            string         `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name"`
	ScheduledTime time.Time      `json:"scheduled_time" gorm:"index;not null"`
	Latitude      float64        `json:"latitude" gorm:"not null"`
	Longitude     float64        `json:"longitude" gorm:"not null"`
	// ContactEmail receives advisory notifications when set.
	ContactEmail string `json:"contact_email,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// Coordinate returns the event's location as a value type
func (e *Event) Coordinate() Coordinate {
	return Coordinate{Latitude: e.Latitude, Longitude: e.Longitude}
}

// EventRequest represents data required to register an event. Latitude and
// longitude are pointers so that zero values survive required-field binding.
type EventRequest struct {
	Name          string    `json:"name" form:"name"`
	ScheduledTime time.Time `json:"scheduled_time" form:"scheduled_time" binding:"required"`
	Latitude      *float64  `json:"latitude" form:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude     *float64  `json:"longitude" form:"longitude" binding:"required,gte=-180,lte=180"`
	ContactEmail  string    `json:"contact_email" form:"contact_email" binding:"omitempty,email"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
