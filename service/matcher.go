package service

import (
	"time"

	"outdooradvisor.app/config"
	"outdooradvisor.app/errors"
	"outdooradvisor.app/models"
)

// WindowMatcher selects the single forecast sample that best represents
// conditions at an event's scheduled time.
type WindowMatcher struct {
	window time.Duration
}

// Match pairs the selected sample with its signed distance from the event
// time. A negative delta means the sample precedes the event.
type Match struct {
	Sample           models.ForecastSample
	TimeDeltaMinutes int
}

func NewWindowMatcher(matcherConfig *config.MatcherConfig) *WindowMatcher {
	return &WindowMatcher{
		window: matcherConfig.Window,
	}
}

// Select restricts candidates to the symmetric window around eventTime and
// picks the one closest in time. When two candidates are equally distant, the
// later one wins.
func (m *WindowMatcher) Select(eventTime time.Time, samples []models.ForecastSample) (*Match, error) {
	var best *models.ForecastSample
	var bestDistance time.Duration

	for i := range samples {
		sample := &samples[i]
		distance := sample.SampleTime.Sub(eventTime)
		if distance < 0 {
			distance = -distance
		}
		if distance > m.window {
			continue
		}

		// Samples arrive ordered by time, so on a tie the later
		// candidate is the one seen last.
		if best == nil || distance <= bestDistance {
			best = sample
			bestDistance = distance
		}
	}

	if best == nil {
		return nil, errors.NewNoForecastError("no forecast sample within " + m.window.String() + " of event time")
	}

	return &Match{
		Sample:           *best,
		TimeDeltaMinutes: int(best.SampleTime.Sub(eventTime) / time.Minute),
	}, nil
}
