package service

import (
	"context"
	"log"
	"time"

	"outdooradvisor.app/errors"
	"outdooradvisor.app/metrics"
	"outdooradvisor.app/models"
	"outdooradvisor.app/providers"
)

// AdvisoryService orchestrates cache, matcher and classifier into one
// advisory per event. Apart from the cache's own bookkeeping it has no side
// effects, and it never retries: retry policy belongs to callers or to the
// provider layer.
type AdvisoryService struct {
	cache        providers.ForecastCacheInterface
	matcher      *WindowMatcher
	classifier   *SuitabilityClassifier
	providerInfo ProviderInfoInterface
	cacheMetrics *metrics.CacheMetrics
}

// NewAdvisoryService creates a new advisory service
func NewAdvisoryService(
	cache providers.ForecastCacheInterface,
	matcher *WindowMatcher,
	classifier *SuitabilityClassifier,
	providerInfo ProviderInfoInterface,
	cacheMetrics *metrics.CacheMetrics,
) *AdvisoryService {
	return &AdvisoryService{
		cache:        cache,
		matcher:      matcher,
		classifier:   classifier,
		providerInfo: providerInfo,
		cacheMetrics: cacheMetrics,
	}
}

// Advise produces a suitability verdict for one event. A provider failure
// with no usable stale bundle surfaces as ProviderUnavailable; an event too
// far from every forecast sample surfaces as NoForecastInWindow.
func (s *AdvisoryService) Advise(ctx context.Context, eventID string, eventTime time.Time, coord models.Coordinate) (*models.Verdict, error) {
	log.Printf("[DEBUG] AdvisoryService.Advise called for event %s at %s (%s)\n", eventID, eventTime, coord.String())

	if eventID == "" {
		return nil, errors.NewValidationError("event id cannot be empty")
	}
	if eventTime.IsZero() {
		return nil, errors.NewValidationError("event time cannot be zero")
	}
	if err := coord.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	bundle, err := s.cache.Get(ctx, coord)
	if err != nil {
		log.Printf("[ERROR] Forecast fetch failed for event %s: %v\n", eventID, err)
		if errors.IsProviderFailure(err) {
			return nil, errors.NewProviderUnavailableError("no forecast available for "+coord.String(), err)
		}
		return nil, err
	}

	match, err := s.matcher.Select(eventTime, bundle.Samples)
	if err != nil {
		return nil, err
	}

	verdict := s.classifier.Classify(match, bundle.Alerts, eventTime)
	verdict.Stale = bundle.Stale

	log.Printf("[DEBUG] Advisory for event %s: suitable=%t reasons=%v delta=%dm stale=%t\n",
		eventID, verdict.Suitable, verdict.Reasons, verdict.TimeDeltaMinutes, verdict.Stale)
	return verdict, nil
}

// GetProviderInfo describes the configured provider chain
func (s *AdvisoryService) GetProviderInfo() map[string]interface{} {
	if s.providerInfo == nil {
		return map[string]interface{}{}
	}
	return s.providerInfo.ProviderInfo()
}

// GetCacheMetrics returns forecast cache statistics
func (s *AdvisoryService) GetCacheMetrics() map[string]interface{} {
	if s.cacheMetrics == nil {
		return map[string]interface{}{}
	}
	return s.cacheMetrics.GetStats()
}
