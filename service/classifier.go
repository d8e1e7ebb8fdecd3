package service

import (
	"strings"
	"time"

	"outdooradvisor.app/config"
	"outdooradvisor.app/models"
)

const (
	ReasonTemperature = "temperature out of range"
	ReasonWind        = "wind too high"
	ReasonCondition   = "adverse precipitation/condition"
)

// SuitabilityClassifier converts one matched sample plus active alerts into a
// verdict. Every rule is evaluated; all failing rules are reported, not just
// the first.
type SuitabilityClassifier struct {
	minTemperatureF   float64
	maxTemperatureF   float64
	maxWindSpeedMph   float64
	blockedConditions []string
}

func NewSuitabilityClassifier(activityConfig *config.ActivityConfig) *SuitabilityClassifier {
	blocked := make([]string, 0, len(activityConfig.BlockedConditions))
	for _, keyword := range activityConfig.BlockedConditions {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			blocked = append(blocked, keyword)
		}
	}

	return &SuitabilityClassifier{
		minTemperatureF:   activityConfig.MinTemperatureF,
		maxTemperatureF:   activityConfig.MaxTemperatureF,
		maxWindSpeedMph:   activityConfig.MaxWindSpeedMph,
		blockedConditions: blocked,
	}
}

// Classify applies the temperature, wind and condition rules to the matched
// sample. Alerts overlapping the event time are attached as informational
// context; an alert alone never flips the verdict, since alert categories
// often do not correlate with conditions at the specific event time.
func (c *SuitabilityClassifier) Classify(match *Match, alerts []models.Alert, eventTime time.Time) *models.Verdict {
	reasons := make([]string, 0, 3)

	if match.Sample.TemperatureF < c.minTemperatureF || match.Sample.TemperatureF > c.maxTemperatureF {
		reasons = append(reasons, ReasonTemperature)
	}
	if match.Sample.WindSpeedMph > c.maxWindSpeedMph {
		reasons = append(reasons, ReasonWind)
	}
	if c.conditionBlocked(match.Sample.ConditionText) {
		reasons = append(reasons, ReasonCondition)
	}

	activeAlerts := make([]models.Alert, 0)
	for _, alert := range alerts {
		if alert.ActiveAt(eventTime) {
			activeAlerts = append(activeAlerts, alert)
		}
	}

	return &models.Verdict{
		MatchedSample:    match.Sample,
		TimeDeltaMinutes: match.TimeDeltaMinutes,
		Suitable:         len(reasons) == 0,
		Reasons:          reasons,
		ActiveAlerts:     activeAlerts,
	}
}

func (c *SuitabilityClassifier) conditionBlocked(conditionText string) bool {
	lowered := strings.ToLower(conditionText)
	for _, keyword := range c.blockedConditions {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
