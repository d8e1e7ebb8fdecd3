package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"outdooradvisor.app/models"
)

// Provider failure scenarios are selected by the integer latitude the mock
// forecast server receives. All provider failure modes collapse to 503 at
// the API boundary.
func (s *IntegrationTestSuite) TestProviderFailures() {
	scenarios := []struct {
		name string
		lat  float64
	}{
		{"RateLimited", 62.0},
		{"Unauthorized", 63.0},
		{"MalformedResponse", 64.0},
	}

	for _, scenario := range scenarios {
		req := httptest.NewRequest("GET", advisoryURL(scenario.lat, 30.0, time.Now().Add(24*time.Hour)), nil)
		w := httptest.NewRecorder()

		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusServiceUnavailable, w.Code, scenario.name)

		var errorResponse models.ErrorResponse
		s.NoError(json.Unmarshal(w.Body.Bytes(), &errorResponse))
		s.Equal("Forecast provider unavailable", errorResponse.Error, scenario.name)
	}
}

func (s *IntegrationTestSuite) TestActiveAlertSurfaced() {
	req := httptest.NewRequest("GET", advisoryURL(56.0, 30.0, time.Now().Add(24*time.Hour)), nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var verdict models.Verdict
	s.NoError(json.Unmarshal(w.Body.Bytes(), &verdict))

	// Alerts are informational; fair conditions stay suitable.
	s.True(verdict.Suitable)
	s.Require().Len(verdict.ActiveAlerts, 1)
	s.Equal(models.SeveritySevere, verdict.ActiveAlerts[0].Severity)
	s.Contains(verdict.ActiveAlerts[0].Headline, "Severe Thunderstorm Warning")
}
