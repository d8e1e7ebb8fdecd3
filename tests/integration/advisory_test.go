package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"outdooradvisor.app/models"
)

func advisoryURL(lat, lon float64, eventTime time.Time) string {
	return fmt.Sprintf("/api/advisory?latitude=%f&longitude=%f&time=%s",
		lat, lon, eventTime.UTC().Format(time.RFC3339))
}

func (s *IntegrationTestSuite) TestGetAdvisory_Suitable() {
	req := httptest.NewRequest("GET", advisoryURL(50.4501, 30.5234, time.Now().Add(24*time.Hour)), nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var verdict models.Verdict
	s.NoError(json.Unmarshal(w.Body.Bytes(), &verdict))

	s.True(verdict.Suitable)
	s.Empty(verdict.Reasons)
	s.Equal(68.0, verdict.MatchedSample.TemperatureF)
	s.Equal("Partly cloudy", verdict.MatchedSample.ConditionText)
	s.False(verdict.Stale)
}

func (s *IntegrationTestSuite) TestGetAdvisory_RainyAndWindy() {
	req := httptest.NewRequest("GET", advisoryURL(55.75, 37.62, time.Now().Add(24*time.Hour)), nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var verdict models.Verdict
	s.NoError(json.Unmarshal(w.Body.Bytes(), &verdict))

	s.False(verdict.Suitable)
	s.Contains(verdict.Reasons, "wind too high")
	s.Contains(verdict.Reasons, "adverse precipitation/condition")
}

func (s *IntegrationTestSuite) TestGetAdvisory_MissingLatitude() {
	req := httptest.NewRequest("GET", "/api/advisory?longitude=30.52&time=2025-07-12T09:00:00Z", nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)

	var errorResponse models.ErrorResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &errorResponse))
	s.Equal("latitude parameter is required and must be numeric", errorResponse.Error)
}

func (s *IntegrationTestSuite) TestGetAdvisory_OutsideForecastWindow() {
	// The mock forecast spans 72 hours; an event far beyond it has no sample
	// inside the match window.
	req := httptest.NewRequest("GET", advisoryURL(50.4501, 30.5234, time.Now().Add(30*24*time.Hour)), nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *IntegrationTestSuite) TestGetAdvisory_ProviderError() {
	req := httptest.NewRequest("GET", advisoryURL(61.0, 30.0, time.Now().Add(24*time.Hour)), nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusServiceUnavailable, w.Code)

	var errorResponse models.ErrorResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &errorResponse))
	s.Equal("Forecast provider unavailable", errorResponse.Error)
}

func (s *IntegrationTestSuite) TestGetAdvisory_CachedBundleReused() {
	url := advisoryURL(49.8397, 24.0297, time.Now().Add(12*time.Hour))

	first := httptest.NewRecorder()
	s.router.ServeHTTP(first, httptest.NewRequest("GET", url, nil))
	s.Equal(http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	s.router.ServeHTTP(second, httptest.NewRequest("GET", url, nil))
	s.Equal(http.StatusOK, second.Code)

	var v1, v2 models.Verdict
	s.NoError(json.Unmarshal(first.Body.Bytes(), &v1))
	s.NoError(json.Unmarshal(second.Body.Bytes(), &v2))
	s.Equal(v1, v2)
}
