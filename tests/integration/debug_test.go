package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"
)

func (s *IntegrationTestSuite) TestDebugEndpoint() {
	req := httptest.NewRequest("GET", "/api/debug", nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))

	s.Contains(response, "database")
	s.Contains(response, "providers")
	s.Contains(response, "cache")
	s.Contains(response, "config")

	database := response["database"].(map[string]interface{})
	s.Equal(true, database["connected"])
	s.Equal(float64(0), database["eventCount"])

	cfg := response["config"].(map[string]interface{})
	s.Equal("8h0m0s", cfg["matchWindow"])
}

func (s *IntegrationTestSuite) TestDebugEndpoint_WithEvents() {
	s.CreateTestEvent("Run", time.Now().Add(3*time.Hour), 50.45, 30.52, "")
	s.CreateTestEvent("Hike", time.Now().Add(6*time.Hour), 48.85, 2.35, "")

	req := httptest.NewRequest("GET", "/api/debug", nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))

	database := response["database"].(map[string]interface{})
	s.Equal(float64(2), database["eventCount"])
}
