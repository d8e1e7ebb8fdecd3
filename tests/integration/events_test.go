package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"outdooradvisor.app/models"
)

func (s *IntegrationTestSuite) postEvent(payload map[string]interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	req := httptest.NewRequest("POST", "/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)
	return w
}

func (s *IntegrationTestSuite) TestCreateEvent_Success() {
	w := s.postEvent(map[string]interface{}{
		"name":           "Morning Run",
		"scheduled_time": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		"latitude":       50.4501,
		"longitude":      30.5234,
		"contact_email":  "runner@example.com",
	})

	s.Equal(http.StatusCreated, w.Code)

	var event models.Event
	s.NoError(json.Unmarshal(w.Body.Bytes(), &event))
	s.NotEmpty(event.ID)
	s.Equal("Morning Run", event.Name)
	s.Equal("runner@example.com", event.ContactEmail)

	stored, err := s.eventRepo.FindByID(event.ID)
	s.NoError(err)
	s.Require().NotNil(stored)
	s.Equal(event.ID, stored.ID)
}

func (s *IntegrationTestSuite) TestCreateEvent_MissingCoordinates() {
	w := s.postEvent(map[string]interface{}{
		"name":           "Morning Run",
		"scheduled_time": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *IntegrationTestSuite) TestCreateEvent_InvalidContactEmail() {
	w := s.postEvent(map[string]interface{}{
		"name":           "Morning Run",
		"scheduled_time": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		"latitude":       50.4501,
		"longitude":      30.5234,
		"contact_email":  "not-an-email",
	})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *IntegrationTestSuite) TestGetEventAdvisory_Success() {
	event := s.CreateTestEvent("Picnic", time.Now().Add(24*time.Hour), 50.4501, 30.5234, "")

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/events/%s/advisory", event.ID), nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var response struct {
		Event    models.Event   `json:"event"`
		Advisory models.Verdict `json:"advisory"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal(event.ID, response.Event.ID)
	s.True(response.Advisory.Suitable)
}

func (s *IntegrationTestSuite) TestGetEventAdvisory_NotFound() {
	req := httptest.NewRequest("GET", "/api/events/nonexistent-id/advisory", nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)

	var errorResponse models.ErrorResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &errorResponse))
	s.Equal("event not found", errorResponse.Error)
}

func (s *IntegrationTestSuite) TestDeleteEvent() {
	event := s.CreateTestEvent("Picnic", time.Now().Add(24*time.Hour), 50.4501, 30.5234, "")

	req := httptest.NewRequest("DELETE", "/api/events/"+event.ID, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)

	stored, err := s.eventRepo.FindByID(event.ID)
	s.NoError(err)
	s.Nil(stored)

	// A second delete reports not found
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/events/"+event.ID, nil))
	s.Equal(http.StatusNotFound, w.Code)
}
