package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	apperrors "outdooradvisor.app/errors"
	"outdooradvisor.app/models"
	"outdooradvisor.app/tests/integration/helpers"
)

// Full event lifecycle: registration, advisory evaluation, notification
// delivery and removal.
func (s *IntegrationTestSuite) TestAdvisoryWorkflow() {
	w := s.postEvent(map[string]interface{}{
		"name":           "Weekend Hike",
		"scheduled_time": time.Now().Add(36 * time.Hour).UTC().Format(time.RFC3339),
		"latitude":       50.4501,
		"longitude":      30.5234,
		"contact_email":  "hiker@example.com",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	var event models.Event
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &event))

	// Evaluate the advisory the way the scheduler does
	verdict, err := s.advisory.Advise(context.Background(), event.ID, event.ScheduledTime, event.Coordinate())
	s.Require().NoError(err)
	s.True(verdict.Suitable)

	s.notifier.NotifyAdvisory(&event, verdict)

	s.Require().Eventually(func() bool {
		return helpers.CheckEmailSent("hiker@example.com", "Weekend Hike")
	}, 10*time.Second, 500*time.Millisecond)
	s.AssertEmailSent("hiker@example.com", "suitable")

	body, err := helpers.GetEmailContent("hiker@example.com", "Weekend Hike")
	s.Require().NoError(err)
	s.Contains(body, "Partly cloudy")

	// Remove the event and confirm the advisory route is gone with it
	del := httptest.NewRecorder()
	s.router.ServeHTTP(del, httptest.NewRequest("DELETE", "/api/events/"+event.ID, nil))
	s.Equal(http.StatusOK, del.Code)

	adv := httptest.NewRecorder()
	s.router.ServeHTTP(adv, httptest.NewRequest("GET", fmt.Sprintf("/api/events/%s/advisory", event.ID), nil))
	s.Equal(http.StatusNotFound, adv.Code)
}

func (s *IntegrationTestSuite) TestUnavailabilityNotification() {
	event := s.CreateTestEvent("Storm Chase", time.Now().Add(24*time.Hour), 61.0, 30.0, "chaser@example.com")

	_, err := s.advisory.Advise(context.Background(), event.ID, event.ScheduledTime, event.Coordinate())
	s.Require().Error(err)
	s.Equal(apperrors.ProviderUnavailableError, apperrors.TypeOf(err))

	s.notifier.NotifyUnavailable(event, err)

	s.Require().Eventually(func() bool {
		return helpers.CheckEmailSent("chaser@example.com", "unavailable")
	}, 10*time.Second, 500*time.Millisecond)
}
