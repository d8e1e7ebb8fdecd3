package scheduler

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"outdooradvisor.app/models"
	"outdooradvisor.app/service"
)

// EmailNotifier delivers advisory outcomes to the event's contact address.
// Events without a contact address fall back to the structured log.
type EmailNotifier struct {
	sender   service.EmailSenderInterface
	fallback *LogNotifier
}

// NewEmailNotifier creates a notifier that sends advisory emails
func NewEmailNotifier(sender service.EmailSenderInterface) *EmailNotifier {
	return &EmailNotifier{
		sender:   sender,
		fallback: NewLogNotifier(),
	}
}

func (n *EmailNotifier) NotifyAdvisory(event *models.Event, verdict *models.Verdict) {
	if event.ContactEmail == "" {
		n.fallback.NotifyAdvisory(event, verdict)
		return
	}

	subject := fmt.Sprintf("Advisory for %s: %s", eventLabel(event), verdictWord(verdict))
	body := buildAdvisoryBody(event, verdict)

	if err := n.sender.SendEmail(event.ContactEmail, subject, body, false); err != nil {
		slog.Error("failed to send advisory email",
			"event_id", event.ID,
			"recipient", event.ContactEmail,
			"error", err)
	}
}

func (n *EmailNotifier) NotifyUnavailable(event *models.Event, err error) {
	if event.ContactEmail == "" {
		n.fallback.NotifyUnavailable(event, err)
		return
	}

	subject := fmt.Sprintf("Advisory for %s: unavailable", eventLabel(event))
	body := fmt.Sprintf("No advisory could be produced for %s scheduled at %s.\n\nReason: %v\n",
		eventLabel(event), event.ScheduledTime.Format(time.RFC1123), err)

	if sendErr := n.sender.SendEmail(event.ContactEmail, subject, body, false); sendErr != nil {
		slog.Error("failed to send unavailability email",
			"event_id", event.ID,
			"recipient", event.ContactEmail,
			"error", sendErr)
	}
}

func buildAdvisoryBody(event *models.Event, verdict *models.Verdict) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Advisory for %s scheduled at %s.\n\n",
		eventLabel(event), event.ScheduledTime.Format(time.RFC1123))

	sample := verdict.MatchedSample
	fmt.Fprintf(&b, "Forecast sample at %s (%d minutes from event time):\n",
		sample.SampleTime.Format(time.RFC1123), verdict.TimeDeltaMinutes)
	fmt.Fprintf(&b, "  Temperature: %.1f F\n", sample.TemperatureF)
	fmt.Fprintf(&b, "  Wind: %.1f mph\n", sample.WindSpeedMph)
	fmt.Fprintf(&b, "  Conditions: %s\n\n", sample.ConditionText)

	if verdict.Suitable {
		b.WriteString("Conditions look suitable for outdoor activity.\n")
	} else {
		b.WriteString("Conditions are not suitable for outdoor activity:\n")
		for _, reason := range verdict.Reasons {
			fmt.Fprintf(&b, "  - %s\n", reason)
		}
	}

	if len(verdict.ActiveAlerts) > 0 {
		b.WriteString("\nActive weather alerts:\n")
		for _, alert := range verdict.ActiveAlerts {
			fmt.Fprintf(&b, "  - %s (%s): %s\n", alert.Category, alert.Severity, alert.Headline)
		}
	}

	if verdict.Stale {
		b.WriteString("\nNote: this advisory is based on cached forecast data that could not be refreshed.\n")
	}

	return b.String()
}

func eventLabel(event *models.Event) string {
	if event.Name != "" {
		return event.Name
	}
	return event.ID
}

func verdictWord(verdict *models.Verdict) string {
	if verdict.Suitable {
		return "suitable"
	}
	return "not suitable"
}

var _ service.NotifierInterface = (*EmailNotifier)(nil)
