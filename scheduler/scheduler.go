// Package scheduler implements background advisory refresh jobs
package scheduler

import (
	"context"
	"log"
	"log/slog"
	"time"

	"outdooradvisor.app/config"
	"outdooradvisor.app/errors"
	"outdooradvisor.app/models"
	"outdooradvisor.app/service"
)

// Scheduler periodically re-evaluates advisories for upcoming events and
// hands the outcomes to a notifier. It also prunes events long past their
// scheduled time.
type Scheduler struct {
	config          *config.Config
	eventRepo       service.EventRepositoryInterface
	advisoryService service.AdvisoryServiceInterface
	notifier        service.NotifierInterface
	stopCh          chan struct{}
}

// NewScheduler creates and configures a new task scheduler
func NewScheduler(
	config *config.Config,
	eventRepo service.EventRepositoryInterface,
	advisoryService service.AdvisoryServiceInterface,
	notifier service.NotifierInterface,
) *Scheduler {
	return &Scheduler{
		config:          config,
		eventRepo:       eventRepo,
		advisoryService: advisoryService,
		notifier:        notifier,
		stopCh:          make(chan struct{}),
	}
}

// Start begins the scheduler's operations
func (s *Scheduler) Start() {
	go s.scheduleInterval(s.config.Scheduler.AdvisoryInterval, s.refreshAdvisories)
	go s.scheduleInterval(24*time.Hour, s.cleanupPastEvents)
}

// Stop terminates the scheduler's background loops
func (s *Scheduler) Stop() {
	close(s.stopCh)
}

func (s *Scheduler) scheduleInterval(interval time.Duration, job func()) {
	job()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			job()
		case <-s.stopCh:
			return
		}
	}
}

// refreshAdvisories evaluates every event inside the lookahead horizon. One
// event failing never blocks the rest.
func (s *Scheduler) refreshAdvisories() {
	events, err := s.eventRepo.FindUpcoming(s.config.Scheduler.EventLookahead)
	if err != nil {
		log.Printf("Error finding upcoming events: %v\n", err)
		return
	}

	slog.Info("refreshing advisories", "events", len(events))

	for i := range events {
		event := &events[i]
		verdict, err := s.advisoryService.Advise(context.Background(), event.ID, event.ScheduledTime, event.Coordinate())
		if err != nil {
			if !errors.IsNoForecast(err) {
				log.Printf("Error advising event %s: %v\n", event.ID, err)
			}
			s.notifier.NotifyUnavailable(event, err)
			continue
		}
		s.notifier.NotifyAdvisory(event, verdict)
	}
}

func (s *Scheduler) cleanupPastEvents() {
	deleted, err := s.eventRepo.DeletePastEvents(s.config.Scheduler.EventLookahead)
	if err != nil {
		log.Printf("Error cleaning up past events: %v\n", err)
		return
	}
	if deleted > 0 {
		slog.Info("removed past events", "count", deleted)
	}
}

// LogNotifier reports advisory outcomes to the structured log. It stands in
// for a real delivery channel; consumers own user-facing messaging.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) NotifyAdvisory(event *models.Event, verdict *models.Verdict) {
	slog.Info("advisory ready",
		"event_id", event.ID,
		"event_name", event.Name,
		"scheduled_time", event.ScheduledTime,
		"suitable", verdict.Suitable,
		"reasons", verdict.Reasons,
		"active_alerts", len(verdict.ActiveAlerts),
		"stale", verdict.Stale)
}

func (n *LogNotifier) NotifyUnavailable(event *models.Event, err error) {
	slog.Warn("advisory unavailable",
		"event_id", event.ID,
		"event_name", event.Name,
		"scheduled_time", event.ScheduledTime,
		"error", err)
}

var _ service.NotifierInterface = (*LogNotifier)(nil)
