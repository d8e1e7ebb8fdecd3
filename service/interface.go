package service

import (
	"context"
	"time"

	"outdooradvisor.app/models"
)

// AdvisoryServiceInterface defines the interface for advisory operations
type AdvisoryServiceInterface interface {
	Advise(ctx context.Context, eventID string, eventTime time.Time, coord models.Coordinate) (*models.Verdict, error)
	GetProviderInfo() map[string]interface{}
	GetCacheMetrics() map[string]interface{}
}

// ProviderInfoInterface describes the assembled forecast provider chain
type ProviderInfoInterface interface {
	ProviderInfo() map[string]interface{}
}

// EventRepositoryInterface defines the interface for event data operations
type EventRepositoryInterface interface {
	Create(event *models.Event) error
	FindByID(id string) (*models.Event, error)
	FindUpcoming(within time.Duration) ([]models.Event, error)
	Delete(event *models.Event) error
	DeletePastEvents(olderThan time.Duration) (int64, error)
}

// NotifierInterface receives advisory outcomes from the background refresher
type NotifierInterface interface {
	NotifyAdvisory(event *models.Event, verdict *models.Verdict)
	NotifyUnavailable(event *models.Event, err error)
}

// EmailSenderInterface defines the interface for sending emails
type EmailSenderInterface interface {
	SendEmail(to, subject, body string, isHTML bool) error
}

// Ensure implementations satisfy interfaces
var _ AdvisoryServiceInterface = (*AdvisoryService)(nil)
