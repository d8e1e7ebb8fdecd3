// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"outdooradvisor.app/models"
)

// EventRepository handles data access operations for scheduled outdoor events
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new repository for event data
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create persists a new event, assigning it an ID when none is set
func (r *EventRepository) Create(event *models.Event) error {
	log.Printf("[DEBUG] EventRepository.Create: %+v\n", event)

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	result := r.db.Create(event)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating event: %v\n", result.Error)
		return result.Error
	}

	log.Printf("[DEBUG] Created event with ID: %s\n", event.ID)
	return nil
}

// FindByID retrieves an event by its ID, returning nil when none exists
func (r *EventRepository) FindByID(id string) (*models.Event, error) {
	log.Printf("[DEBUG] EventRepository.FindByID: id=%s\n", id)

	var event models.Event
	result := r.db.Where("id = ?", id).First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Println("[DEBUG] No event found")
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding event by ID: %v\n", result.Error)
		return nil, result.Error
	}

	log.Printf("[DEBUG] Found event: %+v\n", event)
	return &event, nil
}

// FindUpcoming retrieves events scheduled between now and now+within
func (r *EventRepository) FindUpcoming(within time.Duration) ([]models.Event, error) {
	log.Printf("[DEBUG] EventRepository.FindUpcoming: within=%v\n", within)

	now := time.Now()
	var events []models.Event
	result := r.db.Where("scheduled_time >= ? AND scheduled_time <= ?", now, now.Add(within)).
		Order("scheduled_time asc").
		Find(&events)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when finding upcoming events: %v\n", result.Error)
		return nil, result.Error
	}

	log.Printf("[DEBUG] Found %d upcoming events\n", len(events))
	return events, nil
}

// Delete removes an event from the database
func (r *EventRepository) Delete(event *models.Event) error {
	log.Printf("[DEBUG] EventRepository.Delete: %+v\n", event)

	result := r.db.Delete(event)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting event: %v\n", result.Error)
		return result.Error
	}

	log.Println("[DEBUG] Deleted event successfully")
	return nil
}

// DeletePastEvents removes events whose scheduled time is further in the past
// than olderThan, returning the number of rows removed
func (r *EventRepository) DeletePastEvents(olderThan time.Duration) (int64, error) {
	log.Printf("[DEBUG] EventRepository.DeletePastEvents: olderThan=%v\n", olderThan)

	result := r.db.Where("scheduled_time < ?", time.Now().Add(-olderThan)).Delete(&models.Event{})
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting past events: %v\n", result.Error)
		return 0, result.Error
	}

	log.Printf("[DEBUG] Deleted %d past events\n", result.RowsAffected)
	return result.RowsAffected, nil
}
