package services

import (
	"context"
	"time"

	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(ctx context.Context, eventType, level, message, subject string) error
	GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error)
	PruneEvents(ctx context.Context, keep int) (int, error)
}

// Publisher pushes recorded events to live subscribers.
type Publisher interface {
	Publish(event models.Event)
}

// EventService records activity events and fans them out to a Publisher.
type EventService struct {
	log       store.EventLog
	publisher Publisher
	now       func() time.Time
}

// NewEventService creates a new EventService. publisher may be nil.
func NewEventService(eventLog store.EventLog, publisher Publisher) *EventService {
	return &EventService{log: eventLog, publisher: publisher, now: time.Now}
}

// CreateEvent stores a new event and publishes it.
func (s *EventService) CreateEvent(ctx context.Context, eventType, level, message, subject string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		Subject:   subject,
		CreatedAt: s.now().UTC(),
	}

	if err := s.log.Append(ctx, event); err != nil {
		return err
	}
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
	return nil
}

// GetRecentEvents retrieves the most recent events, newest first.
func (s *EventService) GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error) {
	events, err := s.log.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// PruneEvents drops all but the newest keep events.
func (s *EventService) PruneEvents(ctx context.Context, keep int) (int, error) {
	return s.log.Prune(ctx, keep)
}

// record logs an event on behalf of another service. Failing to record activity never
// fails the request that caused it.
func record(ctx context.Context, events EventServiceProvider, eventType, message, subject string) {
	if events == nil {
		return
	}
	if err := events.CreateEvent(ctx, eventType, "info", message, subject); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
