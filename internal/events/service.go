package events

import (
	"context"
	"fmt"
	"time"

	"eventsphere/internal/domain"
	"eventsphere/internal/models"
)

type EventStore interface {
	FindByID(ctx context.Context, eventID int64) (*models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
	FindByOrganizerID(ctx context.Context, organizerID int64) ([]models.Event, error)
	FindUpcomingByPopularity(ctx context.Context, now time.Time) ([]models.Event, error)
	Insert(ctx context.Context, event *models.Event) error
	UpdateInPlace(ctx context.Context, event models.Event) error
	Delete(ctx context.Context, eventID int64) error
}

type EventService struct {
	DB EventStore

	// now is swapped in tests to pin the upcoming-events window.
	now func() time.Time
}

func NewEventService(db EventStore) *EventService {
	return &EventService{DB: db, now: time.Now}
}

func (s *EventService) GetAll(ctx context.Context) ([]models.Event, error) {
	return s.DB.FindAll(ctx)
}

func (s *EventService) GetByID(ctx context.Context, eventID int64) (*models.Event, error) {
	event, err := s.DB.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %d", domain.ErrNotFound, eventID)
	}
	return event, nil
}

func (s *EventService) GetByOrganizer(ctx context.Context, organizerID int64) ([]models.Event, error) {
	return s.DB.FindByOrganizerID(ctx, organizerID)
}

func (s *EventService) GetUpcomingSortedByPopularity(ctx context.Context) ([]models.Event, error) {
	return s.DB.FindUpcomingByPopularity(ctx, s.now())
}

func (s *EventService) Add(ctx context.Context, request models.EventRequest) (*models.Event, error) {
	event := eventFromRequest(request)
	if err := s.DB.Insert(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) Update(ctx context.Context, request models.EventRequest, eventID int64) error {
	existing, err := s.DB.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: event %d", domain.ErrNotFound, eventID)
	}

	existing.Name = request.Name
	existing.Description = request.Description
	existing.StartDate = request.StartDate
	existing.EndDate = request.EndDate
	existing.Location = request.Location
	existing.Capacity = request.Capacity
	existing.OrganizerID = request.OrganizerID

	return s.DB.UpdateInPlace(ctx, *existing)
}

func (s *EventService) Delete(ctx context.Context, eventID int64) error {
	existing, err := s.DB.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: event %d", domain.ErrNotFound, eventID)
	}
	return s.DB.Delete(ctx, eventID)
}

func eventFromRequest(request models.EventRequest) models.Event {
	return models.Event{
		Name:        request.Name,
		Description: request.Description,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Location:    request.Location,
		Capacity:    request.Capacity,
		OrganizerID: request.OrganizerID,
	}
}
