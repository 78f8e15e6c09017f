package attendees

import (
	"context"
	"fmt"

	"eventsphere/internal/domain"
	"eventsphere/internal/models"
)

type AttendeeStore interface {
	FindByID(ctx context.Context, attendeeID int64) (*models.Attendee, error)
	FindAll(ctx context.Context) ([]models.Attendee, error)
	FindByEventID(ctx context.Context, eventID int64) ([]models.Attendee, error)
	Insert(ctx context.Context, attendee *models.Attendee) error
	UpdateInPlace(ctx context.Context, attendee models.Attendee) error
	Delete(ctx context.Context, attendeeID int64) error
	EventExists(ctx context.Context, eventID int64) (bool, error)
	Register(ctx context.Context, attendeeID, eventID int64) error
	IsRegistered(ctx context.Context, attendeeID, eventID int64) (bool, error)
}

type AttendeeService struct {
	DB AttendeeStore
}

func NewAttendeeService(db AttendeeStore) *AttendeeService {
	return &AttendeeService{DB: db}
}

func (s *AttendeeService) GetAll(ctx context.Context) ([]models.Attendee, error) {
	return s.DB.FindAll(ctx)
}

func (s *AttendeeService) GetByID(ctx context.Context, attendeeID int64) (*models.Attendee, error) {
	attendee, err := s.DB.FindByID(ctx, attendeeID)
	if err != nil {
		return nil, err
	}
	if attendee == nil {
		return nil, fmt.Errorf("%w: attendee %d", domain.ErrNotFound, attendeeID)
	}
	return attendee, nil
}

// GetByEvent returns an empty slice, not an error, for an unknown event.
func (s *AttendeeService) GetByEvent(ctx context.Context, eventID int64) ([]models.Attendee, error) {
	return s.DB.FindByEventID(ctx, eventID)
}

// Add creates the attendee and registers the event association when the
// request's event id resolves. An unknown event id skips the association
// silently; the attendee row is still created.
func (s *AttendeeService) Add(ctx context.Context, request models.AttendeeRequest) (*models.Attendee, error) {
	attendee := attendeeFromRequest(request)
	if err := s.DB.Insert(ctx, &attendee); err != nil {
		return nil, err
	}

	if err := s.registerIfEventExists(ctx, attendee.AttendeeID, request.EventID); err != nil {
		return nil, err
	}
	return &attendee, nil
}

// Update overwrites the contact fields and merges in a new event
// association when the request names one that resolves.
func (s *AttendeeService) Update(ctx context.Context, request models.AttendeeRequest, attendeeID int64) error {
	existing, err := s.DB.FindByID(ctx, attendeeID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: attendee %d", domain.ErrNotFound, attendeeID)
	}

	existing.Name = request.Name
	existing.Email = request.Email
	existing.Phone = request.Phone

	if err := s.DB.UpdateInPlace(ctx, *existing); err != nil {
		return err
	}
	return s.registerIfEventExists(ctx, attendeeID, request.EventID)
}

func (s *AttendeeService) Delete(ctx context.Context, attendeeID int64) error {
	existing, err := s.DB.FindByID(ctx, attendeeID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: attendee %d", domain.ErrNotFound, attendeeID)
	}
	return s.DB.Delete(ctx, attendeeID)
}

// GetRegistration resolves an attendee+event pair for pass generation.
// The pair must exist and be registered.
func (s *AttendeeService) GetRegistration(ctx context.Context, attendeeID, eventID int64) (*models.Attendee, error) {
	attendee, err := s.GetByID(ctx, attendeeID)
	if err != nil {
		return nil, err
	}

	registered, err := s.DB.IsRegistered(ctx, attendeeID, eventID)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, fmt.Errorf("%w: attendee %d is not registered for event %d", domain.ErrNotFound, attendeeID, eventID)
	}
	return attendee, nil
}

func (s *AttendeeService) registerIfEventExists(ctx context.Context, attendeeID, eventID int64) error {
	if eventID == 0 {
		return nil
	}
	exists, err := s.DB.EventExists(ctx, eventID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return s.DB.Register(ctx, attendeeID, eventID)
}

func attendeeFromRequest(request models.AttendeeRequest) models.Attendee {
	return models.Attendee{
		Name:  request.Name,
		Email: request.Email,
		Phone: request.Phone,
	}
}
