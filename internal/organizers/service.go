package organizers

import (
	"context"
	"fmt"

	"eventsphere/internal/domain"
	"eventsphere/internal/models"
)

type OrganizerStore interface {
	FindByID(ctx context.Context, organizerID int64) (*models.Organizer, error)
	FindAll(ctx context.Context) ([]models.Organizer, error)
	Insert(ctx context.Context, organizer *models.Organizer) error
	UpdateInPlace(ctx context.Context, organizer models.Organizer) error
	Delete(ctx context.Context, organizerID int64) error
}

type OrganizerService struct {
	DB OrganizerStore
}

func NewOrganizerService(db OrganizerStore) *OrganizerService {
	return &OrganizerService{DB: db}
}

func (s *OrganizerService) GetAll(ctx context.Context) ([]models.Organizer, error) {
	return s.DB.FindAll(ctx)
}

func (s *OrganizerService) GetByID(ctx context.Context, organizerID int64) (*models.Organizer, error) {
	organizer, err := s.DB.FindByID(ctx, organizerID)
	if err != nil {
		return nil, err
	}
	if organizer == nil {
		return nil, fmt.Errorf("%w: organizer %d", domain.ErrNotFound, organizerID)
	}
	return organizer, nil
}

func (s *OrganizerService) Add(ctx context.Context, request models.OrganizerRequest) (*models.Organizer, error) {
	organizer := organizerFromRequest(request)
	if err := s.DB.Insert(ctx, &organizer); err != nil {
		return nil, err
	}
	return &organizer, nil
}

func (s *OrganizerService) Update(ctx context.Context, request models.OrganizerRequest, organizerID int64) error {
	existing, err := s.DB.FindByID(ctx, organizerID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: organizer %d", domain.ErrNotFound, organizerID)
	}

	existing.Name = request.Name
	existing.Phone = request.Phone

	return s.DB.UpdateInPlace(ctx, *existing)
}

func (s *OrganizerService) Delete(ctx context.Context, organizerID int64) error {
	existing, err := s.DB.FindByID(ctx, organizerID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: organizer %d", domain.ErrNotFound, organizerID)
	}
	return s.DB.Delete(ctx, organizerID)
}

func organizerFromRequest(request models.OrganizerRequest) models.Organizer {
	return models.Organizer{
		Name:  request.Name,
		Phone: request.Phone,
	}
}
