package tickets

import (
	"context"
	"fmt"

	"eventsphere/internal/domain"
	"eventsphere/internal/logger"
	"eventsphere/internal/models"
)

// TicketStore is the persistence boundary for ticket inventory. FindByID
// reports an absent ticket as (nil, nil); SellTickets and RefundTickets
// apply their quantity change as one conditional update and report whether
// a row matched.
type TicketStore interface {
	FindByID(ctx context.Context, ticketID int64) (*models.Ticket, error)
	FindByEventID(ctx context.Context, eventID int64) ([]models.Ticket, error)
	FindAvailableByEventID(ctx context.Context, eventID int64) ([]models.Ticket, error)
	Insert(ctx context.Context, ticket *models.Ticket) error
	UpdateInPlace(ctx context.Context, ticket models.Ticket) error
	Delete(ctx context.Context, ticketID int64) error
	SellTickets(ctx context.Context, ticketID int64, quantity int) (bool, error)
	RefundTickets(ctx context.Context, ticketID int64, quantity int) (bool, error)
	RevenueForEvent(ctx context.Context, eventID int64) (float64, error)
}

// InventoryPublisher streams sell/refund events. A publish failure never
// fails the inventory operation.
type InventoryPublisher interface {
	PublishTicketSold(ctx context.Context, ticketID int64, quantity int) error
	PublishTicketRefunded(ctx context.Context, ticketID int64, quantity int) error
}

// TicketService enforces the quantity invariants and translates store
// results into domain-level success or failure.
type TicketService struct {
	DB        TicketStore
	Publisher InventoryPublisher
	Logger    *logger.Logger
}

func NewTicketService(db TicketStore) *TicketService {
	return &TicketService{DB: db}
}

func (s *TicketService) GetByID(ctx context.Context, ticketID int64) (*models.Ticket, error) {
	ticket, err := s.DB.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %d", domain.ErrNotFound, ticketID)
	}
	return ticket, nil
}

// GetByEvent returns an empty slice, not an error, when the event has no
// tickets or does not exist.
func (s *TicketService) GetByEvent(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	return s.DB.FindByEventID(ctx, eventID)
}

func (s *TicketService) GetAvailable(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	return s.DB.FindAvailableByEventID(ctx, eventID)
}

// Add creates a ticket from the request. There is no existence check on the
// event id; the store accepts orphaned foreign keys.
func (s *TicketService) Add(ctx context.Context, request models.TicketRequest) (*models.Ticket, error) {
	ticket := ticketFromRequest(request)
	if err := s.DB.Insert(ctx, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Update overwrites the four mutable fields atomically from the request.
func (s *TicketService) Update(ctx context.Context, request models.TicketRequest, ticketID int64) error {
	existing, err := s.DB.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: ticket %d", domain.ErrNotFound, ticketID)
	}

	existing.EventID = request.EventID
	existing.Price = request.Price
	existing.TicketType = request.TicketType
	existing.QuantityAvailable = request.QuantityAvailable

	return s.DB.UpdateInPlace(ctx, *existing)
}

func (s *TicketService) Delete(ctx context.Context, ticketID int64) error {
	existing, err := s.DB.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: ticket %d", domain.ErrNotFound, ticketID)
	}
	return s.DB.Delete(ctx, ticketID)
}

// Sell decrements the available quantity. Validation failures are raised
// before the store is touched; the decrement itself is conditional at the
// store layer, so a concurrent sell can never push the quantity negative.
func (s *TicketService) Sell(ctx context.Context, ticketID int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero", domain.ErrInvalidArgument)
	}

	ok, err := s.DB.SellTickets(ctx, ticketID, quantity)
	if err != nil {
		return err
	}
	if !ok {
		ticket, err := s.DB.FindByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if ticket == nil {
			return fmt.Errorf("%w: ticket %d", domain.ErrNotFound, ticketID)
		}
		return fmt.Errorf("%w: not enough tickets available", domain.ErrConflict)
	}

	if s.Publisher != nil {
		if err := s.Publisher.PublishTicketSold(ctx, ticketID, quantity); err != nil && s.Logger != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("failed to publish ticket.sold for ticket %d: %v", ticketID, err))
		}
	}
	return nil
}

// Refund restores quantity with no upper bound; a refund may exceed the
// original issuance.
func (s *TicketService) Refund(ctx context.Context, ticketID int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero", domain.ErrInvalidArgument)
	}

	ok, err := s.DB.RefundTickets(ctx, ticketID, quantity)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: ticket %d", domain.ErrNotFound, ticketID)
	}

	if s.Publisher != nil {
		if err := s.Publisher.PublishTicketRefunded(ctx, ticketID, quantity); err != nil && s.Logger != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("failed to publish ticket.refunded for ticket %d: %v", ticketID, err))
		}
	}
	return nil
}

// RevenueForEvent aggregates price * quantity sold over the event's tickets.
// Quantity sold is a tracked counter, maintained by Sell and Refund, not
// derived from the current available count.
func (s *TicketService) RevenueForEvent(ctx context.Context, eventID int64) (float64, error) {
	return s.DB.RevenueForEvent(ctx, eventID)
}

func ticketFromRequest(request models.TicketRequest) models.Ticket {
	return models.Ticket{
		EventID:           request.EventID,
		Price:             request.Price,
		TicketType:        request.TicketType,
		QuantityAvailable: request.QuantityAvailable,
	}
}
