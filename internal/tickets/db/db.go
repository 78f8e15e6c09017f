package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"eventsphere/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// FindByID returns (nil, nil) when no ticket matches; the service layer owns
// the translation to a domain not-found error.
func (d *DB) FindByID(ctx context.Context, ticketID int64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Where("ticket_id = ?", ticketID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (d *DB) FindByEventID(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	err := d.Bun.NewSelect().
		Model(&tickets).
		Where("event_id = ?", eventID).
		Order("ticket_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (d *DB) FindAvailableByEventID(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	err := d.Bun.NewSelect().
		Model(&tickets).
		Where("event_id = ? AND quantity_available > 0", eventID).
		Order("ticket_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (d *DB) Insert(ctx context.Context, ticket *models.Ticket) error {
	_, err := d.Bun.NewInsert().Model(ticket).Exec(ctx)
	return err
}

func (d *DB) UpdateInPlace(ctx context.Context, ticket models.Ticket) error {
	_, err := d.Bun.NewUpdate().
		Model(&ticket).
		Column("event_id", "price", "ticket_type", "quantity_available").
		Where("ticket_id = ?", ticket.TicketID).
		Exec(ctx)
	return err
}

// Delete is a no-op, not an error, when the ticket is already gone.
func (d *DB) Delete(ctx context.Context, ticketID int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Ticket)(nil)).
		Where("ticket_id = ?", ticketID).
		Exec(ctx)
	return err
}

// SellTickets decrements the available quantity and increments the sold
// counter in one conditional update, so two concurrent sells can never drive
// the quantity negative. It reports whether a row matched.
func (d *DB) SellTickets(ctx context.Context, ticketID int64, quantity int) (bool, error) {
	res, err := d.Bun.NewUpdate().
		Model((*models.Ticket)(nil)).
		Set("quantity_available = quantity_available - ?", quantity).
		Set("quantity_sold = quantity_sold + ?", quantity).
		Where("ticket_id = ? AND quantity_available >= ?", ticketID, quantity).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// RefundTickets restocks quantity and decrements the sold counter. Refunds
// have no upper bound; the sold counter may go negative when a refund exceeds
// issuance, matching the inventory's permissive refund policy.
func (d *DB) RefundTickets(ctx context.Context, ticketID int64, quantity int) (bool, error) {
	res, err := d.Bun.NewUpdate().
		Model((*models.Ticket)(nil)).
		Set("quantity_available = quantity_available + ?", quantity).
		Set("quantity_sold = quantity_sold - ?", quantity).
		Where("ticket_id = ?", ticketID).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// RevenueForEvent sums price * quantity_sold across the event's tickets.
func (d *DB) RevenueForEvent(ctx context.Context, eventID int64) (float64, error) {
	var total float64
	err := d.Bun.NewSelect().
		Model((*models.Ticket)(nil)).
		ColumnExpr("COALESCE(SUM(price * quantity_sold), 0)").
		Where("event_id = ?", eventID).
		Scan(ctx, &total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
