package models

import (
	"github.com/uptrace/bun"
)

// Ticket is a sellable inventory batch tied to one event.
// QuantitySold is tracked separately from QuantityAvailable so revenue
// can be computed from historical sales rather than current stock.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	TicketID          int64   `bun:"ticket_id,pk,autoincrement" json:"ticketId"`
	EventID           int64   `bun:"event_id,notnull" json:"eventId"`
	Price             float64 `bun:"price,notnull" json:"price"`
	TicketType        string  `bun:"ticket_type" json:"ticketType"`
	QuantityAvailable int     `bun:"quantity_available,notnull" json:"quantityAvailable"`
	QuantitySold      int     `bun:"quantity_sold,notnull,default:0" json:"quantitySold"`

	Event *Event `bun:"rel:belongs-to,join:event_id=event_id" json:"-"`
}
