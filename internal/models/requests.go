package models

import "time"

// Request payloads accepted by the HTTP layer. Conversion to the table
// models is done by explicit per-type functions in each service.

type TicketRequest struct {
	EventID           int64   `json:"eventId"`
	Price             float64 `json:"price"`
	TicketType        string  `json:"ticketType"`
	QuantityAvailable int     `json:"quantityAvailable"`
}

type EventRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	OrganizerID int64     `json:"organizerId"`
}

type OrganizerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// AttendeeRequest carries an optional event id; a zero or unresolvable id
// leaves the attendee without a registration rather than failing the call.
type AttendeeRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	EventID int64  `json:"eventId"`
}
