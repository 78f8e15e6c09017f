package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	EventID     int64     `bun:"event_id,pk,autoincrement" json:"eventId"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description"`
	StartDate   time.Time `bun:"start_date,notnull" json:"startDate"`
	EndDate     time.Time `bun:"end_date,notnull" json:"endDate"`
	Location    string    `bun:"location" json:"location"`
	Capacity    int       `bun:"capacity" json:"capacity"`
	OrganizerID int64     `bun:"organizer_id" json:"organizerId"`

	Organizer *Organizer `bun:"rel:belongs-to,join:organizer_id=organizer_id" json:"-"`
	Tickets   []Ticket   `bun:"rel:has-many,join:event_id=event_id" json:"-"`
	Attendees []Attendee `bun:"m2m:event_attendees,join:Event=Attendee" json:"-"`
}
