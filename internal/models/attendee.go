package models

import (
	"github.com/uptrace/bun"
)

type Attendee struct {
	bun.BaseModel `bun:"table:attendees"`

	AttendeeID int64  `bun:"attendee_id,pk,autoincrement" json:"attendeeId"`
	Name       string `bun:"name,notnull" json:"name"`
	Email      string `bun:"email" json:"email"`
	Phone      string `bun:"phone" json:"phone"`

	Events []Event `bun:"m2m:event_attendees,join:Attendee=Event" json:"-"`
}

// EventAttendee is the join table backing the event/attendee many-to-many
// association. It must be registered with bun before any query touches the
// relation (see db.RegisterModels).
type EventAttendee struct {
	bun.BaseModel `bun:"table:event_attendees"`

	EventID    int64     `bun:"event_id,pk"`
	Event      *Event    `bun:"rel:belongs-to,join:event_id=event_id"`
	AttendeeID int64     `bun:"attendee_id,pk"`
	Attendee   *Attendee `bun:"rel:belongs-to,join:attendee_id=attendee_id"`
}
