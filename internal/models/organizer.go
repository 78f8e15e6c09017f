package models

import (
	"github.com/uptrace/bun"
)

type Organizer struct {
	bun.BaseModel `bun:"table:organizers"`

	OrganizerID int64  `bun:"organizer_id,pk,autoincrement" json:"organizerId"`
	Name        string `bun:"name,notnull" json:"name"`
	Phone       string `bun:"phone" json:"phone"`

	Events []Event `bun:"rel:has-many,join:organizer_id=organizer_id" json:"-"`
}
