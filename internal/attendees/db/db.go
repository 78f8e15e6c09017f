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

func (d *DB) FindByID(ctx context.Context, attendeeID int64) (*models.Attendee, error) {
	var attendee models.Attendee
	err := d.Bun.NewSelect().
		Model(&attendee).
		Where("attendee_id = ?", attendeeID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attendee, nil
}

func (d *DB) FindAll(ctx context.Context) ([]models.Attendee, error) {
	attendees := make([]models.Attendee, 0)
	err := d.Bun.NewSelect().
		Model(&attendees).
		Order("attendee_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return attendees, nil
}

// FindByEventID returns the attendees registered for an event through the
// join table. An unknown event simply yields an empty slice.
func (d *DB) FindByEventID(ctx context.Context, eventID int64) ([]models.Attendee, error) {
	attendees := make([]models.Attendee, 0)
	err := d.Bun.NewSelect().
		Model(&attendees).
		Join("JOIN event_attendees AS ea ON ea.attendee_id = attendee.attendee_id").
		Where("ea.event_id = ?", eventID).
		Order("attendee.attendee_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return attendees, nil
}

func (d *DB) Insert(ctx context.Context, attendee *models.Attendee) error {
	_, err := d.Bun.NewInsert().Model(attendee).Exec(ctx)
	return err
}

func (d *DB) UpdateInPlace(ctx context.Context, attendee models.Attendee) error {
	_, err := d.Bun.NewUpdate().
		Model(&attendee).
		Column("name", "email", "phone").
		Where("attendee_id = ?", attendee.AttendeeID).
		Exec(ctx)
	return err
}

func (d *DB) Delete(ctx context.Context, attendeeID int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Attendee)(nil)).
		Where("attendee_id = ?", attendeeID).
		Exec(ctx)
	return err
}

func (d *DB) EventExists(ctx context.Context, eventID int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Event)(nil)).
		Where("event_id = ?", eventID).
		Exists(ctx)
}

// Register links an attendee to an event. Registering twice is a no-op.
func (d *DB) Register(ctx context.Context, attendeeID, eventID int64) error {
	_, err := d.Bun.NewInsert().
		Model(&models.EventAttendee{EventID: eventID, AttendeeID: attendeeID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	return err
}

func (d *DB) IsRegistered(ctx context.Context, attendeeID, eventID int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.EventAttendee)(nil)).
		Where("attendee_id = ? AND event_id = ?", attendeeID, eventID).
		Exists(ctx)
}
