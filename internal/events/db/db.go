package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"eventsphere/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) FindByID(ctx context.Context, eventID int64) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("event_id = ?", eventID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (d *DB) FindAll(ctx context.Context) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := d.Bun.NewSelect().
		Model(&events).
		Order("event_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (d *DB) FindByOrganizerID(ctx context.Context, organizerID int64) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := d.Bun.NewSelect().
		Model(&events).
		Where("organizer_id = ?", organizerID).
		Order("event_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// FindUpcomingByPopularity ranks future events by how many ticket batches
// they carry. Popularity is derived at query time, never stored.
func (d *DB) FindUpcomingByPopularity(ctx context.Context, now time.Time) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := d.Bun.NewSelect().
		Model(&events).
		Where("event.start_date > ?", now).
		OrderExpr("(SELECT COUNT(*) FROM tickets AS t WHERE t.event_id = event.event_id) DESC").
		Order("event_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (d *DB) Insert(ctx context.Context, event *models.Event) error {
	_, err := d.Bun.NewInsert().Model(event).Exec(ctx)
	return err
}

func (d *DB) UpdateInPlace(ctx context.Context, event models.Event) error {
	_, err := d.Bun.NewUpdate().
		Model(&event).
		Column("name", "description", "start_date", "end_date", "location", "capacity", "organizer_id").
		Where("event_id = ?", event.EventID).
		Exec(ctx)
	return err
}

func (d *DB) Delete(ctx context.Context, eventID int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Event)(nil)).
		Where("event_id = ?", eventID).
		Exec(ctx)
	return err
}
