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

func (d *DB) FindByID(ctx context.Context, organizerID int64) (*models.Organizer, error) {
	var organizer models.Organizer
	err := d.Bun.NewSelect().
		Model(&organizer).
		Where("organizer_id = ?", organizerID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &organizer, nil
}

func (d *DB) FindAll(ctx context.Context) ([]models.Organizer, error) {
	organizers := make([]models.Organizer, 0)
	err := d.Bun.NewSelect().
		Model(&organizers).
		Order("organizer_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return organizers, nil
}

func (d *DB) Insert(ctx context.Context, organizer *models.Organizer) error {
	_, err := d.Bun.NewInsert().Model(organizer).Exec(ctx)
	return err
}

func (d *DB) UpdateInPlace(ctx context.Context, organizer models.Organizer) error {
	_, err := d.Bun.NewUpdate().
		Model(&organizer).
		Column("name", "phone").
		Where("organizer_id = ?", organizer.OrganizerID).
		Exec(ctx)
	return err
}

func (d *DB) Delete(ctx context.Context, organizerID int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Organizer)(nil)).
		Where("organizer_id = ?", organizerID).
		Exec(ctx)
	return err
}
