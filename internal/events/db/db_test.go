package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"eventsphere/internal/database"
	"eventsphere/internal/events/db"
	"eventsphere/internal/models"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	database.RegisterModels(bunDB)

	for _, model := range []interface{}{(*models.Event)(nil), (*models.Ticket)(nil)} {
		_, err = bunDB.NewCreateTable().Model(model).Exec(context.Background())
		if err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func insertEvent(t *testing.T, eventDB *db.DB, event *models.Event) {
	t.Helper()
	err := eventDB.Insert(context.Background(), event)
	assert.NoError(t, err)
}

func TestInsertAndFindByID(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	event := &models.Event{
		Name:        "GopherCon",
		Description: "Annual Go conference",
		StartDate:   time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 3, 18, 0, 0, 0, time.UTC),
		Location:    "Berlin",
		Capacity:    2000,
		OrganizerID: 1,
	}
	insertEvent(t, eventDB, event)

	found, err := eventDB.FindByID(context.Background(), event.EventID)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, "GopherCon", found.Name)
	assert.Equal(t, "Berlin", found.Location)

	found, err = eventDB.FindByID(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindByOrganizerID(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	insertEvent(t, eventDB, &models.Event{Name: "A", StartDate: start, EndDate: end, OrganizerID: 1})
	insertEvent(t, eventDB, &models.Event{Name: "B", StartDate: start, EndDate: end, OrganizerID: 1})
	insertEvent(t, eventDB, &models.Event{Name: "C", StartDate: start, EndDate: end, OrganizerID: 2})

	events, err := eventDB.FindByOrganizerID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(events))

	events, err = eventDB.FindByOrganizerID(context.Background(), 999)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(events))
}

func TestFindUpcomingByPopularity(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-30 * 24 * time.Hour)

	quiet := &models.Event{Name: "Quiet", StartDate: future, EndDate: future.Add(time.Hour)}
	popular := &models.Event{Name: "Popular", StartDate: future, EndDate: future.Add(time.Hour)}
	finished := &models.Event{Name: "Finished", StartDate: past, EndDate: past.Add(time.Hour)}
	insertEvent(t, eventDB, quiet)
	insertEvent(t, eventDB, popular)
	insertEvent(t, eventDB, finished)

	// The popular event carries three ticket batches, the quiet one a single
	// batch, the finished one none.
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := bunDB.NewInsert().Model(&models.Ticket{EventID: popular.EventID, QuantityAvailable: 10}).Exec(ctx)
		assert.NoError(t, err)
	}
	_, err := bunDB.NewInsert().Model(&models.Ticket{EventID: quiet.EventID, QuantityAvailable: 10}).Exec(ctx)
	assert.NoError(t, err)

	events, err := eventDB.FindUpcomingByPopularity(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(events))
	assert.Equal(t, "Popular", events[0].Name)
	assert.Equal(t, "Quiet", events[1].Name)
}

func TestUpdateInPlace(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	event := &models.Event{Name: "Draft", StartDate: start, EndDate: start.Add(time.Hour), Capacity: 100}
	insertEvent(t, eventDB, event)

	event.Name = "Final"
	event.Capacity = 250
	err := eventDB.UpdateInPlace(context.Background(), *event)
	assert.NoError(t, err)

	updated, err := eventDB.FindByID(context.Background(), event.EventID)
	assert.NoError(t, err)
	assert.Equal(t, "Final", updated.Name)
	assert.Equal(t, 250, updated.Capacity)
}

func TestDeleteEvent(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	event := &models.Event{Name: "Gone", StartDate: start, EndDate: start.Add(time.Hour)}
	insertEvent(t, eventDB, event)

	err := eventDB.Delete(context.Background(), event.EventID)
	assert.NoError(t, err)

	found, err := eventDB.FindByID(context.Background(), event.EventID)
	assert.NoError(t, err)
	assert.Nil(t, found)
}
