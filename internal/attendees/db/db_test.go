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

	"eventsphere/internal/attendees/db"
	"eventsphere/internal/database"
	"eventsphere/internal/models"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	database.RegisterModels(bunDB)

	tables := []interface{}{
		(*models.Event)(nil),
		(*models.Attendee)(nil),
		(*models.EventAttendee)(nil),
	}
	for _, model := range tables {
		_, err = bunDB.NewCreateTable().Model(model).Exec(context.Background())
		if err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func insertEvent(t *testing.T, bunDB *bun.DB) *models.Event {
	t.Helper()
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	event := &models.Event{Name: "GopherCon", StartDate: start, EndDate: start.Add(8 * time.Hour)}
	_, err := bunDB.NewInsert().Model(event).Exec(context.Background())
	assert.NoError(t, err)
	return event
}

func TestInsertAndFindByID(t *testing.T) {
	attendeeDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	attendee := &models.Attendee{Name: "Ada", Email: "ada@example.com", Phone: "555-0100"}
	err := attendeeDB.Insert(context.Background(), attendee)
	assert.NoError(t, err)

	found, err := attendeeDB.FindByID(context.Background(), attendee.AttendeeID)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, "Ada", found.Name)

	found, err = attendeeDB.FindByID(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestRegisterAndFindByEventID(t *testing.T) {
	attendeeDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	event := insertEvent(t, bunDB)

	ada := &models.Attendee{Name: "Ada"}
	bob := &models.Attendee{Name: "Bob"}
	assert.NoError(t, attendeeDB.Insert(ctx, ada))
	assert.NoError(t, attendeeDB.Insert(ctx, bob))

	assert.NoError(t, attendeeDB.Register(ctx, ada.AttendeeID, event.EventID))

	attendees, err := attendeeDB.FindByEventID(ctx, event.EventID)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(attendees))
	assert.Equal(t, "Ada", attendees[0].Name)

	// Unknown event yields an empty slice, not an error
	attendees, err = attendeeDB.FindByEventID(ctx, 999)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(attendees))
}

func TestRegisterTwiceIsNoOp(t *testing.T) {
	attendeeDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	event := insertEvent(t, bunDB)
	ada := &models.Attendee{Name: "Ada"}
	assert.NoError(t, attendeeDB.Insert(ctx, ada))

	assert.NoError(t, attendeeDB.Register(ctx, ada.AttendeeID, event.EventID))
	assert.NoError(t, attendeeDB.Register(ctx, ada.AttendeeID, event.EventID))

	attendees, err := attendeeDB.FindByEventID(ctx, event.EventID)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(attendees))
}

func TestEventExists(t *testing.T) {
	attendeeDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	event := insertEvent(t, bunDB)

	exists, err := attendeeDB.EventExists(ctx, event.EventID)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = attendeeDB.EventExists(ctx, 999)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestIsRegistered(t *testing.T) {
	attendeeDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	event := insertEvent(t, bunDB)
	ada := &models.Attendee{Name: "Ada"}
	assert.NoError(t, attendeeDB.Insert(ctx, ada))

	registered, err := attendeeDB.IsRegistered(ctx, ada.AttendeeID, event.EventID)
	assert.NoError(t, err)
	assert.False(t, registered)

	assert.NoError(t, attendeeDB.Register(ctx, ada.AttendeeID, event.EventID))

	registered, err = attendeeDB.IsRegistered(ctx, ada.AttendeeID, event.EventID)
	assert.NoError(t, err)
	assert.True(t, registered)
}

func TestUpdateInPlace(t *testing.T) {
	attendeeDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	attendee := &models.Attendee{Name: "Ada", Email: "ada@example.com"}
	assert.NoError(t, attendeeDB.Insert(ctx, attendee))

	attendee.Email = "ada@newmail.com"
	assert.NoError(t, attendeeDB.UpdateInPlace(ctx, *attendee))

	updated, err := attendeeDB.FindByID(ctx, attendee.AttendeeID)
	assert.NoError(t, err)
	assert.Equal(t, "ada@newmail.com", updated.Email)
}

func TestDeleteAttendee(t *testing.T) {
	attendeeDB, bunDB := setupTestDB(t)
	defer bunDB.Close()
	ctx := context.Background()

	attendee := &models.Attendee{Name: "Ada"}
	assert.NoError(t, attendeeDB.Insert(ctx, attendee))

	assert.NoError(t, attendeeDB.Delete(ctx, attendee.AttendeeID))

	found, err := attendeeDB.FindByID(ctx, attendee.AttendeeID)
	assert.NoError(t, err)
	assert.Nil(t, found)
}
