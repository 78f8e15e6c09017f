package database

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"eventsphere/internal/config"
	"eventsphere/internal/models"
)

// Connect opens the Postgres pool, verifies the connection and returns a
// configured bun.DB with the m2m join model registered.
func Connect(cfg config.DatabaseConfig) (*bun.DB, error) {
	sqldb, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := sqldb.Ping(); err != nil {
		return nil, err
	}

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	RegisterModels(bunDB)
	return bunDB, nil
}

// RegisterModels registers the models bun needs to know about before any
// relation query runs. Shared with the sqlite-backed test setups.
func RegisterModels(bunDB *bun.DB) {
	bunDB.RegisterModel((*models.EventAttendee)(nil))
}
