package store

import (
	"database/sql"

	"github.com/MKhiriev/go-journal-backup/internal/logger"
	"github.com/MKhiriev/go-journal-backup/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB); err != nil {
		db.logger.Err(err).Str("func", "DB.Migrate").Msg("failed to migrate local database")
		return err
	}
	db.logger.Debug().Str("func", "DB.Migrate").Msg("local database schema is up to date")
	return nil
}
