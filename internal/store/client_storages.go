package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-journal-backup/internal/config"
	"github.com/MKhiriev/go-journal-backup/internal/logger"
)

// ClientStorages groups all client-side storage backends into a single value
// that can be passed around the service layer.
type ClientStorages struct {
	// NoteRepository is the SQLite-backed repository of journal notes.
	NoteRepository LocalNoteRepository

	// AttachmentStorage keeps attachment files on the local filesystem.
	AttachmentStorage AttachmentStorage

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Opens the attachment directory cfg.Attachments.Dir.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		NoteRepository:    NewLocalNoteRepository(db, logger),
		AttachmentStorage: NewAttachmentFileStorage(cfg.Attachments.Dir),
		db:                db,
	}, nil
}

// Close releases the database connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
