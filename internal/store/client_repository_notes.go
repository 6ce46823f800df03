package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-journal-backup/internal/logger"
	"github.com/MKhiriev/go-journal-backup/models"
)

type localNoteRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalNoteRepository(db *DB, logger *logger.Logger) LocalNoteRepository {
	return &localNoteRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localNoteRepository) GetAllNotes(ctx context.Context) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	paths, err := l.getAttachmentPaths(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := buildSelectAllNotesQuery()
	if err != nil {
		log.Err(err).Str("func", "localNoteRepository.GetAllNotes").Msg("failed to build select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "localNoteRepository.GetAllNotes").Msg("failed to query notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var (
			note        models.Note
			timestamp   int64
			tagsJSON    string
			contentJSON string
		)
		if err = rows.Scan(&note.ID, &timestamp, &tagsJSON, &contentJSON); err != nil {
			log.Err(err).Str("func", "localNoteRepository.GetAllNotes").Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		if err = json.Unmarshal([]byte(tagsJSON), &note.Tags); err != nil {
			log.Err(err).Str("func", "localNoteRepository.GetAllNotes").Str("note_id", note.ID).Msg("failed to decode tags")
			return nil, fmt.Errorf("%w: tags of note %s: %w", ErrDecodingColumn, note.ID, err)
		}
		if err = json.Unmarshal([]byte(contentJSON), &note.Content); err != nil {
			log.Err(err).Str("func", "localNoteRepository.GetAllNotes").Str("note_id", note.ID).Msg("failed to decode content")
			return nil, fmt.Errorf("%w: content of note %s: %w", ErrDecodingColumn, note.ID, err)
		}
		note.Timestamp = time.UnixMilli(timestamp).UTC()

		notes = append(notes, note.WithAttachmentPaths(paths))
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "localNoteRepository.GetAllNotes").Msg("error iterating note rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

func (l *localNoteRepository) getAttachmentPaths(ctx context.Context) (map[string]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAllAttachmentsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "localNoteRepository.getAttachmentPaths").Msg("failed to query attachments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	paths := make(map[string]string)
	for rows.Next() {
		var id, path string
		if err = rows.Scan(&id, &path); err != nil {
			log.Err(err).Str("func", "localNoteRepository.getAttachmentPaths").Msg("failed to scan attachment row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		paths[id] = path
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return paths, nil
}

// UpsertNote replaces the note row and its attachment rows in one
// transaction.
func (l *localNoteRepository) UpsertNote(ctx context.Context, note models.Note) error {
	log := logger.FromContext(ctx).WithStr("note_id", note.ID)

	noteQuery, noteArgs, err := buildUpsertNoteQuery(note)
	if err != nil {
		log.Err(err).Str("func", "localNoteRepository.UpsertNote").Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteQuery, deleteArgs, err := buildDeleteNoteAttachmentsQuery(note.ID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	attachmentsQuery, attachmentsArgs, err := buildUpsertAttachmentsQuery(note)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "localNoteRepository.UpsertNote").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, noteQuery, noteArgs...)
	if err != nil {
		log.Err(err).Str("func", "localNoteRepository.UpsertNote").Msg("failed to execute upsert for note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNoteNotSaved
	}

	if err = execInTx(ctx, tx, deleteQuery, deleteArgs); err != nil {
		log.Err(err).Str("func", "localNoteRepository.UpsertNote").Msg("failed to clear note attachments")
		return err
	}
	if attachmentsQuery != "" {
		if err = execInTx(ctx, tx, attachmentsQuery, attachmentsArgs); err != nil {
			log.Err(err).Str("func", "localNoteRepository.UpsertNote").Msg("failed to save note attachments")
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "localNoteRepository.UpsertNote").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func execInTx(ctx context.Context, tx *sql.Tx, query string, args []any) error {
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
