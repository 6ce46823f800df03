package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-journal-backup/models"
)

const (
	notesTable       = "notes"
	attachmentsTable = "attachments"

	upsertNoteSuffix = `ON CONFLICT(id) DO UPDATE SET
		timestamp = excluded.timestamp,
		tags = excluded.tags,
		content = excluded.content`

	upsertAttachmentSuffix = `ON CONFLICT(id) DO UPDATE SET
		note_id = excluded.note_id,
		kind = excluded.kind,
		local_path = excluded.local_path`
)

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildSelectAllNotesQuery() (string, []any, error) {
	return sqlite.
		Select("id", "timestamp", "tags", "content").
		From(notesTable).
		OrderBy("timestamp ASC", "id ASC").
		ToSql()
}

func buildSelectAllAttachmentsQuery() (string, []any, error) {
	return sqlite.
		Select("id", "local_path").
		From(attachmentsTable).
		Where(sq.NotEq{"local_path": ""}).
		ToSql()
}

// buildUpsertNoteQuery stores the note row. Tags and content are kept as
// JSON; attachment paths are excluded from content and go to the
// attachments table.
func buildUpsertNoteQuery(note models.Note) (string, []any, error) {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return "", nil, fmt.Errorf("encode tags: %w", err)
	}

	contentJSON, err := json.Marshal(note.Content)
	if err != nil {
		return "", nil, fmt.Errorf("encode content: %w", err)
	}

	return sqlite.
		Insert(notesTable).
		Columns("id", "timestamp", "tags", "content").
		Values(note.ID, note.Timestamp.UTC().UnixMilli(), string(tagsJSON), string(contentJSON)).
		Suffix(upsertNoteSuffix).
		ToSql()
}

func buildDeleteNoteAttachmentsQuery(noteID string) (string, []any, error) {
	return sqlite.
		Delete(attachmentsTable).
		Where(sq.Eq{"note_id": noteID}).
		ToSql()
}

// buildUpsertAttachmentsQuery returns an empty query when the note has no
// attachment with a local path.
func buildUpsertAttachmentsQuery(note models.Note) (string, []any, error) {
	insert := sqlite.
		Insert(attachmentsTable).
		Columns("id", "note_id", "kind", "local_path")

	rows := 0
	for _, ref := range note.Attachments() {
		if ref.Attachment.LocalPath == "" {
			continue
		}
		insert = insert.Values(ref.Attachment.ID, note.ID, int(ref.Kind), ref.Attachment.LocalPath)
		rows++
	}
	if rows == 0 {
		return "", nil, nil
	}

	return insert.Suffix(upsertAttachmentSuffix).ToSql()
}
