package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-journal-backup/models"
)

type jsonSnapshotCodec struct{}

func NewJSONSnapshotCodec() SnapshotCodec {
	return jsonSnapshotCodec{}
}

func (jsonSnapshotCodec) Encode(notes []models.Note, createdAt time.Time) ([]byte, error) {
	if notes == nil {
		notes = []models.Note{}
	}

	data, err := json.Marshal(models.SnapshotDocument{
		Version:   models.SnapshotFormatVersion,
		CreatedAt: createdAt.UTC(),
		Notes:     notes,
	})
	if err != nil {
		return nil, fmt.Errorf("encode notes snapshot: %w", err)
	}

	return data, nil
}

func (jsonSnapshotCodec) Decode(data []byte) ([]models.Note, error) {
	var doc models.SnapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode notes snapshot: %w", err)
	}

	if doc.Version < 1 || doc.Version > models.SnapshotFormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSnapshotVersion, doc.Version)
	}

	return doc.Notes, nil
}
