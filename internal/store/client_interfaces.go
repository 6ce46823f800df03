package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-journal-backup/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalNoteRepository is the local journal note repository.
type LocalNoteRepository interface {
	GetAllNotes(ctx context.Context) ([]models.Note, error)
	UpsertNote(ctx context.Context, note models.Note) error
}

// AttachmentStorage keeps attachment files on the local device, one
// directory per note. Paths are relative to the storage root.
type AttachmentStorage interface {
	// AllocateDestination prepares the location for attachmentID of noteID
	// and returns its path. The file itself is not created.
	AllocateDestination(ctx context.Context, noteID, attachmentID string) (string, error)
	// Create opens path for writing, truncating an existing file.
	Create(path string) (io.WriteCloser, error)
	// Open opens path for reading and reports its size in bytes.
	Open(path string) (io.ReadCloser, int64, error)
	// Remove deletes path. A missing file is not an error.
	Remove(path string) error
	// Inventory maps every stored attachment id to its path.
	Inventory(ctx context.Context) (map[string]string, error)
}
