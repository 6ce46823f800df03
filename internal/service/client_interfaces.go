package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-journal-backup/models"
)

// RemoteContentIndex enumerates and classifies the content of the remote
// backup container.
type RemoteContentIndex interface {
	// List performs exactly one remote listing and classifies every object.
	// Objects that do not follow the key layout are skipped. Either the full
	// listing is returned or the call fails.
	List(ctx context.Context) ([]models.RemoteFile, error)
}

// LocalSnapshotReader reads the current local notes and the attachment files
// available on the device.
type LocalSnapshotReader interface {
	// ReadNotes returns all local notes in store order.
	ReadNotes(ctx context.Context) ([]models.Note, error)

	// AttachmentInventory maps every locally stored attachment id to its
	// path.
	AttachmentInventory(ctx context.Context) (map[string]string, error)
}

// SnapshotCodec converts notes to and from the notes snapshot wire format.
type SnapshotCodec interface {
	// Encode serializes notes into a snapshot document created at createdAt.
	// Local attachment paths are never written.
	Encode(notes []models.Note, createdAt time.Time) ([]byte, error)

	// Decode parses a snapshot document and returns its notes.
	Decode(data []byte) ([]models.Note, error)
}

// ErrorTracker receives errors for diagnostics. It never affects control
// flow.
type ErrorTracker interface {
	Track(ctx context.Context, err error, fields map[string]string)
}

// StatePublisher is a current-value cell of [models.SyncState] with a
// separate channel of one-shot [models.SyncEvent] values.
type StatePublisher interface {
	// Current returns the latest published state.
	Current() models.SyncState

	// Publish replaces the current state and notifies subscribers. It never
	// blocks.
	Publish(state models.SyncState)

	// Subscribe returns a channel that first yields the current state and
	// then only the latest state whenever it changes. A slow subscriber
	// misses intermediate states. The returned func unsubscribes and closes
	// the channel.
	Subscribe() (<-chan models.SyncState, func())

	// Emit delivers a one-shot event. When the event buffer is full the
	// event is dropped.
	Emit(ctx context.Context, event models.SyncEvent)

	// Events returns the one-shot event channel.
	Events() <-chan models.SyncEvent
}

// BackupService uploads the local journal to the remote container.
type BackupService interface {
	// RunBackup performs one backup run. It is not re-entrant: callers must
	// not start a run while another one is active.
	RunBackup(ctx context.Context) error

	// State returns the publisher of backup run states.
	State() StatePublisher
}

// RestoreService merges the authoritative remote snapshot into the local
// journal.
type RestoreService interface {
	// RunRestore performs one restore run. A call made while a run is
	// active returns nil without doing anything.
	RunRestore(ctx context.Context) error

	// ClearFailureState resets a Failure state to Idle. It is a no-op in
	// any other state.
	ClearFailureState()

	// State returns the publisher of restore run states.
	State() StatePublisher
}

// SyncStatusService reports the outcome of earlier runs.
type SyncStatusService interface {
	// LastSyncTime returns the moment of the latest successful run or the
	// zero time if none happened yet.
	LastSyncTime(ctx context.Context) (time.Time, error)
}

// BackupJob defines the contract for a background worker that periodically
// runs a backup.
type BackupJob interface {
	// Start launches the background goroutine. Any previously running job
	// is stopped before the new one begins.
	Start(ctx context.Context)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()

	// RunOnce runs a backup unless one is already in flight, in which case
	// it returns [ErrBackupInProgress].
	RunOnce(ctx context.Context) error
}
