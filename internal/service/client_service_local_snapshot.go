package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-journal-backup/internal/store"
	"github.com/MKhiriev/go-journal-backup/models"
)

type localSnapshotReader struct {
	notes       store.LocalNoteRepository
	attachments store.AttachmentStorage
}

func NewLocalSnapshotReader(storages *store.ClientStorages) LocalSnapshotReader {
	return &localSnapshotReader{
		notes:       storages.NoteRepository,
		attachments: storages.AttachmentStorage,
	}
}

func (r *localSnapshotReader) ReadNotes(ctx context.Context) ([]models.Note, error) {
	notes, err := r.notes.GetAllNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("get local notes: %w", err)
	}
	return notes, nil
}

func (r *localSnapshotReader) AttachmentInventory(ctx context.Context) (map[string]string, error) {
	inventory, err := r.attachments.Inventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("get local attachment inventory: %w", err)
	}
	return inventory, nil
}

// attachmentIDs collects the ids of every attachment referenced by notes.
func attachmentIDs(notes []models.Note) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, note := range notes {
		for _, ref := range note.Attachments() {
			ids[ref.Attachment.ID] = struct{}{}
		}
	}
	return ids
}

// remoteAttachments indexes the attachment files of a listing by name.
func remoteAttachments(files []models.RemoteFile) map[string]models.RemoteFile {
	byName := make(map[string]models.RemoteFile)
	for _, file := range files {
		if file.Kind.IsAttachment() {
			byName[file.Name] = file
		}
	}
	return byName
}

// orphanedAttachments returns every attachment file of a listing whose name
// is not in local. Files sharing a name under different kinds are all kept.
func orphanedAttachments(files []models.RemoteFile, local map[string]struct{}) []models.RemoteFile {
	var orphans []models.RemoteFile
	for _, file := range files {
		if !file.Kind.IsAttachment() {
			continue
		}
		if _, ok := local[file.Name]; !ok {
			orphans = append(orphans, file)
		}
	}
	return orphans
}

// remoteSnapshots returns the notes snapshots of a listing in listing order.
func remoteSnapshots(files []models.RemoteFile) []models.RemoteFile {
	var snapshots []models.RemoteFile
	for _, file := range files {
		if file.Kind == models.NotesSnapshot {
			snapshots = append(snapshots, file)
		}
	}
	return snapshots
}
