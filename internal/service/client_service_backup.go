// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-journal-backup/internal/adapter"
	"github.com/MKhiriev/go-journal-backup/internal/logger"
	"github.com/MKhiriev/go-journal-backup/internal/store"
	"github.com/MKhiriev/go-journal-backup/internal/utils"
	"github.com/MKhiriev/go-journal-backup/models"
)

const snapshotContentType = "application/json"

var runIDs = utils.NewUUIDGenerator()

type backupService struct {
	index       RemoteContentIndex
	reader      LocalSnapshotReader
	codec       SnapshotCodec
	remote      adapter.RemoteStore
	attachments store.AttachmentStorage
	tracker     ErrorTracker
	state       StatePublisher

	now   func() time.Time
	newID func() string
}

// NewBackupService wires a backup orchestrator. Snapshot names come from
// newID, which must produce unique values.
func NewBackupService(
	index RemoteContentIndex,
	reader LocalSnapshotReader,
	codec SnapshotCodec,
	remote adapter.RemoteStore,
	attachments store.AttachmentStorage,
	tracker ErrorTracker,
	newID func() string,
) BackupService {
	return &backupService{
		index:       index,
		reader:      reader,
		codec:       codec,
		remote:      remote,
		attachments: attachments,
		tracker:     tracker,
		state:       NewStatePublisher("backup"),
		now:         time.Now,
		newID:       newID,
	}
}

func (s *backupService) State() StatePublisher {
	return s.state
}

func (s *backupService) RunBackup(ctx context.Context) error {
	ctx = utils.WithRunID(ctx, runIDs.Generate())
	log := logger.FromContext(ctx)

	s.state.Publish(models.StartingState())

	if err := s.run(ctx); err != nil {
		return s.fail(ctx, err)
	}

	if err := s.remote.SetLastSyncTime(ctx, s.now()); err != nil {
		s.track(ctx, fmt.Errorf("%w: %w", ErrPersistLastSyncTime, err), "set_last_sync_time")
	}

	s.state.Publish(models.IdleState())
	s.state.Emit(ctx, models.SyncEvent{Kind: models.BackupCompleted, At: s.now()})

	log.Info().Str("func", "backupService.RunBackup").Msg("backup completed")
	return nil
}

func (s *backupService) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	files, err := s.index.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListRemote, err)
	}

	notes, err := s.reader.ReadNotes(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadLocal, err)
	}

	orphans := orphanedAttachments(files, attachmentIDs(notes))
	if err = s.prune(ctx, orphans); err != nil {
		return err
	}

	remote := remoteAttachments(files)
	for _, file := range orphans {
		delete(remote, file.Name)
	}

	if err = s.uploadSnapshot(ctx, notes, remoteSnapshots(files)); err != nil {
		return err
	}

	total := len(notes)
	uploaded, skipped := 0, 0
	for i, note := range notes {
		for _, ref := range note.Attachments() {
			if _, ok := remote[ref.Attachment.ID]; ok {
				continue
			}
			err = s.uploadAttachment(ctx, ref)
			if errors.Is(err, store.ErrAttachmentNotFound) {
				s.track(ctx, fmt.Errorf("%w: %s of note %s: %w", ErrAttachmentMissingLocally, ref.Attachment.ID, note.ID, err), "backup_attachment")
				skipped++
				continue
			}
			if err != nil {
				return fmt.Errorf("%w %s of note %s: %w", ErrUploadAttachment, ref.Attachment.ID, note.ID, err)
			}
			remote[ref.Attachment.ID] = models.RemoteFile{
				ID:   KeyFor(ref.Kind, ref.Attachment.ID),
				Name: ref.Attachment.ID,
				Kind: ref.Kind,
			}
			uploaded++
		}
		s.state.Publish(models.ProgressState(i+1, total))
	}

	log.Debug().
		Str("func", "backupService.run").
		Int("notes", total).
		Int("uploaded_attachments", uploaded).
		Int("skipped_attachments", skipped).
		Msg("backup run finished")

	return nil
}

// prune deletes remote attachments no local note references anymore.
func (s *backupService) prune(ctx context.Context, orphans []models.RemoteFile) error {
	if len(orphans) == 0 {
		return nil
	}

	keys := make([]string, len(orphans))
	for i, file := range orphans {
		keys[i] = file.ID
	}

	if err := s.remote.Delete(ctx, keys); err != nil {
		return fmt.Errorf("%w: %w", ErrPrune, err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "backupService.prune").
		Int("deleted", len(keys)).
		Msg("orphaned remote attachments deleted")

	return nil
}

// uploadSnapshot writes a fresh snapshot and then removes the previous
// ones. Failing to remove old snapshots does not fail the run.
func (s *backupService) uploadSnapshot(ctx context.Context, notes []models.Note, previous []models.RemoteFile) error {
	data, err := s.codec.Encode(notes, s.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUploadSnapshot, err)
	}

	key := KeyFor(models.NotesSnapshot, s.newID())
	err = s.remote.Upload(ctx, adapter.UploadRequest{
		Key:         key,
		Body:        bytes.NewReader(data),
		Size:        int64(len(data)),
		ContentType: snapshotContentType,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUploadSnapshot, err)
	}

	var outdated []string
	for _, file := range previous {
		if file.ID != key {
			outdated = append(outdated, file.ID)
		}
	}
	if len(outdated) == 0 {
		return nil
	}

	if err = s.remote.Delete(ctx, outdated); err != nil {
		s.track(ctx, fmt.Errorf("%w: %w", ErrSnapshotCleanup, err), "delete_outdated_snapshots")
	}

	return nil
}

// uploadAttachment wraps store.ErrAttachmentNotFound when there is no local
// file to read.
func (s *backupService) uploadAttachment(ctx context.Context, ref models.AttachmentRef) error {
	body, size, err := s.attachments.Open(ref.Attachment.LocalPath)
	if err != nil {
		return fmt.Errorf("open local attachment: %w", err)
	}
	defer body.Close()

	return s.remote.Upload(ctx, adapter.UploadRequest{
		Key:  KeyFor(ref.Kind, ref.Attachment.ID),
		Body: body,
		Size: size,
	})
}

func (s *backupService) fail(ctx context.Context, err error) error {
	log := logger.FromContext(ctx)

	if isCancellation(ctx, err) {
		log.Info().Err(err).Str("func", "backupService.RunBackup").Msg("backup cancelled")
		s.state.Publish(models.IdleState())
		s.state.Emit(ctx, models.SyncEvent{Kind: models.BackupFailed, Err: err, At: s.now()})
		return err
	}

	log.Err(err).Str("func", "backupService.RunBackup").Msg("backup failed")
	s.track(ctx, err, "backup")
	s.state.Publish(models.FailureState())
	s.state.Emit(ctx, models.SyncEvent{Kind: models.BackupFailed, Err: err, At: s.now()})

	return err
}

func (s *backupService) track(ctx context.Context, err error, operation string) {
	trackRunError(ctx, s.tracker, err, operation)
}
