// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-journal-backup/internal/adapter"
	"github.com/MKhiriev/go-journal-backup/internal/logger"
	"github.com/MKhiriev/go-journal-backup/internal/store"
	"github.com/MKhiriev/go-journal-backup/internal/utils"
	"github.com/MKhiriev/go-journal-backup/models"
)

type restoreService struct {
	probe       adapter.ConnectivityProbe
	index       RemoteContentIndex
	reader      LocalSnapshotReader
	codec       SnapshotCodec
	remote      adapter.RemoteStore
	attachments store.AttachmentStorage
	notes       store.LocalNoteRepository
	tracker     ErrorTracker
	state       StatePublisher

	settleDelay time.Duration
	now         func() time.Time

	// mu makes the running check and the Starting publish one step.
	mu sync.Mutex
}

// NewRestoreService wires a restore orchestrator. After a successful run
// the Success state is kept for settleDelay before returning to Idle.
func NewRestoreService(
	probe adapter.ConnectivityProbe,
	index RemoteContentIndex,
	reader LocalSnapshotReader,
	codec SnapshotCodec,
	remote adapter.RemoteStore,
	storages *store.ClientStorages,
	tracker ErrorTracker,
	settleDelay time.Duration,
) RestoreService {
	return &restoreService{
		probe:       probe,
		index:       index,
		reader:      reader,
		codec:       codec,
		remote:      remote,
		attachments: storages.AttachmentStorage,
		notes:       storages.NoteRepository,
		tracker:     tracker,
		state:       NewStatePublisher("restore"),
		settleDelay: settleDelay,
		now:         time.Now,
	}
}

func (s *restoreService) State() StatePublisher {
	return s.state
}

func (s *restoreService) ClearFailureState() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Current().Phase == models.PhaseFailure {
		s.state.Publish(models.IdleState())
	}
}

func (s *restoreService) RunRestore(ctx context.Context) error {
	ctx = utils.WithRunID(ctx, runIDs.Generate())
	log := logger.FromContext(ctx)

	started, err := s.begin(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !started {
		log.Debug().Str("func", "restoreService.RunRestore").Msg("restore already running, skipping")
		return nil
	}

	restored, err := s.run(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !restored {
		s.state.Publish(models.IdleState())
		return nil
	}

	if err = s.remote.SetLastSyncTime(ctx, s.now()); err != nil {
		s.track(ctx, fmt.Errorf("%w: %w", ErrPersistLastSyncTime, err), "set_last_sync_time")
	}

	s.state.Publish(models.SuccessState())
	s.state.Emit(ctx, models.SyncEvent{Kind: models.RestoreCompleted, At: s.now()})
	log.Info().Str("func", "restoreService.RunRestore").Msg("restore completed")

	s.settle(ctx)
	s.state.Publish(models.IdleState())

	return nil
}

// begin publishes Starting unless a run is already active. With no network
// it returns ErrNoNetwork before any remote call. The probe runs outside mu
// so ClearFailureState never waits on it.
func (s *restoreService) begin(ctx context.Context) (bool, error) {
	if s.running() {
		return false, nil
	}

	if !s.probe.HasNetwork(ctx) {
		if s.running() {
			return false, nil
		}
		return false, ErrNoNetwork
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Current().IsRunning() {
		return false, nil
	}

	s.state.Publish(models.StartingState())
	return true, nil
}

func (s *restoreService) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Current().IsRunning()
}

// run reports false when there was nothing to restore.
func (s *restoreService) run(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)

	files, err := s.index.List(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrListRemote, err)
	}

	snapshot, ok := latestSnapshot(remoteSnapshots(files))
	if !ok {
		log.Info().Str("func", "restoreService.run").Msg("no notes snapshot found remotely")
		return false, nil
	}

	var buf bytes.Buffer
	if err = s.remote.Download(ctx, snapshot.ID, &buf); err != nil {
		return false, fmt.Errorf("%w %s: %w", ErrDownloadSnapshot, snapshot.ID, err)
	}

	remoteNotes, err := s.codec.Decode(buf.Bytes())
	if err != nil {
		return false, fmt.Errorf("%w %s: %w", ErrDecodeSnapshot, snapshot.ID, err)
	}
	if len(remoteNotes) == 0 {
		log.Info().Str("func", "restoreService.run").Str("snapshot", snapshot.ID).Msg("notes snapshot is empty")
		return false, nil
	}

	localNotes, err := s.reader.ReadNotes(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrReadLocal, err)
	}
	inventory, err := s.reader.AttachmentInventory(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrReadLocal, err)
	}

	known := make(map[string]struct{}, len(localNotes))
	for _, note := range localNotes {
		known[note.ID] = struct{}{}
	}

	remote := remoteAttachments(files)
	total := len(remoteNotes)
	created, downloaded := 0, 0
	for i, note := range remoteNotes {
		paths, n, err := s.syncAttachments(ctx, note, remote, inventory)
		if err != nil {
			return false, err
		}
		downloaded += n

		if err = s.notes.UpsertNote(ctx, note.WithAttachmentPaths(paths)); err != nil {
			return false, fmt.Errorf("%w %s: %w", ErrUpsertNote, note.ID, err)
		}
		if _, ok := known[note.ID]; !ok {
			created++
		}

		s.state.Publish(models.ProgressState(i+1, total))
	}

	log.Debug().
		Str("func", "restoreService.run").
		Str("snapshot", snapshot.ID).
		Int("notes", total).
		Int("new_notes", created).
		Int("downloaded_attachments", downloaded).
		Msg("restore run finished")

	return true, nil
}

// syncAttachments resolves a local path for every attachment of note,
// downloading the ones not present locally. inventory is updated in place.
func (s *restoreService) syncAttachments(
	ctx context.Context,
	note models.Note,
	remote map[string]models.RemoteFile,
	inventory map[string]string,
) (map[string]string, int, error) {
	paths := make(map[string]string)
	downloaded := 0

	for _, ref := range note.Attachments() {
		id := ref.Attachment.ID
		if path, ok := inventory[id]; ok {
			paths[id] = path
			continue
		}

		file, ok := remote[id]
		if !ok {
			s.track(ctx, fmt.Errorf("%w: %s of note %s", ErrAttachmentMissingRemotely, id, note.ID), "restore_attachment")
			continue
		}

		path, err := s.download(ctx, note.ID, file)
		if err != nil {
			return nil, downloaded, err
		}

		inventory[id] = path
		paths[id] = path
		downloaded++
	}

	return paths, downloaded, nil
}

func (s *restoreService) download(ctx context.Context, noteID string, file models.RemoteFile) (string, error) {
	path, err := s.attachments.AllocateDestination(ctx, noteID, file.Name)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrAllocateDestination, file.Name, err)
	}

	dst, err := s.attachments.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrAllocateDestination, file.Name, err)
	}

	err = s.remote.Download(ctx, file.ID, dst)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := s.attachments.Remove(path); rmErr != nil {
			logger.FromContext(ctx).Err(rmErr).
				Str("func", "restoreService.download").
				Str("path", path).
				Msg("failed to remove partially written attachment")
		}
		return "", fmt.Errorf("%w %s: %w", ErrDownloadAttachment, file.Name, err)
	}

	return path, nil
}

func (s *restoreService) settle(ctx context.Context) {
	if s.settleDelay <= 0 {
		return
	}

	t := time.NewTimer(s.settleDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (s *restoreService) fail(ctx context.Context, err error) error {
	log := logger.FromContext(ctx)

	if isCancellation(ctx, err) {
		log.Info().Err(err).Str("func", "restoreService.RunRestore").Msg("restore cancelled")
		s.state.Publish(models.IdleState())
		s.state.Emit(ctx, models.SyncEvent{Kind: models.RestoreFailed, Err: err, At: s.now()})
		return err
	}

	log.Err(err).Str("func", "restoreService.RunRestore").Msg("restore failed")
	s.track(ctx, err, "restore")
	s.state.Publish(models.FailureState())
	s.state.Emit(ctx, models.SyncEvent{Kind: models.RestoreFailed, Err: err, At: s.now()})

	return err
}

func (s *restoreService) track(ctx context.Context, err error, operation string) {
	trackRunError(ctx, s.tracker, err, operation)
}

// latestSnapshot picks the snapshot with the greatest CreatedAt. Equal
// timestamps are ordered by ID.
func latestSnapshot(snapshots []models.RemoteFile) (models.RemoteFile, bool) {
	if len(snapshots) == 0 {
		return models.RemoteFile{}, false
	}

	latest := snapshots[0]
	for _, s := range snapshots[1:] {
		if s.CreatedAt.After(latest.CreatedAt) || (s.CreatedAt.Equal(latest.CreatedAt) && s.ID > latest.ID) {
			latest = s
		}
	}

	return latest, true
}
