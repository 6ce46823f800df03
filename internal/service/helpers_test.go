package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-journal-backup/internal/adapter"
	"github.com/MKhiriev/go-journal-backup/internal/store"
	"github.com/MKhiriev/go-journal-backup/models"
)

// ── fakeRemoteStore ───────────────────────────────────────────────────────────

type remoteObject struct {
	data     []byte
	modified time.Time
}

// fakeRemoteStore is an in-memory remote container. Every upload advances
// its clock by one second so LastModified values are distinct.
type fakeRemoteStore struct {
	mu       sync.Mutex
	objects  map[string]remoteObject
	clock    time.Time
	lastSync time.Time

	lists     int
	uploads   []string
	downloads []string
	deletes   [][]string

	listErr     error
	uploadErr   func(key string) error
	downloadErr func(key string) error
	deleteErr   func(keys []string) error
	syncErr     error
}

func newFakeRemoteStore() *fakeRemoteStore {
	return &fakeRemoteStore{
		objects: make(map[string]remoteObject),
		clock:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRemoteStore) put(key string, data []byte, modified time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = remoteObject{data: data, modified: modified}
}

func (f *fakeRemoteStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

func (f *fakeRemoteStore) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.objects))
	for k := range f.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (f *fakeRemoteStore) List(_ context.Context) ([]adapter.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]adapter.Object, 0, len(f.objects))
	for k, o := range f.objects {
		out = append(out, adapter.Object{Key: k, Size: int64(len(o.data)), LastModified: o.modified})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (f *fakeRemoteStore) Upload(_ context.Context, req adapter.UploadRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, req.Key)
	if f.uploadErr != nil {
		if err := f.uploadErr(req.Key); err != nil {
			return err
		}
	}

	data, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	f.clock = f.clock.Add(time.Second)
	f.objects[req.Key] = remoteObject{data: data, modified: f.clock}
	return nil
}

func (f *fakeRemoteStore) Download(_ context.Context, key string, dst io.Writer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads = append(f.downloads, key)
	if f.downloadErr != nil {
		if err := f.downloadErr(key); err != nil {
			return err
		}
	}

	o, ok := f.objects[key]
	if !ok {
		return adapter.ErrNotFound
	}
	_, err := dst.Write(o.data)
	return err
}

func (f *fakeRemoteStore) Delete(_ context.Context, keys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, append([]string(nil), keys...))
	if f.deleteErr != nil {
		if err := f.deleteErr(keys); err != nil {
			return err
		}
	}

	for _, k := range keys {
		delete(f.objects, k)
	}
	return nil
}

func (f *fakeRemoteStore) SetLastSyncTime(_ context.Context, t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.syncErr != nil {
		return f.syncErr
	}
	f.lastSync = t
	return nil
}

func (f *fakeRemoteStore) LastSyncTime(_ context.Context) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSync, nil
}

// ── fakeNoteRepository ────────────────────────────────────────────────────────

type fakeNoteRepository struct {
	mu      sync.Mutex
	notes   []models.Note
	upserts []models.Note

	getErr    error
	upsertErr func(note models.Note) error
}

func (r *fakeNoteRepository) GetAllNotes(_ context.Context) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	return append([]models.Note(nil), r.notes...), nil
}

func (r *fakeNoteRepository) UpsertNote(_ context.Context, note models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts = append(r.upserts, note)
	if r.upsertErr != nil {
		if err := r.upsertErr(note); err != nil {
			return err
		}
	}

	for i, n := range r.notes {
		if n.ID == note.ID {
			r.notes[i] = note
			return nil
		}
	}
	r.notes = append(r.notes, note)
	return nil
}

func (r *fakeNoteRepository) byID(id string) (models.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// ── stubTracker ───────────────────────────────────────────────────────────────

type trackedError struct {
	err    error
	fields map[string]string
}

type stubTracker struct {
	mu      sync.Mutex
	tracked []trackedError
}

func (t *stubTracker) Track(_ context.Context, err error, fields map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tracked = append(t.tracked, trackedError{err: err, fields: fields})
}

func (t *stubTracker) errors() []error {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]error, len(t.tracked))
	for i, te := range t.tracked {
		out[i] = te.err
	}
	return out
}

// ── recordingPublisher ────────────────────────────────────────────────────────

// recordingPublisher keeps every published state and emitted event.
type recordingPublisher struct {
	StatePublisher

	mu      sync.Mutex
	history []models.SyncState
	emitted []models.SyncEvent
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{StatePublisher: NewStatePublisher("test")}
}

func (p *recordingPublisher) Publish(state models.SyncState) {
	p.mu.Lock()
	p.history = append(p.history, state)
	p.mu.Unlock()
	p.StatePublisher.Publish(state)
}

func (p *recordingPublisher) Emit(ctx context.Context, event models.SyncEvent) {
	p.mu.Lock()
	p.emitted = append(p.emitted, event)
	p.mu.Unlock()
	p.StatePublisher.Emit(ctx, event)
}

func (p *recordingPublisher) states() []models.SyncState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.SyncState(nil), p.history...)
}

func (p *recordingPublisher) events() []models.SyncEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.SyncEvent(nil), p.emitted...)
}

// ── fixtures ──────────────────────────────────────────────────────────────────

type fixture struct {
	remote      *fakeRemoteStore
	notes       *fakeNoteRepository
	attachments store.AttachmentStorage
	storages    *store.ClientStorages
	tracker     *stubTracker
}

func newFixture() *fixture {
	notes := &fakeNoteRepository{}
	attachments := store.NewAttachmentStorageFS(memfs.New())

	return &fixture{
		remote:      newFakeRemoteStore(),
		notes:       notes,
		attachments: attachments,
		storages:    &store.ClientStorages{NoteRepository: notes, AttachmentStorage: attachments},
		tracker:     &stubTracker{},
	}
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func (f *fixture) backup() (*backupService, *recordingPublisher) {
	svc := NewBackupService(
		NewRemoteContentIndex(f.remote),
		NewLocalSnapshotReader(f.storages),
		NewJSONSnapshotCodec(),
		f.remote,
		f.attachments,
		f.tracker,
		sequentialIDs("snap"),
	).(*backupService)

	rec := newRecordingPublisher()
	svc.state = rec
	return svc, rec
}

func (f *fixture) restore(probe adapter.ConnectivityProbe) (*restoreService, *recordingPublisher) {
	svc := NewRestoreService(
		probe,
		NewRemoteContentIndex(f.remote),
		NewLocalSnapshotReader(f.storages),
		NewJSONSnapshotCodec(),
		f.remote,
		f.storages,
		f.tracker,
		0,
	).(*restoreService)

	rec := newRecordingPublisher()
	svc.state = rec
	return svc, rec
}

// writeAttachment stores data as attachmentID of noteID in the local
// attachment storage and returns its path.
func (f *fixture) writeAttachment(t *testing.T, noteID, attachmentID string, data []byte) string {
	t.Helper()
	path, err := f.attachments.AllocateDestination(context.Background(), noteID, attachmentID)
	require.NoError(t, err)
	w, err := f.attachments.Create(path)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

func (f *fixture) readAttachment(t *testing.T, path string) []byte {
	t.Helper()
	r, _, err := f.attachments.Open(path)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return data
}

// putSnapshot stores an encoded snapshot of notes under name.
func (f *fixture) putSnapshot(t *testing.T, name string, modified time.Time, notes ...models.Note) string {
	t.Helper()
	data, err := NewJSONSnapshotCodec().Encode(notes, modified)
	require.NoError(t, err)
	key := KeyFor(models.NotesSnapshot, name)
	f.remote.put(key, data, modified)
	return key
}

type staticProbe bool

func (p staticProbe) HasNetwork(context.Context) bool { return bool(p) }

func textNote(id string, ts int64) models.Note {
	return models.Note{
		ID:        id,
		Timestamp: time.UnixMilli(ts).UTC(),
		Content:   []models.ContentBlock{{Type: models.TitleBlock, Text: "note " + id}},
	}
}

// mediaNote builds a note with one voice recording and the given images.
// Paths are left empty.
func mediaNote(id string, ts int64, voiceID string, imageIDs ...string) models.Note {
	note := textNote(id, ts)
	if len(imageIDs) > 0 {
		items := make([]models.MediaItem, len(imageIDs))
		for i, img := range imageIDs {
			items[i] = models.MediaItem{Kind: models.Image, Attachment: models.Attachment{ID: img}}
		}
		note.Content = append(note.Content, models.ContentBlock{Type: models.MediaBlock, Media: items})
	}
	if voiceID != "" {
		note.Content = append(note.Content, models.ContentBlock{Type: models.VoiceBlock, Voice: &models.Attachment{ID: voiceID}})
	}
	return note
}

// localMediaNote is mediaNote with every attachment written to local
// storage.
func (f *fixture) localMediaNote(t *testing.T, id string, ts int64, voiceID string, imageIDs ...string) models.Note {
	t.Helper()
	note := mediaNote(id, ts, voiceID, imageIDs...)
	paths := make(map[string]string)
	for _, ref := range note.Attachments() {
		paths[ref.Attachment.ID] = f.writeAttachment(t, id, ref.Attachment.ID, []byte("bytes of "+ref.Attachment.ID))
	}
	return note.WithAttachmentPaths(paths)
}

func downloadsOf(keys []string, kind models.RemoteFileKind) int {
	n := 0
	for _, k := range keys {
		if got, _, ok := parseKey(k); ok && got == kind {
			n++
		}
	}
	return n
}
