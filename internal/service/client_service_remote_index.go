package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-journal-backup/internal/adapter"
	"github.com/MKhiriev/go-journal-backup/internal/logger"
	"github.com/MKhiriev/go-journal-backup/models"
)

// Key layout of the remote container, relative to the configured prefix.
const (
	notesFolder  = "notes/"
	imagesFolder = "images/"
	videosFolder = "videos/"
	voicesFolder = "voices/"

	snapshotExt = ".json"
)

type remoteContentIndex struct {
	remote adapter.RemoteStore
}

func NewRemoteContentIndex(remote adapter.RemoteStore) RemoteContentIndex {
	return &remoteContentIndex{remote: remote}
}

func (i *remoteContentIndex) List(ctx context.Context) ([]models.RemoteFile, error) {
	log := logger.FromContext(ctx)

	objects, err := i.remote.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote objects: %w", err)
	}

	files := make([]models.RemoteFile, 0, len(objects))
	for _, obj := range objects {
		file, ok := classifyObject(obj)
		if !ok {
			log.Debug().Str("func", "remoteContentIndex.List").Str("key", obj.Key).Msg("skipping unrecognized remote object")
			continue
		}
		files = append(files, file)
	}

	log.Debug().
		Str("func", "remoteContentIndex.List").
		Int("objects", len(objects)).
		Int("files", len(files)).
		Msg("remote content listed")

	return files, nil
}

func classifyObject(obj adapter.Object) (models.RemoteFile, bool) {
	kind, name, ok := parseKey(obj.Key)
	if !ok {
		return models.RemoteFile{}, false
	}

	return models.RemoteFile{
		ID:        obj.Key,
		Name:      name,
		CreatedAt: obj.LastModified,
		Size:      obj.Size,
		Kind:      kind,
	}, true
}

func parseKey(key string) (models.RemoteFileKind, string, bool) {
	folder, name, found := strings.Cut(key, "/")
	if !found || name == "" || strings.Contains(name, "/") {
		return 0, "", false
	}

	switch folder + "/" {
	case notesFolder:
		name, ok := strings.CutSuffix(name, snapshotExt)
		if !ok || name == "" {
			return 0, "", false
		}
		return models.NotesSnapshot, name, true
	case imagesFolder:
		return models.ImageFile, name, true
	case videosFolder:
		return models.VideoFile, name, true
	case voicesFolder:
		return models.VoiceFile, name, true
	default:
		return 0, "", false
	}
}

// KeyFor returns the object key a file of kind with the given name is
// stored under.
func KeyFor(kind models.RemoteFileKind, name string) string {
	switch kind {
	case models.NotesSnapshot:
		return notesFolder + name + snapshotExt
	case models.ImageFile:
		return imagesFolder + name
	case models.VideoFile:
		return videosFolder + name
	case models.VoiceFile:
		return voicesFolder + name
	default:
		return name
	}
}
