package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/MKhiriev/go-journal-backup/internal/logger"
)

// attachmentFileStorage keeps attachment files in a billy filesystem laid
// out as <noteID>/<attachmentID>. The file name is the attachment id, which
// makes the inventory a directory scan.
type attachmentFileStorage struct {
	fs billy.Filesystem
}

// NewAttachmentFileStorage returns an [AttachmentStorage] rooted at dir on
// the OS filesystem.
func NewAttachmentFileStorage(dir string) AttachmentStorage {
	return NewAttachmentStorageFS(osfs.New(dir))
}

// NewAttachmentStorageFS returns an [AttachmentStorage] on top of fs.
func NewAttachmentStorageFS(fs billy.Filesystem) AttachmentStorage {
	return &attachmentFileStorage{fs: fs}
}

func (a *attachmentFileStorage) AllocateDestination(ctx context.Context, noteID, attachmentID string) (string, error) {
	log := logger.FromContext(ctx)

	if !validPathElement(noteID) || !validPathElement(attachmentID) {
		return "", fmt.Errorf("%w: note %q attachment %q", ErrInvalidAttachmentPath, noteID, attachmentID)
	}

	if err := a.fs.MkdirAll(noteID, 0o755); err != nil {
		log.Err(err).Str("func", "attachmentFileStorage.AllocateDestination").Str("note_id", noteID).Msg("failed to create note directory")
		return "", fmt.Errorf("create note directory: %w", err)
	}

	return a.fs.Join(noteID, attachmentID), nil
}

func (a *attachmentFileStorage) Create(path string) (io.WriteCloser, error) {
	f, err := a.fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create attachment file: %w", err)
	}
	return f, nil
}

func (a *attachmentFileStorage) Open(path string) (io.ReadCloser, int64, error) {
	if path == "" {
		return nil, 0, ErrAttachmentNotFound
	}

	info, err := a.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", ErrAttachmentNotFound, path)
		}
		return nil, 0, fmt.Errorf("stat attachment file: %w", err)
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("%w: %s is a directory", ErrAttachmentNotFound, path)
	}

	f, err := a.fs.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open attachment file: %w", err)
	}

	return f, info.Size(), nil
}

func (a *attachmentFileStorage) Remove(path string) error {
	if err := a.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove attachment file: %w", err)
	}
	return nil
}

func (a *attachmentFileStorage) Inventory(ctx context.Context) (map[string]string, error) {
	log := logger.FromContext(ctx)

	inventory := make(map[string]string)

	noteDirs, err := a.fs.ReadDir("/")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return inventory, nil
		}
		log.Err(err).Str("func", "attachmentFileStorage.Inventory").Msg("failed to read attachment root")
		return nil, fmt.Errorf("read attachment root: %w", err)
	}

	for _, dir := range noteDirs {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if !dir.IsDir() {
			continue
		}

		files, err := a.fs.ReadDir(dir.Name())
		if err != nil {
			log.Err(err).Str("func", "attachmentFileStorage.Inventory").Str("note_id", dir.Name()).Msg("failed to read note directory")
			return nil, fmt.Errorf("read note directory %s: %w", dir.Name(), err)
		}

		for _, file := range files {
			if file.IsDir() {
				continue
			}
			inventory[file.Name()] = a.fs.Join(dir.Name(), file.Name())
		}
	}

	return inventory, nil
}

func validPathElement(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}
