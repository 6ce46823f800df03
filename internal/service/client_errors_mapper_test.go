package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-journal-backup/internal/adapter"
	"github.com/MKhiriev/go-journal-backup/internal/store"
)

func TestFailureReason(t *testing.T) {
	wrap := func(phase, cause error) error { return fmt.Errorf("%w: %w", phase, cause) }

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "cancelled", err: wrap(ErrListRemote, context.Canceled), want: "cancelled"},
		{name: "deadline", err: wrap(ErrUploadSnapshot, context.DeadlineExceeded), want: "timeout"},
		{name: "no network", err: ErrNoNetwork, want: "no_network"},
		{name: "unauthorized", err: wrap(ErrListRemote, adapter.ErrUnauthorized), want: "unauthorized"},
		{name: "bucket", err: wrap(ErrListRemote, adapter.ErrBucketNotFound), want: "bucket_not_found"},
		{name: "remote not found", err: wrap(ErrDownloadSnapshot, adapter.ErrNotFound), want: "remote_not_found"},
		{name: "remote error", err: wrap(ErrPrune, adapter.ErrRemote), want: "remote_error"},
		{name: "local file", err: wrap(ErrUploadAttachment, store.ErrAttachmentNotFound), want: "local_attachment_missing"},
		{name: "skipped local file", err: ErrAttachmentMissingLocally, want: "local_attachment_missing"},
		{name: "decode", err: wrap(ErrDecodeSnapshot, errors.New("bad json")), want: "corrupted_snapshot"},
		{name: "version", err: ErrUnsupportedSnapshotVersion, want: "corrupted_snapshot"},
		{name: "upsert", err: wrap(ErrUpsertNote, store.ErrNoteNotSaved), want: "local_storage"},
		{name: "other", err: errors.New("boom"), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FailureReason(tt.err))
		})
	}
}

func TestIsCancellation(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()

	assert.True(t, isCancellation(context.Background(), wrapPhase(ErrListRemote, context.Canceled)))
	assert.True(t, isCancellation(cancelled, errors.New("aborted read")))
	assert.False(t, isCancellation(expired, wrapPhase(ErrListRemote, context.DeadlineExceeded)))
	assert.False(t, isCancellation(context.Background(), adapter.ErrRemote))
}

func wrapPhase(phase, cause error) error { return fmt.Errorf("%w: %w", phase, cause) }
