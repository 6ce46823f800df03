// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-journal-backup/internal/adapter"
	"github.com/MKhiriev/go-journal-backup/internal/store"
)

// failureReason reduces a run error to a short stable label used in tracked
// error fields and in the CLI outcome line.
func failureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrNoNetwork):
		return "no_network"
	case errors.Is(err, adapter.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, adapter.ErrBucketNotFound):
		return "bucket_not_found"
	case errors.Is(err, adapter.ErrNotFound), errors.Is(err, ErrAttachmentMissingRemotely):
		return "remote_not_found"
	case errors.Is(err, adapter.ErrRemote):
		return "remote_error"
	case errors.Is(err, store.ErrAttachmentNotFound), errors.Is(err, ErrAttachmentMissingLocally):
		return "local_attachment_missing"
	case errors.Is(err, ErrDecodeSnapshot), errors.Is(err, ErrUnsupportedSnapshotVersion):
		return "corrupted_snapshot"
	case errors.Is(err, ErrReadLocal), errors.Is(err, ErrUpsertNote), errors.Is(err, ErrAllocateDestination):
		return "local_storage"
	default:
		return "unknown"
	}
}

// FailureReason is the exported form of the run error label.
func FailureReason(err error) string {
	return failureReason(err)
}

// isCancellation reports whether a run stopped because its caller cancelled
// it. A deadline is a failure, not a cancellation.
func isCancellation(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)
}
