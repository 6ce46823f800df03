// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote backup container and probing network reachability.
//
// The primary abstraction is [RemoteStore], which decouples the service layer
// from the underlying object storage. The package ships an S3 implementation
// ([NewS3RemoteStore]) that works with AWS S3 and S3-compatible services such
// as MinIO.
//
// Error values defined in errors.go are mapped from S3 API error codes by
// mapS3Error so that callers can use [errors.Is] for storage-agnostic error
// handling (e.g. [ErrNotFound] for NoSuchKey, [ErrUnauthorized] for
// AccessDenied).
package adapter

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Object describes one object in the remote container. Key is relative to
// the configured key prefix.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// UploadRequest carries one object to be written to the remote container.
type UploadRequest struct {
	// Key is the object key relative to the configured prefix.
	Key string
	// Body is read until EOF.
	Body io.Reader
	// Size is the body length in bytes, or -1 when unknown.
	Size int64
	// ContentType is detected from the body when empty.
	ContentType string
}

// RemoteStore defines storage-agnostic access to the backup container.
// Implementations are responsible for key prefixing, request pacing and
// mapping transport-level errors to the sentinel values defined in this
// package.
type RemoteStore interface {
	// List returns every object stored under the configured prefix. The
	// listing is complete or the call fails; partial listings are never
	// returned.
	List(ctx context.Context) ([]Object, error)

	// Upload writes req.Body to req.Key, replacing any existing object.
	Upload(ctx context.Context, req UploadRequest) error

	// Download streams the object stored at key into dst. Returns
	// [ErrNotFound] (wrapped) if the object does not exist.
	Download(ctx context.Context, key string, dst io.Writer) error

	// Delete removes all objects identified by keys. Deleting a missing key
	// is not an error. An empty keys slice performs no request.
	Delete(ctx context.Context, keys []string) error

	// SetLastSyncTime records t as the moment of the latest successful
	// backup or restore.
	SetLastSyncTime(ctx context.Context, t time.Time) error

	// LastSyncTime returns the recorded moment of the latest successful
	// run, or the zero time if none was recorded yet.
	LastSyncTime(ctx context.Context) (time.Time, error)
}

// ConnectivityProbe reports whether the remote container is reachable over
// the network.
type ConnectivityProbe interface {
	// HasNetwork returns false when the probe target cannot be reached
	// within the probe timeout.
	HasNetwork(ctx context.Context) bool
}
