package service

import "errors"

// Run phase errors. The error returned by a failed run wraps exactly one of
// them together with the cause.
var (
	ErrListRemote       = errors.New("list remote content")
	ErrReadLocal        = errors.New("read local notes")
	ErrPrune            = errors.New("prune remote attachments")
	ErrUploadSnapshot   = errors.New("upload notes snapshot")
	ErrUploadAttachment = errors.New("upload attachment")

	ErrNoNetwork           = errors.New("no network connection")
	ErrDownloadSnapshot    = errors.New("download notes snapshot")
	ErrDecodeSnapshot      = errors.New("decode notes snapshot")
	ErrAllocateDestination = errors.New("allocate attachment destination")
	ErrDownloadAttachment  = errors.New("download attachment")
	ErrUpsertNote          = errors.New("upsert note")
)

// Non-fatal conditions reported to the error tracker only.
var (
	ErrSnapshotCleanup           = errors.New("delete outdated notes snapshots")
	ErrPersistLastSyncTime       = errors.New("persist last sync time")
	ErrAttachmentMissingRemotely = errors.New("attachment missing remotely")
	ErrAttachmentMissingLocally  = errors.New("attachment missing locally")
)

var (
	ErrUnsupportedSnapshotVersion = errors.New("unsupported notes snapshot version")
	ErrBackupInProgress           = errors.New("backup already in progress")
)
