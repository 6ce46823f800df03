// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncEventKind enumerates one-shot run outcomes.
type SyncEventKind int

const (
	BackupCompleted SyncEventKind = iota + 1
	BackupFailed
	RestoreCompleted
	RestoreFailed
)

func (k SyncEventKind) String() string {
	switch k {
	case BackupCompleted:
		return "backup_completed"
	case BackupFailed:
		return "backup_failed"
	case RestoreCompleted:
		return "restore_completed"
	case RestoreFailed:
		return "restore_failed"
	default:
		return "unknown"
	}
}

// SyncEvent is a fire-once notification about the outcome of a run.
// Unlike SyncState it is never replayed to late subscribers.
type SyncEvent struct {
	Kind SyncEventKind
	Err  error
	At   time.Time
}
