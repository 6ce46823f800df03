// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SnapshotFormatVersion is the current version of the notes snapshot
// document.
const SnapshotFormatVersion = 1

// SnapshotDocument is the payload of a NotesSnapshot object: every note's
// metadata at the time of upload, without attachment bytes.
type SnapshotDocument struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Notes     []Note    `json:"notes"`
}
