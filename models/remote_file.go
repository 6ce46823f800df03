// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RemoteFileKind classifies an object stored in the remote backup container.
type RemoteFileKind int

const (
	// NotesSnapshot is a serialized export of all notes' metadata.
	NotesSnapshot RemoteFileKind = 1

	// ImageFile is an image attachment.
	ImageFile RemoteFileKind = 2

	// VideoFile is a video attachment.
	VideoFile RemoteFileKind = 3

	// VoiceFile is a voice recording attachment.
	VoiceFile RemoteFileKind = 4
)

// String returns the lower-case name of the kind, used in logs.
func (k RemoteFileKind) String() string {
	switch k {
	case NotesSnapshot:
		return "notes_snapshot"
	case ImageFile:
		return "image"
	case VideoFile:
		return "video"
	case VoiceFile:
		return "voice"
	default:
		return "unknown"
	}
}

// IsAttachment reports whether objects of this kind mirror a note attachment.
func (k RemoteFileKind) IsAttachment() bool {
	return k == ImageFile || k == VideoFile || k == VoiceFile
}

// RemoteFile is one classified object of the remote backup container.
// Values are read fresh at the start of every run and never cached.
type RemoteFile struct {
	// ID is the object key inside the container.
	ID string

	// Name is the cross-reference key: the attachment ID for attachment
	// kinds, the snapshot name for NotesSnapshot.
	Name string

	// CreatedAt is the time the object was written.
	CreatedAt time.Time

	// Size is the object size in bytes.
	Size int64

	Kind RemoteFileKind
}
