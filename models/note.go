// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BlockType defines the semantic type of a single content block of a Note.
// The value determines which ContentBlock fields are meaningful.
type BlockType int

const (
	// TitleBlock carries the note heading in ContentBlock.Text.
	TitleBlock BlockType = 1

	// MediaBlock carries an ordered list of images and videos in
	// ContentBlock.Media.
	MediaBlock BlockType = 2

	// VoiceBlock carries one voice recording in ContentBlock.Voice.
	VoiceBlock BlockType = 3
)

// MediaKind distinguishes the items of a MediaBlock.
type MediaKind int

const (
	// Image is a still picture attached to a note.
	Image MediaKind = 1

	// Video is a video clip attached to a note.
	Video MediaKind = 2
)

// Attachment is a reference to a binary file owned by a note.
type Attachment struct {
	// ID is the attachment identifier. It is the only join key between a
	// local attachment and its remote copy: the remote object name equals ID.
	ID string `json:"id"`

	// LocalPath is the location of the attachment file inside the local
	// attachment storage. Empty when the file is not available locally.
	// Never serialized into a notes snapshot.
	LocalPath string `json:"-"`
}

// MediaItem is a single image or video inside a MediaBlock.
type MediaItem struct {
	Kind       MediaKind  `json:"kind"`
	Attachment Attachment `json:"attachment"`
}

// ContentBlock is one ordered element of a note body.
type ContentBlock struct {
	Type BlockType `json:"type"`

	// Text is set for TitleBlock.
	Text string `json:"text,omitempty"`

	// Media is set for MediaBlock.
	Media []MediaItem `json:"media,omitempty"`

	// Voice is set for VoiceBlock.
	Voice *Attachment `json:"voice,omitempty"`
}

// Note is a journal entry as kept by the local note store.
type Note struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Tags      []string       `json:"tags,omitempty"`
	Content   []ContentBlock `json:"content"`
}

// AttachmentRef points to one attachment of a note together with the remote
// kind it is stored under.
type AttachmentRef struct {
	Kind       RemoteFileKind
	Attachment Attachment
}

// Attachments returns every attachment of the note in transfer order:
// voice recordings first (in block order), then images and videos in
// MediaBlock order.
func (n Note) Attachments() []AttachmentRef {
	var voices, media []AttachmentRef

	for _, block := range n.Content {
		switch block.Type {
		case VoiceBlock:
			if block.Voice != nil && block.Voice.ID != "" {
				voices = append(voices, AttachmentRef{Kind: VoiceFile, Attachment: *block.Voice})
			}
		case MediaBlock:
			for _, item := range block.Media {
				if item.Attachment.ID == "" {
					continue
				}
				media = append(media, AttachmentRef{Kind: item.Kind.RemoteKind(), Attachment: item.Attachment})
			}
		case TitleBlock:
		}
	}

	return append(voices, media...)
}

// WithAttachmentPaths returns a copy of the note where every attachment
// whose ID is a key of paths gets the mapped LocalPath. Attachments absent
// from paths keep their current path.
func (n Note) WithAttachmentPaths(paths map[string]string) Note {
	out := n
	out.Tags = append([]string(nil), n.Tags...)
	out.Content = make([]ContentBlock, len(n.Content))

	for i, block := range n.Content {
		cp := block
		if block.Voice != nil {
			voice := *block.Voice
			if p, ok := paths[voice.ID]; ok {
				voice.LocalPath = p
			}
			cp.Voice = &voice
		}
		if block.Media != nil {
			cp.Media = make([]MediaItem, len(block.Media))
			for j, item := range block.Media {
				if p, ok := paths[item.Attachment.ID]; ok {
					item.Attachment.LocalPath = p
				}
				cp.Media[j] = item
			}
		}
		out.Content[i] = cp
	}

	return out
}

// RemoteKind maps a media kind onto the remote file kind it is stored as.
func (k MediaKind) RemoteKind() RemoteFileKind {
	if k == Video {
		return VideoFile
	}
	return ImageFile
}
