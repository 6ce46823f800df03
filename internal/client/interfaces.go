// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "github.com/MKhiriev/go-journal-backup/models"

// ProgressRenderer displays what a run is doing. Calls for one run come
// from a single goroutine.
type ProgressRenderer interface {
	// RenderState shows the latest state of the run identified by run
	// ("backup" or "restore").
	RenderState(run string, state models.SyncState)

	// RenderEvent shows a one-shot run outcome.
	RenderEvent(event models.SyncEvent)
}
