package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-journal-backup/internal/service"
	"github.com/MKhiriev/go-journal-backup/models"
)

const barWidth = 20

// lineRenderer prints one line per state change. Repeated states are
// printed once.
type lineRenderer struct {
	mu   sync.Mutex
	out  io.Writer
	last map[string]models.SyncState
}

func newLineRenderer(out io.Writer) *lineRenderer {
	return &lineRenderer{out: out, last: make(map[string]models.SyncState)}
}

func (r *lineRenderer) RenderState(run string, state models.SyncState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.last[run]; ok && prev == state {
		return
	}
	r.last[run] = state

	fmt.Fprintln(r.out, runStyle.Render(run+":")+" "+formatState(state))
}

func (r *lineRenderer) RenderEvent(event models.SyncEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.out, formatEvent(event))
}

func formatState(state models.SyncState) string {
	switch state.Phase {
	case models.PhaseIdle:
		return helpStyle.Render("idle")
	case models.PhaseStarting:
		return progressStyle.Render("starting")
	case models.PhaseProgress:
		return progressStyle.Render(progressBar(state.Synced, state.Total)) +
			fmt.Sprintf(" %d/%d notes", state.Synced, state.Total)
	case models.PhaseSuccess:
		return successStyle.Render("done")
	case models.PhaseFailure:
		return errorStyle.Render("failed")
	default:
		return state.String()
	}
}

func progressBar(synced, total int) string {
	filled := barWidth
	if total > 0 {
		filled = synced * barWidth / total
	}
	filled = min(max(filled, 0), barWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func formatEvent(event models.SyncEvent) string {
	at := event.At.Local().Format(time.DateTime)

	switch event.Kind {
	case models.BackupCompleted:
		return successStyle.Render("backup completed") + helpStyle.Render(" at "+at)
	case models.RestoreCompleted:
		return successStyle.Render("restore completed") + helpStyle.Render(" at "+at)
	case models.BackupFailed, models.RestoreFailed:
		msg := errorStyle.Render(strings.ReplaceAll(event.Kind.String(), "_", " "))
		if event.Err != nil {
			msg += fmt.Sprintf(" (%s): %v", service.FailureReason(event.Err), event.Err)
		}
		return msg
	default:
		return event.Kind.String()
	}
}

// formatLastSync renders the status command output.
func formatLastSync(t time.Time, now time.Time) string {
	if t.IsZero() {
		return runStyle.Render("last sync:") + " " + helpStyle.Render("never")
	}
	ago := now.Sub(t).Round(time.Second)
	return runStyle.Render("last sync:") + " " + t.Local().Format(time.DateTime) + helpStyle.Render(fmt.Sprintf(" (%s ago)", ago))
}
