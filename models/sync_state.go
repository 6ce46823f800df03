// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// SyncPhase is the discriminator of SyncState.
type SyncPhase int

const (
	// PhaseIdle is both the initial and the terminal resting state.
	PhaseIdle SyncPhase = iota
	// PhaseStarting is published right before the first network call of a run.
	PhaseStarting
	// PhaseProgress is published after each note of a run is processed.
	PhaseProgress
	// PhaseSuccess is published by restore once every note is merged.
	PhaseSuccess
	// PhaseFailure is published when a run aborts.
	PhaseFailure
)

// SyncState is the observable status of a backup or restore run.
// Synced and Total carry data only when Phase is PhaseProgress; the
// constructors below are the only supported way to build a value.
type SyncState struct {
	Phase  SyncPhase
	Synced int
	Total  int
}

// IdleState returns the resting state.
func IdleState() SyncState { return SyncState{Phase: PhaseIdle} }

// StartingState returns the state published when a run begins.
func StartingState() SyncState { return SyncState{Phase: PhaseStarting} }

// ProgressState returns a progress state with synced out of total notes done.
func ProgressState(synced, total int) SyncState {
	return SyncState{Phase: PhaseProgress, Synced: synced, Total: total}
}

// SuccessState returns the state published by a completed restore.
func SuccessState() SyncState { return SyncState{Phase: PhaseSuccess} }

// FailureState returns the state published by an aborted run.
func FailureState() SyncState { return SyncState{Phase: PhaseFailure} }

// IsRunning reports whether a run is in flight.
func (s SyncState) IsRunning() bool {
	return s.Phase == PhaseStarting || s.Phase == PhaseProgress
}

func (s SyncState) String() string {
	switch s.Phase {
	case PhaseIdle:
		return "idle"
	case PhaseStarting:
		return "starting"
	case PhaseProgress:
		return fmt.Sprintf("progress(%d/%d)", s.Synced, s.Total)
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}
