// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

// SessionState is the recording lifecycle state owned by the session controller.
// There is no terminal state: a stopped session returns to Idle.
type SessionState string

const (
	StateIdle      SessionState = "idle"
	StateRecording SessionState = "recording"
	StatePaused    SessionState = "paused"
)

// IsActive reports whether a recording session exists (recording or paused).
func (s SessionState) IsActive() bool {
	return s == StateRecording || s == StatePaused
}

func (s SessionState) String() string {
	if s == "" {
		return "unknown"
	}
	return string(s)
}

// AllStates lists the session states in lifecycle order.
func AllStates() []SessionState {
	return []SessionState{StateIdle, StateRecording, StatePaused}
}
