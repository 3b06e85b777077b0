// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "github.com/ManuGH/capctl/internal/domain/capture/model"

// EventKind is a domain event in the recording lifecycle.
type EventKind int

const (
	EvUnknown EventKind = iota
	EvStartRequested
	EvStopRequested
	EvPauseRequested
	EvResumeRequested
)

func (e EventKind) String() string {
	switch e {
	case EvStartRequested:
		return "start_requested"
	case EvStopRequested:
		return "stop_requested"
	case EvPauseRequested:
		return "pause_requested"
	case EvResumeRequested:
		return "resume_requested"
	default:
		return "unknown"
	}
}

// Event carries optional domain metadata for a transition.
type Event struct {
	Kind EventKind
	// SessionID is assigned to the record when a start is committed.
	SessionID string
}

// EventFor maps a recording action onto its lifecycle event.
func EventFor(a model.Action) (EventKind, bool) {
	switch a {
	case model.ActionStartRecording:
		return EvStartRequested, true
	case model.ActionStopRecording:
		return EvStopRequested, true
	case model.ActionPauseRecording:
		return EvPauseRequested, true
	case model.ActionResumeRecording:
		return EvResumeRequested, true
	default:
		return EvUnknown, false
	}
}
