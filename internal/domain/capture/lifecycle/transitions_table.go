// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "github.com/ManuGH/capctl/internal/domain/capture/model"

// Transition is a single allowed edge in the lifecycle state machine.
type Transition struct {
	From  model.SessionState
	To    model.SessionState
	Event EventKind
}

var transitionsTable = []Transition{
	{From: model.StateIdle, To: model.StateRecording, Event: EvStartRequested},

	{From: model.StateRecording, To: model.StatePaused, Event: EvPauseRequested},
	{From: model.StatePaused, To: model.StateRecording, Event: EvResumeRequested},

	{From: model.StateRecording, To: model.StateIdle, Event: EvStopRequested},
	{From: model.StatePaused, To: model.StateIdle, Event: EvStopRequested},
}

// TransitionFor returns the allowed transition for a given state+event.
func TransitionFor(from model.SessionState, ev EventKind) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Event == ev {
			return tr, true
		}
	}
	return Transition{}, false
}
