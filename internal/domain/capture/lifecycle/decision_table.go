// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "github.com/ManuGH/capctl/internal/domain/capture/model"

// Decision records whether a transition is allowed and, if not, which
// illegal-transition error the caller receives.
type Decision struct {
	Allowed bool
	Reason  error
}

func allowed() Decision       { return Decision{Allowed: true} }
func forbid(r error) Decision { return Decision{Allowed: false, Reason: r} }

// decisionTable defines an explicit decision for every State×Event combination.
var decisionTable = map[model.SessionState]map[EventKind]Decision{
	model.StateIdle: {
		EvStartRequested:  allowed(),
		EvStopRequested:   forbid(ErrNotRecording),
		EvPauseRequested:  forbid(ErrNotRecording),
		EvResumeRequested: forbid(ErrNotPaused),
	},
	model.StateRecording: {
		EvStartRequested:  forbid(ErrAlreadyRecording),
		EvStopRequested:   allowed(),
		EvPauseRequested:  allowed(),
		EvResumeRequested: forbid(ErrNotPaused),
	},
	model.StatePaused: {
		EvStartRequested:  forbid(ErrAlreadyRecording),
		EvStopRequested:   allowed(),
		EvPauseRequested:  forbid(ErrNotRecording),
		EvResumeRequested: allowed(),
	},
}

// DecisionFor returns the explicit decision for state+event.
func DecisionFor(state model.SessionState, ev EventKind) (Decision, bool) {
	events, ok := decisionTable[state]
	if !ok {
		return Decision{}, false
	}
	d, ok := events[ev]
	return d, ok
}
