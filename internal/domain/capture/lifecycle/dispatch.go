// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"time"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
)

// Applied describes a committed transition.
type Applied struct {
	Transition
	SessionID string
	// Recorded is the captured duration at commit time; set on stop.
	Recorded time.Duration
}

// Dispatch resolves the transition for ev and applies it to rec.
// A rejected event returns a *TransitionError and leaves rec untouched.
func Dispatch(rec *model.SessionRecord, ev Event, now time.Time) (Applied, error) {
	decision, ok := DecisionFor(rec.State, ev.Kind)
	if !ok || !decision.Allowed {
		return Applied{}, &TransitionError{From: rec.State, Event: ev.Kind, Kind: decision.Reason}
	}
	tr, ok := TransitionFor(rec.State, ev.Kind)
	if !ok {
		return Applied{}, &TransitionError{From: rec.State, Event: ev.Kind}
	}
	return ApplyTransition(rec, tr, ev, now), nil
}
