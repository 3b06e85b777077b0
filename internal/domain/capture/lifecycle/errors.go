// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"errors"
	"fmt"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
)

var (
	// ErrIllegalTransition classifies every rejected state-machine edge.
	ErrIllegalTransition = errors.New("illegal transition")

	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
	ErrNotPaused        = errors.New("not paused")
)

// TransitionError reports a rejected event. It matches both
// ErrIllegalTransition and its specific Kind under errors.Is.
type TransitionError struct {
	From  model.SessionState
	Event EventKind
	Kind  error
}

func (e *TransitionError) Error() string {
	kind := "unknown reason"
	if e.Kind != nil {
		kind = e.Kind.Error()
	}
	return fmt.Sprintf("illegal transition: %s + %s: %s", e.From, e.Event, kind)
}

func (e *TransitionError) Unwrap() []error {
	if e.Kind == nil {
		return []error{ErrIllegalTransition}
	}
	return []error{ErrIllegalTransition, e.Kind}
}

// Code returns a stable machine-readable code for the failure kind.
func (e *TransitionError) Code() string {
	switch {
	case errors.Is(e.Kind, ErrAlreadyRecording):
		return "ALREADY_RECORDING"
	case errors.Is(e.Kind, ErrNotRecording):
		return "NOT_RECORDING"
	case errors.Is(e.Kind, ErrNotPaused):
		return "NOT_PAUSED"
	default:
		return "ILLEGAL_TRANSITION"
	}
}
