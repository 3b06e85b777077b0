// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"errors"
	"testing"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/stretchr/testify/require"
)

var allEvents = []EventKind{
	EvStartRequested,
	EvStopRequested,
	EvPauseRequested,
	EvResumeRequested,
}

func TestTransitionTable_Coverage(t *testing.T) {
	allowedEdges := map[model.SessionState]map[EventKind]struct{}{}
	for _, tr := range transitionsTable {
		if _, ok := allowedEdges[tr.From]; !ok {
			allowedEdges[tr.From] = map[EventKind]struct{}{}
		}
		if _, exists := allowedEdges[tr.From][tr.Event]; exists {
			t.Fatalf("duplicate transition: %s + %v", tr.From, tr.Event)
		}
		allowedEdges[tr.From][tr.Event] = struct{}{}
	}

	for _, state := range model.AllStates() {
		for _, ev := range allEvents {
			decision, ok := DecisionFor(state, ev)
			require.True(t, ok, "missing decision for %s + %v", state, ev)
			if _, ok := allowedEdges[state][ev]; ok {
				require.True(t, decision.Allowed, "allowed transition must be marked allowed for %s + %v", state, ev)
				continue
			}
			require.False(t, decision.Allowed, "forbidden transition must be marked forbidden for %s + %v", state, ev)
			require.Error(t, decision.Reason, "forbidden transition must have reason for %s + %v", state, ev)
		}
	}
}

func TestTransitionTable_ForbiddenReasons(t *testing.T) {
	tests := []struct {
		from model.SessionState
		ev   EventKind
		want error
	}{
		{model.StateRecording, EvStartRequested, ErrAlreadyRecording},
		{model.StatePaused, EvStartRequested, ErrAlreadyRecording},
		{model.StateIdle, EvStopRequested, ErrNotRecording},
		{model.StateIdle, EvPauseRequested, ErrNotRecording},
		{model.StatePaused, EvPauseRequested, ErrNotRecording},
		{model.StateIdle, EvResumeRequested, ErrNotPaused},
		{model.StateRecording, EvResumeRequested, ErrNotPaused},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.ev.String(), func(t *testing.T) {
			decision, ok := DecisionFor(tt.from, tt.ev)
			require.True(t, ok)
			require.False(t, decision.Allowed)
			require.True(t, errors.Is(decision.Reason, tt.want), "got %v", decision.Reason)
		})
	}
}

func TestEventFor_OnlyRecordingActions(t *testing.T) {
	for _, a := range model.AllActions() {
		_, ok := EventFor(a)
		require.Equal(t, a.IsRecordingAction(), ok, a.String())
	}
}
