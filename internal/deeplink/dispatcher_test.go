// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package deeplink

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ManuGH/capctl/internal/domain/capture/controller"
	"github.com/ManuGH/capctl/internal/domain/capture/lifecycle"
	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExecutor struct {
	mu    sync.Mutex
	calls []model.Action
	err   error
}

func (e *countingExecutor) Execute(_ context.Context, a model.Action) (model.ActionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, a)
	if e.err != nil {
		return model.ActionResult{}, e.err
	}
	return model.ActionResult{Status: model.StatusFor(a), Action: a}, nil
}

func TestDispatcher_StartTwice(t *testing.T) {
	ctx := context.Background()
	ctrl := controller.New(nil, nil)
	d := NewDispatcher(DefaultRegistry(), ctrl)

	out, err := d.Handle(ctx, "cap://start-recording")
	require.NoError(t, err)
	assert.True(t, out.Matched)
	assert.Equal(t, model.ActionStartRecording, out.Action)
	assert.Equal(t, model.StatusRecordingStarted, out.Result.Status)
	assert.Equal(t, model.StateRecording, ctrl.State())

	out, err = d.Handle(ctx, "cap://start-recording")
	require.Error(t, err)
	assert.True(t, out.Matched)
	assert.ErrorIs(t, err, lifecycle.ErrIllegalTransition)
	assert.ErrorIs(t, err, lifecycle.ErrAlreadyRecording)
	assert.Equal(t, model.StateRecording, ctrl.State())
}

func TestDispatcher_UnknownActionIsMiss(t *testing.T) {
	ctrl := controller.New(nil, nil)
	d := NewDispatcher(DefaultRegistry(), ctrl)

	out, err := d.Handle(context.Background(), "cap://bogus-action")
	require.NoError(t, err)
	assert.False(t, out.Matched)
	assert.Equal(t, MissUnknownAction, out.Miss)
	assert.Equal(t, model.StateIdle, ctrl.State())
}

func TestDispatcher_SchemeMiss(t *testing.T) {
	exec := &countingExecutor{}
	d := NewDispatcher(DefaultRegistry(), exec)

	for _, url := range []string{"https://start-recording", "start-recording", "", "CAP://start-recording"} {
		out, err := d.Handle(context.Background(), url)
		require.NoError(t, err, url)
		assert.False(t, out.Matched, url)
		assert.Equal(t, MissScheme, out.Miss, url)
	}
	assert.Empty(t, exec.calls)
}

func TestDispatcher_PropagatesErrorUnchanged(t *testing.T) {
	sentinel := errors.New("executor exploded")
	exec := &countingExecutor{err: sentinel}
	d := NewDispatcher(DefaultRegistry(), exec)

	_, err := d.Handle(context.Background(), "cap://switch-camera")
	assert.Same(t, sentinel, err)
	assert.Equal(t, []model.Action{model.ActionSwitchCamera}, exec.calls)
}

func TestDispatcher_RoutesEveryAction(t *testing.T) {
	exec := &countingExecutor{}
	r := DefaultRegistry()
	d := NewDispatcher(r, exec)

	for _, e := range r.Entries() {
		out, err := d.Handle(context.Background(), e.URL)
		require.NoError(t, err)
		assert.Equal(t, e.Action, out.Action)
		assert.Equal(t, model.StatusFor(e.Action), out.Result.Status)
	}
	assert.Equal(t, model.AllActions(), exec.calls)
}

func TestDispatcher_HandleAll(t *testing.T) {
	ctrl := controller.New(nil, nil)
	d := NewDispatcher(DefaultRegistry(), ctrl)

	outs, errs := d.HandleAll(context.Background(), []string{
		"cap://start-recording",
		"",
		"cap://nope",
		"cap://resume-recording",
		"cap://pause-recording",
	})
	require.Len(t, outs, 4)
	require.Len(t, errs, 4)

	assert.NoError(t, errs[0])
	assert.True(t, outs[0].Matched)

	assert.NoError(t, errs[1])
	assert.Equal(t, MissUnknownAction, outs[1].Miss)

	assert.ErrorIs(t, errs[2], lifecycle.ErrNotPaused)

	assert.NoError(t, errs[3])
	assert.Equal(t, model.StatePaused, ctrl.State())
}
