// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package controller owns the recording session state machine and the
// active-device references, and executes one action at a time.
package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ManuGH/capctl/internal/domain/capture/devices"
	"github.com/ManuGH/capctl/internal/domain/capture/lifecycle"
	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/ManuGH/capctl/internal/domain/capture/ports"
	xglog "github.com/ManuGH/capctl/internal/log"
	"github.com/ManuGH/capctl/internal/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Option customises a Controller.
type Option func(*Controller)

// WithClock overrides the time source used for result timestamps and
// session bookkeeping.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSessionIDs overrides the session ID generator.
func WithSessionIDs(gen func() string) Option {
	return func(c *Controller) {
		if gen != nil {
			c.newSessionID = gen
		}
	}
}

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller is the single-session capture controller. All operations are
// serialized by one mutex; precondition check, transition, result
// construction and the backend call form one critical section.
type Controller struct {
	mu      sync.Mutex
	rec     model.SessionRecord
	rings   map[model.DeviceKind]devices.Ring
	source  ports.DeviceSource
	backend ports.CaptureBackend

	clock        func() time.Time
	newSessionID func() string
	logger       zerolog.Logger
}

// New creates an idle controller. source and backend may be nil: without a
// source every switch fails with ErrNoDeviceAvailable, without a backend
// transitions are committed without side effects.
func New(source ports.DeviceSource, backend ports.CaptureBackend, opts ...Option) *Controller {
	c := &Controller{
		rings: map[model.DeviceKind]devices.Ring{
			model.DeviceMicrophone: devices.NewRing(model.DeviceMicrophone),
			model.DeviceCamera:     devices.NewRing(model.DeviceCamera),
		},
		source:       source,
		backend:      backend,
		clock:        time.Now,
		newSessionID: func() string { return uuid.New().String() },
		logger:       xglog.WithComponent("capture"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rec = model.NewSessionRecord(c.clock())
	metrics.SetSessionState(string(c.rec.State))
	return c
}

// Prime loads the initial device lists so the first entry of each kind is
// active before any switch. Enumeration failures are logged and skipped.
func (c *Controller) Prime(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.source == nil {
		return
	}
	for kind, ring := range c.rings {
		list, err := c.source.Devices(ctx, kind)
		if err != nil {
			c.logger.Warn().Err(err).
				Str(xglog.FieldEvent, "capture.prime_failed").
				Str(xglog.FieldDeviceKind, string(kind)).
				Msg("device enumeration failed during prime")
			continue
		}
		c.rings[kind] = ring.Synced(list)
	}
}

// Execute runs one action. Illegal transitions return a
// *lifecycle.TransitionError, failed switches a *DeviceError; neither
// mutates state. A *BackendError is returned together with the committed result.
func (c *Controller) Execute(ctx context.Context, action model.Action) (model.ActionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if action.IsRecordingAction() {
		return c.transition(ctx, action)
	}
	if kind, ok := model.DeviceKindFor(action); ok {
		return c.switchDevice(ctx, action, kind)
	}
	metrics.RecordCaptureAction(action.String(), metrics.OutcomeUnknown)
	return model.ActionResult{}, fmt.Errorf("%w: %s", ErrUnknownAction, action)
}

// StartRecording begins a new session. Fails with lifecycle.ErrAlreadyRecording
// if a session is recording or paused.
func (c *Controller) StartRecording(ctx context.Context) (model.ActionResult, error) {
	return c.Execute(ctx, model.ActionStartRecording)
}

// StopRecording ends the current session. Fails with lifecycle.ErrNotRecording
// when idle.
func (c *Controller) StopRecording(ctx context.Context) (model.ActionResult, error) {
	return c.Execute(ctx, model.ActionStopRecording)
}

// PauseRecording pauses a recording session. Fails with
// lifecycle.ErrNotRecording unless recording.
func (c *Controller) PauseRecording(ctx context.Context) (model.ActionResult, error) {
	return c.Execute(ctx, model.ActionPauseRecording)
}

// ResumeRecording resumes a paused session. Fails with lifecycle.ErrNotPaused
// unless paused.
func (c *Controller) ResumeRecording(ctx context.Context) (model.ActionResult, error) {
	return c.Execute(ctx, model.ActionResumeRecording)
}

// SwitchMic activates the next known microphone.
func (c *Controller) SwitchMic(ctx context.Context) (model.ActionResult, error) {
	return c.Execute(ctx, model.ActionSwitchMic)
}

// SwitchCamera activates the next known camera.
func (c *Controller) SwitchCamera(ctx context.Context) (model.ActionResult, error) {
	return c.Execute(ctx, model.ActionSwitchCamera)
}

// State returns the current session state.
func (c *Controller) State() model.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rec.State
}

// Snapshot returns a copy of the session state and active devices.
func (c *Controller) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := model.Snapshot{
		State:     c.rec.State,
		SessionID: c.rec.SessionID,
		StartedAt: c.rec.StartedAt,
		Recorded:  c.rec.Recorded(c.clock()),
	}
	if d, ok := c.rings[model.DeviceMicrophone].Active(); ok {
		snap.Microphone = &d
	}
	if d, ok := c.rings[model.DeviceCamera].Active(); ok {
		snap.Camera = &d
	}
	return snap
}

func (c *Controller) transition(ctx context.Context, action model.Action) (model.ActionResult, error) {
	kind, _ := lifecycle.EventFor(action)
	ev := lifecycle.Event{Kind: kind}
	if kind == lifecycle.EvStartRequested {
		ev.SessionID = c.newSessionID()
	}

	from := c.rec.State
	applied, err := lifecycle.Dispatch(&c.rec, ev, c.clock())
	if err != nil {
		metrics.RecordCaptureAction(action.String(), metrics.OutcomeIllegalTransition)
		logger := xglog.WithContext(ctx, c.logger)
		logger.Info().
			Err(err).
			Str(xglog.FieldEvent, "capture.transition_rejected").
			Str(xglog.FieldAction, action.String()).
			Str(xglog.FieldOldState, string(from)).
			Msg("transition rejected")
		return model.ActionResult{}, err
	}
	metrics.SetSessionState(string(applied.To))

	// The timestamp is read after the commit.
	res := model.ActionResult{
		Status:    model.StatusFor(action),
		Action:    action,
		State:     applied.To,
		Timestamp: c.clock(),
		SessionID: applied.SessionID,
		Duration:  applied.Recorded,
	}

	logger := xglog.WithContext(xglog.ContextWithSessionID(ctx, applied.SessionID), c.logger)
	logger.Info().
		Str(xglog.FieldEvent, "capture.transition").
		Str(xglog.FieldAction, action.String()).
		Str(xglog.FieldOldState, string(from)).
		Str(xglog.FieldNewState, string(applied.To)).
		Msg("session transition committed")

	if err := c.callBackend(ctx, action, func(b ports.CaptureBackend) error {
		switch action {
		case model.ActionStartRecording:
			return b.Start(ctx, applied.SessionID)
		case model.ActionStopRecording:
			return b.Stop(ctx, applied.SessionID)
		case model.ActionPauseRecording:
			return b.Pause(ctx, applied.SessionID)
		default:
			return b.Resume(ctx, applied.SessionID)
		}
	}); err != nil {
		return res, &BackendError{Action: action, Result: res, Err: err}
	}

	metrics.RecordCaptureAction(action.String(), metrics.OutcomeSuccess)
	return res, nil
}

func (c *Controller) switchDevice(ctx context.Context, action model.Action, kind model.DeviceKind) (model.ActionResult, error) {
	if c.source == nil {
		metrics.RecordCaptureAction(action.String(), metrics.OutcomeNoDevice)
		return model.ActionResult{}, &DeviceError{Kind: kind}
	}

	list, err := c.source.Devices(ctx, kind)
	if err != nil {
		metrics.RecordCaptureAction(action.String(), metrics.OutcomeNoDevice)
		return model.ActionResult{}, &DeviceError{Kind: kind, Err: err}
	}

	next, err := c.rings[kind].Synced(list).Advanced()
	if err != nil {
		metrics.RecordCaptureAction(action.String(), metrics.OutcomeNoDevice)
		logger := xglog.WithContext(ctx, c.logger)
		logger.Info().
			Str(xglog.FieldEvent, "capture.switch_rejected").
			Str(xglog.FieldDeviceKind, string(kind)).
			Int("known", len(list)).
			Msg("no alternate device to switch to")
		return model.ActionResult{}, &DeviceError{Kind: kind, Known: len(list)}
	}
	c.rings[kind] = next

	active, _ := next.Active()
	res := model.ActionResult{
		Status:    model.StatusFor(action),
		Action:    action,
		State:     c.rec.State,
		Timestamp: c.clock(),
		SessionID: c.rec.SessionID,
		Device:    &active,
	}

	logger := xglog.WithContext(ctx, c.logger)
	logger.Info().
		Str(xglog.FieldEvent, "capture.device_switched").
		Str(xglog.FieldDeviceKind, string(kind)).
		Str(xglog.FieldDevice, active.Label).
		Msg("active device switched")

	if err := c.callBackend(ctx, action, func(b ports.CaptureBackend) error {
		return b.SelectDevice(ctx, active)
	}); err != nil {
		return res, &BackendError{Action: action, Result: res, Err: err}
	}

	metrics.RecordCaptureAction(action.String(), metrics.OutcomeSuccess)
	return res, nil
}

func (c *Controller) callBackend(ctx context.Context, action model.Action, call func(ports.CaptureBackend) error) error {
	if c.backend == nil {
		return nil
	}
	start := time.Now()
	err := call(c.backend)
	metrics.ObserveBackendCall(action.String(), time.Since(start).Seconds())
	if err != nil {
		metrics.RecordCaptureAction(action.String(), metrics.OutcomeBackendFailure)
		logger := xglog.WithContext(ctx, c.logger)
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "capture.backend_failed").
			Str(xglog.FieldAction, action.String()).
			Str(xglog.FieldNewState, string(c.rec.State)).
			Msg("capture backend failed after commit")
	}
	return err
}
