// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package stub is the default capture backend: it performs no capture and
// records what a real backend would have been asked to do.
package stub

import (
	"context"
	"sync"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/ManuGH/capctl/internal/domain/capture/ports"
	xglog "github.com/ManuGH/capctl/internal/log"
	"github.com/rs/zerolog"
)

var _ ports.CaptureBackend = (*Adapter)(nil)

// Adapter logs every call and tracks the session it was told about.
type Adapter struct {
	mu       sync.Mutex
	session  string
	paused   bool
	selected map[model.DeviceKind]model.Device
	logger   zerolog.Logger
}

func NewAdapter() *Adapter {
	return &Adapter{
		selected: make(map[model.DeviceKind]model.Device),
		logger:   xglog.WithComponent("backend.stub"),
	}
}

func (a *Adapter) Start(ctx context.Context, sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = sessionID
	a.paused = false
	a.log(ctx, "start", sessionID)
	return nil
}

func (a *Adapter) Stop(ctx context.Context, sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = ""
	a.paused = false
	a.log(ctx, "stop", sessionID)
	return nil
}

func (a *Adapter) Pause(ctx context.Context, sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = true
	a.log(ctx, "pause", sessionID)
	return nil
}

func (a *Adapter) Resume(ctx context.Context, sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = false
	a.log(ctx, "resume", sessionID)
	return nil
}

func (a *Adapter) SelectDevice(ctx context.Context, d model.Device) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.selected[d.Kind] = d
	logger := xglog.WithContext(ctx, a.logger)
	logger.Info().
		Str(xglog.FieldEvent, "backend.select_device").
		Str(xglog.FieldDeviceKind, string(d.Kind)).
		Str(xglog.FieldDevice, d.Label).
		Msg("stub backend selected device")
	return nil
}

// Session returns the session the adapter believes is active and whether it is paused.
func (a *Adapter) Session() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session, a.paused
}

// Selected returns the last device selected for kind.
func (a *Adapter) Selected(kind model.DeviceKind) (model.Device, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.selected[kind]
	return d, ok
}

func (a *Adapter) log(ctx context.Context, op, sessionID string) {
	logger := xglog.WithContext(ctx, a.logger)
	logger.Info().
		Str(xglog.FieldEvent, "backend."+op).
		Str(xglog.FieldSessionID, sessionID).
		Msg("stub backend call")
}
