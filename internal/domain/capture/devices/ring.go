// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package devices tracks the active input of one kind as a cursor into an
// ordered device list.
package devices

import (
	"errors"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
)

// ErrNoAlternate is returned when fewer than two devices are known.
var ErrNoAlternate = errors.New("no alternate device")

// Ring is an ordered device list plus a cursor to the active entry.
// Ring values are immutable: Synced and Advanced return modified copies, so a
// caller can stage a switch and commit it only on success.
type Ring struct {
	kind    model.DeviceKind
	devices []model.Device
	cursor  int
	primed  bool
}

// NewRing returns an empty ring for kind.
func NewRing(kind model.DeviceKind) Ring {
	return Ring{kind: kind, cursor: -1}
}

// Kind returns the device kind tracked by the ring.
func (r Ring) Kind() model.DeviceKind { return r.kind }

// Len returns the number of known devices.
func (r Ring) Len() int { return len(r.devices) }

// Active returns the active device, if any.
func (r Ring) Active() (model.Device, bool) {
	if r.cursor < 0 || r.cursor >= len(r.devices) {
		return model.Device{}, false
	}
	return r.devices[r.cursor], true
}

// Labels returns the known device labels in order.
func (r Ring) Labels() []string {
	out := make([]string, len(r.devices))
	for i, d := range r.devices {
		out[i] = d.Label
	}
	return out
}

// Synced returns a ring holding list. The first sync makes the head active.
// Later syncs keep the cursor on the active device by ID; if that device is
// gone the cursor is cleared so the next advance lands on the head.
func (r Ring) Synced(list []model.Device) Ring {
	next := Ring{kind: r.kind, cursor: -1, primed: r.primed}
	next.devices = make([]model.Device, len(list))
	for i, d := range list {
		d.Kind = r.kind
		next.devices[i] = d
	}

	if !r.primed {
		if len(next.devices) > 0 {
			next.cursor = 0
			next.primed = true
		}
		return next
	}

	active, ok := r.Active()
	if !ok {
		return next
	}
	for i, d := range next.devices {
		if d.ID == active.ID {
			next.cursor = i
			break
		}
	}
	return next
}

// Advanced returns a ring whose cursor moved to the next device, wrapping to
// the first entry after the last.
func (r Ring) Advanced() (Ring, error) {
	if len(r.devices) <= 1 {
		return r, ErrNoAlternate
	}
	next := r
	next.cursor = (r.cursor + 1) % len(r.devices)
	next.primed = true
	return next, nil
}
