// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package controller

import (
	"errors"
	"fmt"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
)

var (
	// ErrNoDeviceAvailable is returned when a switch has nothing to switch to.
	ErrNoDeviceAvailable = errors.New("no device available")
	// ErrBackendFailure is returned when the capture backend failed after a
	// transition had already been committed.
	ErrBackendFailure = errors.New("capture backend failure")
	// ErrUnknownAction is returned for actions the controller does not implement.
	ErrUnknownAction = errors.New("unknown action")
)

// DeviceError reports a failed device switch. State is left unchanged.
type DeviceError struct {
	Kind  model.DeviceKind
	Known int
	// Err is the enumeration failure, if the device list could not be read.
	Err error
}

func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no %s available: enumeration failed: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("no %s available: %d known, need at least 2 to switch", e.Kind, e.Known)
}

func (e *DeviceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNoDeviceAvailable}
	}
	return []error{ErrNoDeviceAvailable, e.Err}
}

// BackendError reports a backend failure after the transition was committed.
// Result holds the committed outcome so callers can decide whether to compensate.
type BackendError struct {
	Action model.Action
	Result model.ActionResult
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("capture backend failed for %s (state %s committed): %v", e.Action, e.Result.State, e.Err)
}

func (e *BackendError) Unwrap() []error {
	return []error{ErrBackendFailure, e.Err}
}
