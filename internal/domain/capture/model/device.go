// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

// DeviceKind distinguishes the two switchable input classes.
type DeviceKind string

const (
	DeviceMicrophone DeviceKind = "microphone"
	DeviceCamera     DeviceKind = "camera"
)

// Device is an opaque handle to an input plus its human-readable label.
// The controller never creates or destroys the underlying hardware object.
type Device struct {
	ID    string     `json:"id" yaml:"id"`
	Label string     `json:"label" yaml:"label"`
	Kind  DeviceKind `json:"kind" yaml:"-"`
}

// IsZero reports whether d is the empty device.
func (d Device) IsZero() bool {
	return d.ID == "" && d.Label == ""
}

// DeviceKindFor returns the device kind switched by a, if any.
func DeviceKindFor(a Action) (DeviceKind, bool) {
	switch a {
	case ActionSwitchMic:
		return DeviceMicrophone, true
	case ActionSwitchCamera:
		return DeviceCamera, true
	default:
		return "", false
	}
}
