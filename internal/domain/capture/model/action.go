// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import "fmt"

// Action is one discrete operation a deeplink can trigger.
type Action int

const (
	ActionUnknown Action = iota
	ActionStartRecording
	ActionStopRecording
	ActionPauseRecording
	ActionResumeRecording
	ActionSwitchMic
	ActionSwitchCamera
)

var actionNames = map[Action]string{
	ActionStartRecording:  "start_recording",
	ActionStopRecording:   "stop_recording",
	ActionPauseRecording:  "pause_recording",
	ActionResumeRecording: "resume_recording",
	ActionSwitchMic:       "switch_mic",
	ActionSwitchCamera:    "switch_camera",
}

// AllActions lists every known action in declaration order.
func AllActions() []Action {
	return []Action{
		ActionStartRecording,
		ActionStopRecording,
		ActionPauseRecording,
		ActionResumeRecording,
		ActionSwitchMic,
		ActionSwitchCamera,
	}
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// IsRecordingAction reports whether a drives the session state machine
// (as opposed to switching devices).
func (a Action) IsRecordingAction() bool {
	switch a {
	case ActionStartRecording, ActionStopRecording, ActionPauseRecording, ActionResumeRecording:
		return true
	default:
		return false
	}
}

// ParseAction maps a stable action token back to its Action.
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return ActionUnknown, fmt.Errorf("unknown action %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("cannot marshal unknown action %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
