// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import "time"

// Status tokens reported in ActionResult.Status.
const (
	StatusRecordingStarted = "recording_started"
	StatusRecordingStopped = "recording_stopped"
	StatusRecordingPaused  = "recording_paused"
	StatusRecordingResumed = "recording_resumed"
	StatusMicSwitched      = "mic_switched"
	StatusCameraSwitched   = "camera_switched"
)

// StatusFor returns the success status token for an action.
func StatusFor(a Action) string {
	switch a {
	case ActionStartRecording:
		return StatusRecordingStarted
	case ActionStopRecording:
		return StatusRecordingStopped
	case ActionPauseRecording:
		return StatusRecordingPaused
	case ActionResumeRecording:
		return StatusRecordingResumed
	case ActionSwitchMic:
		return StatusMicSwitched
	case ActionSwitchCamera:
		return StatusCameraSwitched
	default:
		return ""
	}
}

// ActionResult is the record returned for one successful action.
// A fresh value is built per call; callers own it.
type ActionResult struct {
	Status    string        `json:"status"`
	Action    Action        `json:"action"`
	State     SessionState  `json:"state"`
	Timestamp time.Time     `json:"timestamp"`
	SessionID string        `json:"session_id,omitempty"`
	Device    *Device       `json:"device,omitempty"`
	Duration  time.Duration `json:"duration_ns,omitempty"`
}

// DeviceLabel returns the label of the device carried by a switch result.
func (r ActionResult) DeviceLabel() string {
	if r.Device == nil {
		return ""
	}
	return r.Device.Label
}

// Snapshot is a read-only view of the controller state.
type Snapshot struct {
	State      SessionState  `json:"state"`
	SessionID  string        `json:"session_id,omitempty"`
	StartedAt  time.Time     `json:"started_at,omitzero"`
	Recorded   time.Duration `json:"recorded_ns"`
	Microphone *Device       `json:"microphone,omitempty"`
	Camera     *Device       `json:"camera,omitempty"`
}
