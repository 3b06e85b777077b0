// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction_InvertsString(t *testing.T) {
	for _, a := range AllActions() {
		parsed, err := ParseAction(a.String())
		require.NoError(t, err, a.String())
		assert.Equal(t, a, parsed)
	}

	_, err := ParseAction("open_editor")
	require.Error(t, err)
	assert.Equal(t, "unknown", ActionUnknown.String())
	assert.False(t, ActionUnknown.Valid())
}

func TestActionResult_JSONUsesTokens(t *testing.T) {
	res := ActionResult{
		Status:    StatusMicSwitched,
		Action:    ActionSwitchMic,
		State:     StateIdle,
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Device:    &Device{ID: "usb-2", Label: "USB Microphone 2", Kind: DeviceMicrophone},
	}

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "switch_mic", decoded["action"])
	assert.Equal(t, "mic_switched", decoded["status"])
	assert.Equal(t, "idle", decoded["state"])
	assert.NotContains(t, decoded, "session_id")
	assert.Equal(t, "USB Microphone 2", res.DeviceLabel())
}

func TestStatusFor(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range AllActions() {
		status := StatusFor(a)
		require.NotEmpty(t, status, a.String())
		require.False(t, seen[status], "duplicate status %s", status)
		seen[status] = true
	}
	assert.Empty(t, StatusFor(ActionUnknown))
}

func TestSessionRecord_RecordedExcludesPauses(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	rec := SessionRecord{
		State:       StatePaused,
		StartedAt:   t0,
		PausedAt:    t0.Add(50 * time.Second),
		PausedTotal: 10 * time.Second,
	}
	assert.Equal(t, 40*time.Second, rec.Recorded(t0.Add(time.Hour)))

	rec.State = StateRecording
	assert.Equal(t, 50*time.Second, rec.Recorded(t0.Add(time.Minute)))

	assert.Zero(t, NewSessionRecord(t0).Recorded(t0.Add(time.Minute)))
}
