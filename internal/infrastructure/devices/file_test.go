// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package devices

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const twoMics = `
microphones:
  - id: mic-1
    label: Built-in Microphone
  - id: mic-2
    label: USB Mic
cameras:
  - id: cam-1
    label: FaceTime HD
`

func writeDeviceFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o600))
	require.NoError(t, os.Rename(tmp, path))
}

func labels(t *testing.T, s *FileSource, kind model.DeviceKind) []string {
	t.Helper()
	list, err := s.Devices(context.Background(), kind)
	require.NoError(t, err)
	out := make([]string, len(list))
	for i, d := range list {
		out[i] = d.Label
	}
	return out
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.yaml")
	writeDeviceFile(t, path, twoMics)

	s, err := NewFileSource(path)
	require.NoError(t, err)

	mics, err := s.Devices(context.Background(), model.DeviceMicrophone)
	require.NoError(t, err)
	want := []model.Device{
		{ID: "mic-1", Label: "Built-in Microphone", Kind: model.DeviceMicrophone},
		{ID: "mic-2", Label: "USB Mic", Kind: model.DeviceMicrophone},
	}
	if diff := cmp.Diff(want, mics); diff != "" {
		t.Fatalf("microphones mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"FaceTime HD"}, labels(t, s, model.DeviceCamera))
}

func TestFileSource_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "speakers: []\n"},
		{"missing id", "microphones:\n  - label: nameless\n"},
		{"duplicate id", "cameras:\n  - id: a\n  - id: a\n"},
		{"not yaml", "microphones: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.yaml")
			writeDeviceFile(t, path, tt.content)
			_, err := NewFileSource(path)
			assert.ErrorIs(t, err, ErrInvalidDeviceFile)
		})
	}

	_, err := NewFileSource(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

func TestFileSource_ReloadKeepsLastGood(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.yaml")
	writeDeviceFile(t, path, twoMics)
	s, err := NewFileSource(path)
	require.NoError(t, err)

	writeDeviceFile(t, path, "microphones: {broken\n")
	require.Error(t, s.Reload())
	assert.Equal(t, []string{"Built-in Microphone", "USB Mic"}, labels(t, s, model.DeviceMicrophone))

	writeDeviceFile(t, path, "microphones:\n  - id: mic-3\n    label: Headset\n")
	require.NoError(t, s.Reload())
	assert.Equal(t, []string{"Headset"}, labels(t, s, model.DeviceMicrophone))
	assert.Empty(t, labels(t, s, model.DeviceCamera))
}

func TestFileSource_WatchReloadsAndStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "devices.yaml")
	writeDeviceFile(t, path, twoMics)
	s, err := NewFileSource(path)
	require.NoError(t, err)
	s.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Give the watcher time to register before the first change.
	require.Eventually(t, func() bool {
		tmp := path + ".tmp"
		if os.WriteFile(tmp, []byte("microphones:\n  - id: mic-9\n    label: Studio\n"), 0o600) != nil {
			return false
		}
		if os.Rename(tmp, path) != nil {
			return false
		}
		list, _ := s.Devices(context.Background(), model.DeviceMicrophone)
		return len(list) == 1 && list[0].Label == "Studio"
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestStaticSource_NormalizesLabels(t *testing.T) {
	// "e" + combining acute accent composes to U+00E9 under NFC.
	s := NewStaticSource([]model.Device{{ID: "m1", Label: " Came\u0301ra Mic "}, {ID: "m2"}}, nil)

	mics, err := s.Devices(context.Background(), model.DeviceMicrophone)
	require.NoError(t, err)
	require.Len(t, mics, 2)
	assert.Equal(t, "Cam\u00e9ra Mic", mics[0].Label)
	assert.Equal(t, "m2", mics[1].Label, "missing label falls back to id")
	assert.Equal(t, model.DeviceMicrophone, mics[0].Kind)

	cams, err := s.Devices(context.Background(), model.DeviceCamera)
	require.NoError(t, err)
	assert.Empty(t, cams)

	mics[0].Label = "mutated"
	again, _ := s.Devices(context.Background(), model.DeviceMicrophone)
	assert.Equal(t, "Cam\u00e9ra Mic", again[0].Label)
}
