// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/capctl/internal/api"
	"github.com/ManuGH/capctl/internal/config"
	"github.com/ManuGH/capctl/internal/deeplink"
	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	deviceFile := filepath.Join(t.TempDir(), "devices.yaml")
	require.NoError(t, os.WriteFile(deviceFile, []byte(`microphones:
  - id: mic-a
    label: Built-in
  - id: mic-b
    label: USB
cameras:
  - id: cam-a
    label: FaceTime
`), 0o600))

	return config.AppConfig{
		Version:  "test",
		LogLevel: "info",
		API: config.APIConfig{
			ListenAddr: "127.0.0.1:0",
			RateLimit:  config.RateLimitConfig{Requests: 100, Window: time.Minute},
		},
		Deeplink: config.DeeplinkConfig{Actions: deeplink.DefaultURLs()},
		Devices:  config.DevicesConfig{File: deviceFile},
		Backend:  config.BackendConfig{Kind: config.BackendLog, Timeout: time.Second},
	}
}

func TestBuild_RejectsInvalidRegistry(t *testing.T) {
	cfg := testConfig(t)
	cfg.Deeplink.Actions = map[model.Action]string{model.ActionStartRecording: "cap://start"}

	_, err := Build(context.Background(), cfg)
	require.ErrorIs(t, err, deeplink.ErrConfiguration)
}

func TestBuild_MissingDeviceFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Devices.File = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
}

func TestRuntime_ServesDeeplinks(t *testing.T) {
	defer goleak.VerifyNone(t, leakOpts...)

	ln := listen(t)
	rt, err := Build(context.Background(), testConfig(t), WithListener(ln))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rt.App.Run(ctx) }()

	client := api.NewClient(ln.Addr().String())
	require.Eventually(t, func() bool {
		_, err := client.Session(ctx)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	out, err := client.Open(ctx, "cap://start-recording")
	require.NoError(t, err)
	assert.True(t, out.Matched)
	assert.Equal(t, model.StateRecording, rt.Controller.State())

	out, err = client.Open(ctx, "cap://switch-mic")
	require.NoError(t, err)
	assert.Equal(t, "USB", out.Result.DeviceLabel())

	status, _ := get(t, "http://"+ln.Addr().String()+"/readyz")
	assert.Equal(t, http.StatusOK, status)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runtime did not stop")
	}
	http.DefaultTransport.(*http.Transport).CloseIdleConnections()
}
