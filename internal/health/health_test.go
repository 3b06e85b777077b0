// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/ManuGH/capctl/internal/infrastructure/devices"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChecker struct {
	name   string
	status Status
}

func (m *mockChecker) Name() string { return m.name }

func (m *mockChecker) Check(context.Context) CheckResult {
	return CheckResult{Status: m.status}
}

type failingSource struct{}

func (failingSource) Devices(context.Context, model.DeviceKind) ([]model.Device, error) {
	return nil, errors.New("bus gone")
}

func TestManager_Health_VerboseOnlyRunsChecks(t *testing.T) {
	m := NewManager("v1.0.0")
	m.RegisterChecker(&mockChecker{name: "healthy", status: StatusHealthy})
	m.RegisterChecker(&mockChecker{name: "degraded", status: StatusDegraded})

	resp := m.Health(context.Background(), false)
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Nil(t, resp.Checks)

	resp = m.Health(context.Background(), true)
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.True(t, resp.Ready)
	assert.Len(t, resp.Checks, 2)
}

func TestManager_Ready_UnhealthyWins(t *testing.T) {
	m := NewManager("v1.0.0")
	m.RegisterChecker(&mockChecker{name: "a", status: StatusUnhealthy})
	m.RegisterChecker(&mockChecker{name: "b", status: StatusDegraded})

	resp := m.Ready(context.Background())
	assert.Equal(t, StatusUnhealthy, resp.Status)
	assert.False(t, resp.Ready)
}

func TestManager_ServeReady(t *testing.T) {
	m := NewManager("v1.0.0")
	m.RegisterChecker(&mockChecker{name: "a", status: StatusUnhealthy})

	rr := httptest.NewRecorder()
	m.ServeReady(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.Ready)
	assert.Equal(t, "v1.0.0", body.Version)

	rr = httptest.NewRecorder()
	m.ServeHealth(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDeviceChecker(t *testing.T) {
	two := devices.NewStaticSource([]model.Device{{ID: "a"}, {ID: "b"}}, []model.Device{{ID: "c"}})

	assert.Equal(t, StatusHealthy, NewDeviceChecker(two, model.DeviceMicrophone).Check(context.Background()).Status)
	assert.Equal(t, StatusDegraded, NewDeviceChecker(two, model.DeviceCamera).Check(context.Background()).Status)
	assert.Equal(t, StatusDegraded, NewDeviceChecker(nil, model.DeviceCamera).Check(context.Background()).Status)

	res := NewDeviceChecker(failingSource{}, model.DeviceMicrophone).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, res.Status)
	assert.Equal(t, "bus gone", res.Error)
	assert.Equal(t, "devices.microphone", NewDeviceChecker(nil, model.DeviceMicrophone).Name())
}

func TestFileChecker(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "devices.yaml")
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(file, []byte("microphones: []\n"), 0o600))
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	tests := []struct {
		name string
		path string
		want Status
	}{
		{"optional", "", StatusHealthy},
		{"exists", file, StatusHealthy},
		{"empty", empty, StatusDegraded},
		{"missing", filepath.Join(dir, "nope.yaml"), StatusUnhealthy},
		{"directory", dir, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewFileChecker("device_file", tt.path).Check(context.Background()).Status)
		})
	}
}
