// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package stub

import (
	"context"
	"testing"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_TracksSession(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter()

	require.NoError(t, a.Start(ctx, "s1"))
	id, paused := a.Session()
	assert.Equal(t, "s1", id)
	assert.False(t, paused)

	require.NoError(t, a.Pause(ctx, "s1"))
	_, paused = a.Session()
	assert.True(t, paused)

	require.NoError(t, a.Resume(ctx, "s1"))
	require.NoError(t, a.Stop(ctx, "s1"))
	id, _ = a.Session()
	assert.Empty(t, id)
}

func TestAdapter_SelectDevice(t *testing.T) {
	a := NewAdapter()
	cam := model.Device{ID: "c2", Label: "USB Cam", Kind: model.DeviceCamera}
	require.NoError(t, a.SelectDevice(context.Background(), cam))

	got, ok := a.Selected(model.DeviceCamera)
	require.True(t, ok)
	assert.Equal(t, cam, got)

	_, ok = a.Selected(model.DeviceMicrophone)
	assert.False(t, ok)
}
