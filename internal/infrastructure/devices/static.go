// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package devices

import (
	"context"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/ManuGH/capctl/internal/domain/capture/ports"
)

var _ ports.DeviceSource = (*StaticSource)(nil)

// StaticSource serves fixed device lists.
type StaticSource struct {
	lists map[model.DeviceKind][]model.Device
}

func NewStaticSource(microphones, cameras []model.Device) *StaticSource {
	return &StaticSource{lists: map[model.DeviceKind][]model.Device{
		model.DeviceMicrophone: normalize(microphones, model.DeviceMicrophone),
		model.DeviceCamera:     normalize(cameras, model.DeviceCamera),
	}}
}

func (s *StaticSource) Devices(_ context.Context, kind model.DeviceKind) ([]model.Device, error) {
	return append([]model.Device(nil), s.lists[kind]...), nil
}
