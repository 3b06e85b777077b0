// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import (
	"context"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
)

// DeviceSource supplies the ordered list of available inputs of one kind.
// The controller only consumes the current list; hardware discovery lives
// behind this interface.
type DeviceSource interface {
	Devices(ctx context.Context, kind model.DeviceKind) ([]model.Device, error)
}
