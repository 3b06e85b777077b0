// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import (
	"context"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
)

// CaptureBackend performs the actual recording work once the controller has
// committed a transition. Each method is called exactly once per successful
// action; a returned error does not roll the transition back.
type CaptureBackend interface {
	Start(ctx context.Context, sessionID string) error
	Stop(ctx context.Context, sessionID string) error
	Pause(ctx context.Context, sessionID string) error
	Resume(ctx context.Context, sessionID string) error

	// SelectDevice makes device the active input of its kind.
	SelectDevice(ctx context.Context, device model.Device) error
}
