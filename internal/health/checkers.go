// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package health

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/ManuGH/capctl/internal/domain/capture/ports"
)

// DeviceChecker enumerates one device kind. Switching needs two devices, so
// fewer than two is degraded; an enumeration error is unhealthy.
type DeviceChecker struct {
	source ports.DeviceSource
	kind   model.DeviceKind
}

// NewDeviceChecker creates a checker for one device kind.
func NewDeviceChecker(source ports.DeviceSource, kind model.DeviceKind) *DeviceChecker {
	return &DeviceChecker{source: source, kind: kind}
}

func (c *DeviceChecker) Name() string { return "devices." + string(c.kind) }

func (c *DeviceChecker) Check(ctx context.Context) CheckResult {
	if c.source == nil {
		return CheckResult{Status: StatusDegraded, Message: "no device source configured"}
	}
	list, err := c.source.Devices(ctx, c.kind)
	if err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	if len(list) < 2 {
		return CheckResult{
			Status:  StatusDegraded,
			Message: fmt.Sprintf("%d device(s) known, switching unavailable", len(list)),
		}
	}
	return CheckResult{Status: StatusHealthy, Message: fmt.Sprintf("%d devices", len(list))}
}

// FileChecker checks that a configured file exists and is a regular file.
type FileChecker struct {
	name string
	path string
}

// NewFileChecker creates a checker for file existence
func NewFileChecker(name, path string) *FileChecker {
	return &FileChecker{name: name, path: path}
}

func (c *FileChecker) Name() string { return c.name }

func (c *FileChecker) Check(context.Context) CheckResult {
	if c.path == "" {
		return CheckResult{Status: StatusHealthy, Message: "not configured (optional)"}
	}

	info, err := os.Stat(c.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return CheckResult{Status: StatusUnhealthy, Error: "file not found", Message: c.path}
	case err != nil:
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	case info.IsDir():
		return CheckResult{Status: StatusUnhealthy, Error: "expected file, got directory"}
	case info.Size() == 0:
		return CheckResult{Status: StatusDegraded, Message: "file is empty"}
	}
	return CheckResult{Status: StatusHealthy, Message: "file exists and readable"}
}
