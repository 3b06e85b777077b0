// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package devices provides device enumeration sources for the capture
// controller: a static list and a watched YAML file.
package devices

import (
	"strings"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"golang.org/x/text/unicode/norm"
)

// normalize returns list with kind set and labels NFC-normalized, so labels
// typed on different platforms compare equal. A missing label falls back to the ID.
func normalize(list []model.Device, kind model.DeviceKind) []model.Device {
	out := make([]model.Device, 0, len(list))
	for _, d := range list {
		d.ID = strings.TrimSpace(d.ID)
		d.Label = norm.NFC.String(strings.TrimSpace(d.Label))
		if d.Label == "" {
			d.Label = d.ID
		}
		d.Kind = kind
		out = append(out, d)
	}
	return out
}
