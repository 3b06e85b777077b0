// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"time"

	"github.com/ManuGH/capctl/internal/deeplink"
	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/ManuGH/capctl/internal/validate"
)

// Validate checks a resolved AppConfig.
func Validate(cfg AppConfig) error {
	v := validate.New()

	if _, err := validate.ParseLogLevel(cfg.LogLevel); err != nil {
		v.AddError("logLevel", err.Error(), cfg.LogLevel)
	}

	v.ListenAddr("api.listenAddr", cfg.API.ListenAddr)
	v.Range("api.rateLimit.requests", cfg.API.RateLimit.Requests, 1, 100000)
	v.DurationRange("api.rateLimit.window", cfg.API.RateLimit.Window, time.Second, 24*time.Hour)

	if _, err := deeplink.NewRegistry(cfg.Deeplink.Actions); err != nil {
		v.AddError("deeplink.actions", err.Error(), cfg.Deeplink.Actions)
	}

	v.File("devices.file", cfg.Devices.File)
	checkDevices(v, "devices.microphones", cfg.Devices.Microphones)
	checkDevices(v, "devices.cameras", cfg.Devices.Cameras)

	v.OneOf("backend.kind", cfg.Backend.Kind, []string{BackendLog, BackendHook})
	v.DurationRange("backend.timeout", cfg.Backend.Timeout, 100*time.Millisecond, 5*time.Minute)
	for a, argv := range cfg.Backend.Hooks {
		v.Command("backend.hooks."+a.String(), argv)
	}

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{"grpc", "http"})
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
	}
	v.Ratio("telemetry.samplingRate", cfg.Telemetry.SamplingRate)

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func checkDevices(v *validate.Validator, field string, list []model.Device) {
	seen := make(map[string]struct{}, len(list))
	for i, d := range list {
		name := fmt.Sprintf("%s[%d]", field, i)
		v.NotEmpty(name+".id", d.ID)
		if _, dup := seen[d.ID]; dup {
			v.AddError(name+".id", "duplicate device id", d.ID)
		}
		seen[d.ID] = struct{}{}
	}
}
