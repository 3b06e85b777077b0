// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"maps"
	"time"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
)

func mergeFileConfig(dst *AppConfig, src *FileConfig) error {
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}

	if api := src.API; api != nil {
		if api.ListenAddr != "" {
			dst.API.ListenAddr = api.ListenAddr
		}
		if rl := api.RateLimit; rl != nil {
			if rl.Requests != nil {
				dst.API.RateLimit.Requests = *rl.Requests
			}
			if rl.Window != "" {
				d, err := time.ParseDuration(rl.Window)
				if err != nil {
					return fmt.Errorf("%w: api.rateLimit.window: %w", ErrInvalidConfig, err)
				}
				dst.API.RateLimit.Window = d
			}
		}
	}

	if dl := src.Deeplink; dl != nil && len(dl.Actions) > 0 {
		urls := maps.Clone(dst.Deeplink.Actions)
		for token, url := range dl.Actions {
			a, err := model.ParseAction(token)
			if err != nil {
				return fmt.Errorf("%w: deeplink.actions: %w", ErrInvalidConfig, err)
			}
			urls[a] = url
		}
		dst.Deeplink.Actions = urls
	}

	if dev := src.Devices; dev != nil {
		if dev.File != "" {
			dst.Devices.File = dev.File
		}
		if dev.Microphones != nil {
			dst.Devices.Microphones = withKind(dev.Microphones, model.DeviceMicrophone)
		}
		if dev.Cameras != nil {
			dst.Devices.Cameras = withKind(dev.Cameras, model.DeviceCamera)
		}
	}

	if be := src.Backend; be != nil {
		if be.Kind != "" {
			dst.Backend.Kind = be.Kind
		}
		if be.Timeout != "" {
			d, err := time.ParseDuration(be.Timeout)
			if err != nil {
				return fmt.Errorf("%w: backend.timeout: %w", ErrInvalidConfig, err)
			}
			dst.Backend.Timeout = d
		}
		for token, argv := range be.Hooks {
			a, err := model.ParseAction(token)
			if err != nil {
				return fmt.Errorf("%w: backend.hooks: %w", ErrInvalidConfig, err)
			}
			dst.Backend.Hooks[a] = append([]string(nil), argv...)
		}
	}

	if tel := src.Telemetry; tel != nil {
		if tel.Enabled != nil {
			dst.Telemetry.Enabled = *tel.Enabled
		}
		if tel.Exporter != "" {
			dst.Telemetry.Exporter = tel.Exporter
		}
		if tel.Endpoint != "" {
			dst.Telemetry.Endpoint = tel.Endpoint
		}
		if tel.SamplingRate != nil {
			dst.Telemetry.SamplingRate = *tel.SamplingRate
		}
	}
	return nil
}

func mergeEnvConfig(cfg *AppConfig) {
	cfg.LogLevel = ParseString(EnvLogLevel, cfg.LogLevel)
	cfg.API.ListenAddr = ParseString(EnvListen, cfg.API.ListenAddr)
	cfg.API.RateLimit.Requests = ParseInt(EnvRateLimitRequests, cfg.API.RateLimit.Requests)
	cfg.API.RateLimit.Window = ParseDuration(EnvRateLimitWindow, cfg.API.RateLimit.Window)
	cfg.Devices.File = ParseString(EnvDeviceFile, cfg.Devices.File)
	cfg.Backend.Kind = ParseString(EnvBackend, cfg.Backend.Kind)
	cfg.Backend.Timeout = ParseDuration(EnvBackendTimeout, cfg.Backend.Timeout)
	cfg.Telemetry.Enabled = ParseBool(EnvTracingEnabled, cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = ParseString(EnvTracingExporter, cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = ParseString(EnvTracingEndpoint, cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = ParseFloat(EnvTracingSampling, cfg.Telemetry.SamplingRate)
}

func withKind(list []model.Device, kind model.DeviceKind) []model.Device {
	out := make([]model.Device, len(list))
	for i, d := range list {
		d.Kind = kind
		out[i] = d
	}
	return out
}
