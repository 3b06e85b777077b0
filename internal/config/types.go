// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"time"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
)

// Backend kinds.
const (
	BackendLog  = "log"
	BackendHook = "hook"
)

// AppConfig is the resolved runtime configuration.
type AppConfig struct {
	Version   string
	LogLevel  string
	API       APIConfig
	Deeplink  DeeplinkConfig
	Devices   DevicesConfig
	Backend   BackendConfig
	Telemetry TelemetryConfig
}

// APIConfig configures the local HTTP control surface.
type APIConfig struct {
	ListenAddr string
	RateLimit  RateLimitConfig
}

// RateLimitConfig bounds deeplink submissions per client.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// DeeplinkConfig holds the resolved action registry URLs.
type DeeplinkConfig struct {
	Actions map[model.Action]string
}

// DevicesConfig selects the device enumeration source. A non-empty File
// takes precedence over the static lists.
type DevicesConfig struct {
	File        string
	Microphones []model.Device
	Cameras     []model.Device
}

// BackendConfig selects the capture backend.
type BackendConfig struct {
	Kind    string
	Timeout time.Duration
	Hooks   map[model.Action][]string
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool
	Exporter     string
	Endpoint     string
	SamplingRate float64
}

// FileConfig mirrors the YAML file. Pointers distinguish "absent" from zero.
type FileConfig struct {
	LogLevel  string               `yaml:"logLevel,omitempty"`
	API       *APIFileConfig       `yaml:"api,omitempty"`
	Deeplink  *DeeplinkFileConfig  `yaml:"deeplink,omitempty"`
	Devices   *DevicesFileConfig   `yaml:"devices,omitempty"`
	Backend   *BackendFileConfig   `yaml:"backend,omitempty"`
	Telemetry *TelemetryFileConfig `yaml:"telemetry,omitempty"`
}

type APIFileConfig struct {
	ListenAddr string               `yaml:"listenAddr,omitempty"`
	RateLimit  *RateLimitFileConfig `yaml:"rateLimit,omitempty"`
}

type RateLimitFileConfig struct {
	Requests *int   `yaml:"requests,omitempty"`
	Window   string `yaml:"window,omitempty"`
}

// DeeplinkFileConfig overrides registry URLs keyed by action token.
type DeeplinkFileConfig struct {
	Actions map[string]string `yaml:"actions,omitempty"`
}

type DevicesFileConfig struct {
	File        string         `yaml:"file,omitempty"`
	Microphones []model.Device `yaml:"microphones,omitempty"`
	Cameras     []model.Device `yaml:"cameras,omitempty"`
}

// BackendFileConfig configures the backend. Hooks are argv lists keyed by
// action token.
type BackendFileConfig struct {
	Kind    string              `yaml:"kind,omitempty"`
	Timeout string              `yaml:"timeout,omitempty"`
	Hooks   map[string][]string `yaml:"hooks,omitempty"`
}

type TelemetryFileConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}
