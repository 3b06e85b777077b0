// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ManuGH/capctl/internal/deeplink"
	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultLogLevel          = "info"
	DefaultListenAddr        = "127.0.0.1:8765"
	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = time.Minute
	DefaultBackendTimeout    = 5 * time.Second
	DefaultTracingExporter   = "grpc"
	DefaultTracingEndpoint   = "localhost:4317"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath string
	envFile    string
	version    string
}

// NewLoader creates a new configuration loader. configPath may be empty.
func NewLoader(configPath, version string) *Loader {
	return &Loader{configPath: configPath, version: version}
}

// WithEnvFile makes Load read a dotenv file before consulting the
// environment. Variables already set in the process win.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration with precedence: ENV > File > Defaults,
// then validates the result.
func (l *Loader) Load() (AppConfig, error) {
	cfg := defaults()

	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil {
			return cfg, fmt.Errorf("load env file: %w", err)
		}
	}

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := mergeFileConfig(&cfg, fileCfg); err != nil {
			return cfg, fmt.Errorf("merge file config: %w", err)
		}
	}

	mergeEnvConfig(&cfg)

	if cfg.Devices.File != "" {
		if abs, err := filepath.Abs(cfg.Devices.File); err == nil {
			cfg.Devices.File = abs
		}
	}
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func defaults() AppConfig {
	return AppConfig{
		LogLevel: DefaultLogLevel,
		API: APIConfig{
			ListenAddr: DefaultListenAddr,
			RateLimit: RateLimitConfig{
				Requests: DefaultRateLimitRequests,
				Window:   DefaultRateLimitWindow,
			},
		},
		Deeplink: DeeplinkConfig{Actions: deeplink.DefaultURLs()},
		Backend: BackendConfig{
			Kind:    BackendLog,
			Timeout: DefaultBackendTimeout,
			Hooks:   map[model.Action][]string{},
		},
		Telemetry: TelemetryConfig{
			Exporter:     DefaultTracingExporter,
			Endpoint:     DefaultTracingEndpoint,
			SamplingRate: 1.0,
		},
	}
}

// loadFile loads configuration from a YAML file with STRICT parsing.
// Unknown fields are fatal.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return parseFileConfig(data)
}

func parseFileConfig(data []byte) (*FileConfig, error) {
	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("%w: %w", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return &fileCfg, nil
}
