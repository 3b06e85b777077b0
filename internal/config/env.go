// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ManuGH/capctl/internal/log"
	"github.com/rs/zerolog"
)

// Environment keys.
const (
	EnvLogLevel          = "CAPCTL_LOG_LEVEL"
	EnvListen            = "CAPCTL_LISTEN"
	EnvRateLimitRequests = "CAPCTL_RATELIMIT_REQUESTS"
	EnvRateLimitWindow   = "CAPCTL_RATELIMIT_WINDOW"
	EnvDeviceFile        = "CAPCTL_DEVICE_FILE"
	EnvBackend           = "CAPCTL_BACKEND"
	EnvBackendTimeout    = "CAPCTL_BACKEND_TIMEOUT"
	EnvTracingEnabled    = "CAPCTL_TRACING_ENABLED"
	EnvTracingExporter   = "CAPCTL_TRACING_EXPORTER"
	EnvTracingEndpoint   = "CAPCTL_TRACING_ENDPOINT"
	EnvTracingSampling   = "CAPCTL_TRACING_SAMPLING_RATE"
)

// ParseString reads a string from environment variable or returns default value.
// It logs the source (environment or default) for observability.
func ParseString(key, defaultValue string) string {
	logger := log.WithComponent("config")
	if value, ok := os.LookupEnv(key); ok {
		if value == "" {
			logDefault(logger, key).Str("default", defaultValue).
				Msg("using default value (environment variable is empty)")
			return defaultValue
		}
		logger.Debug().
			Str("key", key).
			Str("value", value).
			Str("source", "environment").
			Msg("using environment variable")
		return value
	}
	logDefault(logger, key).Str("default", defaultValue).Msg("using default value")
	return defaultValue
}

// ParseInt reads an integer from environment variable or returns default value.
// It validates the input and falls back to default on parse errors.
func ParseInt(key string, defaultValue int) int {
	return parseEnv(key, defaultValue, strconv.Atoi, func(e *zerolog.Event, k string, v int) *zerolog.Event {
		return e.Int(k, v)
	})
}

// ParseDuration reads a duration in Go duration format (e.g. "5s").
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	return parseEnv(key, defaultValue, time.ParseDuration, func(e *zerolog.Event, k string, v time.Duration) *zerolog.Event {
		return e.Dur(k, v)
	})
}

// ParseFloat reads a float64 from environment variable or returns default value.
func ParseFloat(key string, defaultValue float64) float64 {
	return parseEnv(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}, func(e *zerolog.Event, k string, v float64) *zerolog.Event {
		return e.Float64(k, v)
	})
}

// ParseBool reads a boolean from environment variable or returns default value.
// It accepts "true", "false", "1", "0", "yes", "no" (case-insensitive).
func ParseBool(key string, defaultValue bool) bool {
	return parseEnv(key, defaultValue, func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return false, strconv.ErrSyntax
	}, func(e *zerolog.Event, k string, v bool) *zerolog.Event {
		return e.Bool(k, v)
	})
}

func parseEnv[T any](key string, defaultValue T, parse func(string) (T, error), field func(*zerolog.Event, string, T) *zerolog.Event) T {
	logger := log.WithComponent("config")
	v, ok := os.LookupEnv(key)
	if !ok {
		field(logDefault(logger, key), "default", defaultValue).Msg("using default value")
		return defaultValue
	}
	if v == "" {
		field(logDefault(logger, key), "default", defaultValue).
			Msg("using default value (environment variable is empty)")
		return defaultValue
	}
	parsed, err := parse(v)
	if err != nil {
		field(logger.Warn().Str("key", key).Str("value", v), "default", defaultValue).
			Msg("invalid value in environment variable, using default")
		return defaultValue
	}
	field(logger.Debug().Str("key", key).Str("source", "environment"), "value", parsed).
		Msg("using environment variable")
	return parsed
}

func logDefault(logger zerolog.Logger, key string) *zerolog.Event {
	return logger.Debug().Str("key", key).Str("source", "default")
}
