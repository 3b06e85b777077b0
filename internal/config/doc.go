// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads capctl configuration with precedence
// ENV > YAML file > defaults.
package config
