// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"os"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	// Start every test from a clean CAPCTL_ environment.
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "CAPCTL_") {
			key, _, _ := strings.Cut(e, "=")
			if err := os.Unsetenv(key); err != nil {
				panic("failed to unset env: " + err.Error())
			}
		}
	}

	os.Exit(m.Run())
}
