// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"
	"time"
)

func TestParseHelpers(t *testing.T) {
	t.Setenv("CAPCTL_TEST_STRING", "value")
	t.Setenv("CAPCTL_TEST_EMPTY", "")
	t.Setenv("CAPCTL_TEST_INT", "42")
	t.Setenv("CAPCTL_TEST_BAD_INT", "forty-two")
	t.Setenv("CAPCTL_TEST_BOOL", "YES")
	t.Setenv("CAPCTL_TEST_BAD_BOOL", "maybe")
	t.Setenv("CAPCTL_TEST_DURATION", "1m30s")
	t.Setenv("CAPCTL_TEST_FLOAT", "0.25")

	if got := ParseString("CAPCTL_TEST_STRING", "d"); got != "value" {
		t.Errorf("ParseString = %q", got)
	}
	if got := ParseString("CAPCTL_TEST_EMPTY", "d"); got != "d" {
		t.Errorf("ParseString(empty) = %q, want default", got)
	}
	if got := ParseString("CAPCTL_TEST_UNSET", "d"); got != "d" {
		t.Errorf("ParseString(unset) = %q, want default", got)
	}
	if got := ParseInt("CAPCTL_TEST_INT", 1); got != 42 {
		t.Errorf("ParseInt = %d", got)
	}
	if got := ParseInt("CAPCTL_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("ParseInt(bad) = %d, want default", got)
	}
	if got := ParseBool("CAPCTL_TEST_BOOL", false); !got {
		t.Error("ParseBool(YES) = false")
	}
	if got := ParseBool("CAPCTL_TEST_BAD_BOOL", true); !got {
		t.Error("ParseBool(bad) should fall back to default")
	}
	if got := ParseDuration("CAPCTL_TEST_DURATION", 0); got != 90*time.Second {
		t.Errorf("ParseDuration = %s", got)
	}
	if got := ParseFloat("CAPCTL_TEST_FLOAT", 1); got != 0.25 {
		t.Errorf("ParseFloat = %v", got)
	}
}
