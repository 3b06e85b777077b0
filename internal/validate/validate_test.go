// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package validate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidator_ListenAddr(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"loopback", "127.0.0.1:8765", false},
		{"any host", ":8765", false},
		{"ephemeral", "127.0.0.1:0", false},
		{"ipv6", "[::1]:8765", false},
		{"empty", "", true},
		{"missing port", "127.0.0.1", true},
		{"port out of range", "127.0.0.1:70000", true},
		{"named port", "localhost:http", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.ListenAddr("api.listenAddr", tt.addr)
			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_Range(t *testing.T) {
	v := New()
	v.Range("requests", 0, 1, 10)
	v.Range("requests", 5, 1, 10)
	v.Range("requests", 11, 1, 10)
	if got := len(v.Errors()); got != 2 {
		t.Fatalf("expected 2 errors, got %d", got)
	}
}

func TestValidator_DurationRange(t *testing.T) {
	v := New()
	v.DurationRange("backend.timeout", 5*time.Second, 100*time.Millisecond, time.Minute)
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}
	v.DurationRange("backend.timeout", 0, 100*time.Millisecond, time.Minute)
	if v.IsValid() {
		t.Fatal("expected error for zero duration")
	}
}

func TestValidator_Ratio(t *testing.T) {
	v := New()
	v.Ratio("samplingRate", 0.25)
	v.Ratio("samplingRate", 1)
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}
	v.Ratio("samplingRate", 1.5)
	if v.IsValid() {
		t.Fatal("expected error for 1.5")
	}
}

func TestValidator_OneOf(t *testing.T) {
	v := New()
	v.OneOf("backend.kind", "hook", []string{"log", "hook"})
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}
	v.OneOf("backend.kind", "ffmpeg", []string{"log", "hook"})
	if v.IsValid() {
		t.Fatal("expected error")
	}
	if !strings.Contains(v.Err().Error(), `got "ffmpeg"`) {
		t.Errorf("error should name the bad value: %v", v.Err())
	}
}

func TestValidator_Command(t *testing.T) {
	v := New()
	v.Command("backend.hooks.start_recording", []string{"/usr/bin/true"})
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}
	v.Command("backend.hooks.stop_recording", nil)
	v.Command("backend.hooks.pause_recording", []string{"  ", "x"})
	if got := len(v.Errors()); got != 2 {
		t.Fatalf("expected 2 errors, got %d", got)
	}
}

func TestValidator_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "devices.yaml")
	if err := os.WriteFile(file, []byte("microphones: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	v := New()
	v.File("devices.file", "")
	v.File("devices.file", file)
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}

	v.File("devices.file", filepath.Join(dir, "missing.yaml"))
	v.File("devices.file", dir)
	if got := len(v.Errors()); got != 2 {
		t.Fatalf("expected 2 errors, got %d", got)
	}
}

func TestValidator_DirectoryCreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")

	v := New()
	v.Directory("store", dir, false)
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected directory to be created, stat err=%v", err)
	}

	v.Directory("store", filepath.Join(t.TempDir(), "absent"), true)
	if v.IsValid() {
		t.Fatal("expected error for missing directory with mustExist")
	}
}

func TestValidationError_Format(t *testing.T) {
	v := New()
	if v.Err() != nil {
		t.Fatal("empty validator must return nil error")
	}

	v.NotEmpty("a", " ")
	v.Range("b", 0, 1, 10)
	err := v.Err()

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(verr.Errors()))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("multi-error message should be joined: %q", err.Error())
	}

	// Err returns a copy.
	v.AddError("c", "late", nil)
	if len(verr.Errors()) != 2 {
		t.Error("ValidationError must not alias the validator")
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, s := range []string{"trace", "debug", "info", "warn", "error"} {
		if _, err := ParseLogLevel(s); err != nil {
			t.Errorf("ParseLogLevel(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}
