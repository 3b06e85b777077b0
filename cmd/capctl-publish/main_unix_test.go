// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

//go:build unix

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/ManuGH/capctl/internal/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Publishes(t *testing.T) {
	dir := t.TempDir()
	artifact := filepath.Join(dir, "ext.zip")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"--artifact", artifact,
		"--store", filepath.Join(dir, "store"),
		"--log-level", "error",
		"--", "sh", "-c", "echo payload > " + artifact,
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var h publish.ArtifactHandle
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &h))
	assert.Equal(t, artifact, h.Path)
	assert.Equal(t, int64(len("payload\n")), h.Size)
	assert.Equal(t, h.Digest, h.Receipt.Digest)
	assert.FileExists(t, h.Receipt.Location)
}

func TestRun_ReportsFailedStage(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"-a", filepath.Join(dir, "never.zip"),
		"-s", filepath.Join(dir, "store"),
		"--log-level", "error",
		"--", "true",
	}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "stage verify_artifact failed")
	assert.Empty(t, stdout.String())
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), []string{"--artifact", "x"}, &stdout, &stderr))
	assert.Equal(t, 0, run(context.Background(), []string{"--version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "capctl-publish ")
}
