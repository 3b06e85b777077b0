// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

//go:build unix

package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecBuilder_WritesArtifact(t *testing.T) {
	dir := t.TempDir()
	b := ExecBuilder{
		Argv: []string{"sh", "-c", `printf '%s' "$PAYLOAD" > out.bin`},
		Dir:  dir,
		Env:  []string{"PAYLOAD=built"},
	}
	require.NoError(t, b.Build(context.Background()))

	got, err := os.ReadFile(filepath.Join(dir, "out.bin"))
	require.NoError(t, err)
	assert.Equal(t, "built", string(got))
}

func TestExecBuilder_FailureCarriesOutput(t *testing.T) {
	b := ExecBuilder{Argv: []string{"sh", "-c", "echo missing dependency >&2; exit 3"}}
	err := b.Build(context.Background())

	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "missing dependency", be.Output)
}

func TestExecBuilder_Timeout(t *testing.T) {
	b := ExecBuilder{Argv: []string{"sleep", "30"}, Timeout: 100 * time.Millisecond, Grace: 200 * time.Millisecond}

	start := time.Now()
	err := b.Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecBuilder_NoCommand(t *testing.T) {
	require.Error(t, ExecBuilder{}.Build(context.Background()))
}

func TestBoundedBuffer_KeepsTail(t *testing.T) {
	b := &boundedBuffer{limit: 4}
	_, _ = b.Write([]byte("abcdef"))
	_, _ = b.Write([]byte("gh"))
	assert.Equal(t, "efgh", b.String())
}
