// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/ManuGH/capctl/internal/procgroup"
)

// Builder produces the artifact.
type Builder interface {
	Build(ctx context.Context) error
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context) error

func (f BuilderFunc) Build(ctx context.Context) error { return f(ctx) }

const maxBuildOutput = 8 << 10

// BuildError carries the tail of a failed build's combined output.
type BuildError struct {
	Command string
	Output  string
	Err     error
}

func (e *BuildError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v\n%s", e.Command, e.Err, e.Output)
}

func (e *BuildError) Unwrap() error { return e.Err }

// ExecBuilder runs a build command in its own process group. On timeout the
// whole group gets SIGTERM, then SIGKILL after Grace.
type ExecBuilder struct {
	Argv    []string
	Dir     string
	Env     []string
	Timeout time.Duration
	Grace   time.Duration
}

func (b ExecBuilder) Build(ctx context.Context) error {
	if len(b.Argv) == 0 {
		return errors.New("no build command configured")
	}
	command := strings.Join(b.Argv, " ")
	grace := b.Grace
	if grace <= 0 {
		grace = 2 * time.Second
	}

	// #nosec G204 -- build command is provided by the operator
	cmd := exec.Command(b.Argv[0], b.Argv[1:]...)
	cmd.Dir = b.Dir
	cmd.Env = append(os.Environ(), b.Env...)
	out := &boundedBuffer{limit: maxBuildOutput}
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.WaitDelay = grace
	procgroup.Set(cmd)

	if err := cmd.Start(); err != nil {
		return &BuildError{Command: command, Err: err}
	}
	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	runCtx := ctx
	if b.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	select {
	case err := <-waitCh:
		if err != nil {
			return &BuildError{Command: command, Output: out.String(), Err: err}
		}
		return nil
	case <-runCtx.Done():
		_ = procgroup.Terminate(cmd, waitCh, grace)
		return &BuildError{Command: command, Output: out.String(), Err: runCtx.Err()}
	}
}

// boundedBuffer keeps the last limit bytes written.
type boundedBuffer struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.limit; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	return len(p), nil
}

func (b *boundedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.TrimSpace(string(b.buf))
}
