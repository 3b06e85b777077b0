// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package hook implements the capture backend by running operator-configured
// commands, one per action.
package hook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/ManuGH/capctl/internal/domain/capture/ports"
	xglog "github.com/ManuGH/capctl/internal/log"
	"github.com/ManuGH/capctl/internal/metrics"
	"github.com/ManuGH/capctl/internal/procgroup"
	"github.com/rs/zerolog"
)

var _ ports.CaptureBackend = (*Runner)(nil)

var (
	ErrHookFailed  = errors.New("hook command failed")
	ErrHookTimeout = errors.New("hook command timed out")
)

// Environment passed to every hook in addition to the daemon's own.
const (
	EnvAction      = "CAPCTL_ACTION"
	EnvSessionID   = "CAPCTL_SESSION_ID"
	EnvDeviceID    = "CAPCTL_DEVICE_ID"
	EnvDeviceLabel = "CAPCTL_DEVICE_LABEL"
	EnvDeviceKind  = "CAPCTL_DEVICE_KIND"
)

const tailLines = 20

// Error describes a failed hook run. Output holds the last lines the
// command wrote to stdout and stderr.
type Error struct {
	Action model.Action
	Output []string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("hook %s: %v", e.Action, e.Err)
	if len(e.Output) > 0 {
		msg += ": " + e.Output[len(e.Output)-1]
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Runner runs hooks with a per-call timeout. Actions without a hook succeed
// without running anything.
type Runner struct {
	hooks   map[model.Action][]string
	timeout time.Duration
	grace   time.Duration
	logger  zerolog.Logger
}

// NewRunner creates a hook runner. hooks is copied.
func NewRunner(hooks map[model.Action][]string, timeout time.Duration) *Runner {
	copied := make(map[model.Action][]string, len(hooks))
	for a, argv := range hooks {
		copied[a] = append([]string(nil), argv...)
	}
	return &Runner{
		hooks:   copied,
		timeout: timeout,
		grace:   time.Second,
		logger:  xglog.WithComponent("hook"),
	}
}

func (r *Runner) Start(ctx context.Context, sessionID string) error {
	return r.run(ctx, model.ActionStartRecording, EnvSessionID+"="+sessionID)
}

func (r *Runner) Stop(ctx context.Context, sessionID string) error {
	return r.run(ctx, model.ActionStopRecording, EnvSessionID+"="+sessionID)
}

func (r *Runner) Pause(ctx context.Context, sessionID string) error {
	return r.run(ctx, model.ActionPauseRecording, EnvSessionID+"="+sessionID)
}

func (r *Runner) Resume(ctx context.Context, sessionID string) error {
	return r.run(ctx, model.ActionResumeRecording, EnvSessionID+"="+sessionID)
}

func (r *Runner) SelectDevice(ctx context.Context, d model.Device) error {
	action := model.ActionSwitchMic
	if d.Kind == model.DeviceCamera {
		action = model.ActionSwitchCamera
	}
	return r.run(ctx, action,
		EnvDeviceID+"="+d.ID,
		EnvDeviceLabel+"="+d.Label,
		EnvDeviceKind+"="+string(d.Kind),
	)
}

func (r *Runner) run(ctx context.Context, action model.Action, env ...string) error {
	argv, ok := r.hooks[action]
	if !ok || len(argv) == 0 {
		metrics.RecordHookRun(action.String(), "skipped")
		return nil
	}

	// #nosec G204 -- hook commands are configured by the operator
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), EnvAction+"="+action.String())
	cmd.Env = append(cmd.Env, env...)
	out := newTail(tailLines)
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.WaitDelay = r.grace
	procgroup.Set(cmd)

	logger := xglog.WithContext(ctx, r.logger).With().
		Str(xglog.FieldAction, action.String()).
		Str("command", strings.Join(argv, " ")).
		Logger()

	started := time.Now()
	if err := cmd.Start(); err != nil {
		metrics.RecordHookRun(action.String(), "failed")
		return &Error{Action: action, Err: fmt.Errorf("%w: start: %w", ErrHookFailed, err)}
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var err error
	select {
	case err = <-waitCh:
	case <-runCtx.Done():
		_ = procgroup.Terminate(cmd, waitCh, r.grace)
		metrics.RecordHookRun(action.String(), "timeout")
		logger.Warn().
			Str(xglog.FieldEvent, "hook.timeout").
			Dur("timeout", r.timeout).
			Msg("hook command timed out")
		return &Error{Action: action, Output: out.Lines(), Err: fmt.Errorf("%w: %w", ErrHookTimeout, runCtx.Err())}
	}

	if err != nil {
		metrics.RecordHookRun(action.String(), "failed")
		logger.Warn().
			Err(err).
			Str(xglog.FieldEvent, "hook.failed").
			Strs("output", out.Lines()).
			Msg("hook command failed")
		return &Error{Action: action, Output: out.Lines(), Err: fmt.Errorf("%w: %w", ErrHookFailed, err)}
	}

	metrics.RecordHookRun(action.String(), "ok")
	logger.Debug().
		Str(xglog.FieldEvent, "hook.ok").
		Dur("elapsed", time.Since(started)).
		Msg("hook command finished")
	return nil
}
