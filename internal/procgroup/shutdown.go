// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package procgroup

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/ManuGH/capctl/internal/metrics"
)

// Terminate stops a process group: SIGTERM, then SIGKILL if waitCh has not
// delivered within grace. It always drains waitCh and returns its error.
// Safe to call on nil commands.
func Terminate(cmd *exec.Cmd, waitCh <-chan error, grace time.Duration) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}

	signal(cmd, syscall.SIGTERM, "SIGTERM")

	select {
	case err := <-waitCh:
		return err
	case <-time.After(grace):
		signal(cmd, syscall.SIGKILL, "SIGKILL")
		return <-waitCh
	}
}

func signal(cmd *exec.Cmd, sig syscall.Signal, name string) {
	err := Kill(cmd, sig)
	switch {
	case err == nil:
		metrics.RecordProcTerminate(name, "sent")
	case errors.Is(err, os.ErrProcessDone):
		metrics.RecordProcTerminate(name, "gone")
	default:
		metrics.RecordProcTerminate(name, "error")
	}
}
