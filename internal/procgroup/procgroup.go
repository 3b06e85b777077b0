// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package procgroup starts hook commands in their own process group so a
// timeout can stop the whole tree.
package procgroup

import (
	"errors"
	"os/exec"
	"syscall"
)

// ErrNotStarted is returned when signalling a command that never started.
var ErrNotStarted = errors.New("process not started")

// Set configures the command to start in a new process group.
// Mandatory for Kill to reach children.
func Set(cmd *exec.Cmd) {
	set(cmd)
}

// Kill sends sig to the process group of cmd. A group that already exited
// yields os.ErrProcessDone.
func Kill(cmd *exec.Cmd, sig syscall.Signal) error {
	if cmd == nil || cmd.Process == nil {
		return ErrNotStarted
	}
	return kill(cmd, sig)
}
