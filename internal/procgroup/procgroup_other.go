// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

//go:build !unix

package procgroup

import (
	"os/exec"
	"syscall"
)

func set(*exec.Cmd) {}

func kill(cmd *exec.Cmd, _ syscall.Signal) error {
	return cmd.Process.Kill()
}
