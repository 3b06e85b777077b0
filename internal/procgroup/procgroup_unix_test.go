// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

//go:build unix

package procgroup

import (
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTerminate_KillsGroup(t *testing.T) {
	cmd := exec.Command("sleep", "100")
	Set(cmd)
	require.NoError(t, cmd.Start())

	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	require.NoError(t, err)
	require.Equal(t, cmd.Process.Pid, pgid, "child should lead its own group")

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	err = Terminate(cmd, waitCh, 200*time.Millisecond)
	require.Error(t, err, "terminated process should report a signal exit")

	require.Equal(t, syscall.ESRCH, syscall.Kill(-pgid, syscall.Signal(0)), "process group should be gone")
}

func TestTerminate_NilCommand(t *testing.T) {
	require.NoError(t, Terminate(nil, nil, time.Millisecond))
	require.ErrorIs(t, Kill(&exec.Cmd{}, syscall.SIGTERM), ErrNotStarted)
}
