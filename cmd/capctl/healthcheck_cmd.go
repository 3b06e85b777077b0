// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ManuGH/capctl/internal/config"
	"github.com/spf13/pflag"
)

func runHealthcheck(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("healthcheck", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	mode := fs.String("mode", "ready", "healthcheck mode: ready or live")
	addr := fs.String("addr", config.ParseString(config.EnvListen, config.DefaultListenAddr), "daemon address")
	timeout := fs.Duration("timeout", 5*time.Second, "check timeout")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	path := "/healthz"
	if *mode == "ready" {
		path = "/readyz"
	}
	base := strings.TrimRight(*addr, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	client := http.Client{Timeout: *timeout}
	resp, err := client.Get(base + path)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "healthcheck failed (network): %v\n", err)
		return 1
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = fmt.Fprintf(stderr, "healthcheck failed (status): %s\n", resp.Status)
		return 1
	}
	_, _ = fmt.Fprintf(stdout, "healthcheck successful (%s)\n", *mode)
	return 0
}
