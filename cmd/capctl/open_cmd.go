// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ManuGH/capctl/internal/api"
	"github.com/ManuGH/capctl/internal/config"
	"github.com/ManuGH/capctl/internal/deeplink"
	"github.com/spf13/pflag"
)

// runOpen forwards each URL to the daemon. Misses are reported but are not
// failures; any transport or action error makes the exit status 1.
func runOpen(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("open", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", config.ParseString(config.EnvListen, config.DefaultListenAddr), "daemon address")
	timeout := fs.Duration("timeout", api.DefaultClientTimeout, "overall timeout")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	urls := make([]string, 0, fs.NArg())
	for _, u := range fs.Args() {
		if strings.TrimSpace(u) != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		_, _ = fmt.Fprintln(stderr, "capctl open: at least one URL is required")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	return forward(ctx, api.NewClient(*addr), urls, stdout, stderr)
}

func forward(ctx context.Context, client *api.Client, urls []string, stdout, stderr io.Writer) int {
	code := 0
	for _, u := range urls {
		out, err := client.Open(ctx, u)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "%s: %v\n", u, err)
			code = 1
			continue
		}
		_, _ = fmt.Fprintln(stdout, describeOutcome(out))
	}
	return code
}

func describeOutcome(out deeplink.Outcome) string {
	if !out.Matched {
		return fmt.Sprintf("%s: no action (%s)", out.URL, out.Miss)
	}
	line := fmt.Sprintf("%s: %s, state %s", out.URL, out.Result.Status, out.Result.State)
	if label := out.Result.DeviceLabel(); label != "" {
		line += ", device " + label
	}
	if out.Result.Duration > 0 {
		line += ", recorded " + out.Result.Duration.Round(time.Millisecond).String()
	}
	return line
}
