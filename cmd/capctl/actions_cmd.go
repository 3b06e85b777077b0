// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ManuGH/capctl/internal/api"
	"github.com/ManuGH/capctl/internal/config"
	"github.com/ManuGH/capctl/internal/deeplink"
	"github.com/ManuGH/capctl/internal/version"
	"github.com/spf13/pflag"
)

func runActions(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("actions", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.StringP("config", "c", "", "path to config file (YAML)")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.NewLoader(*configPath, version.Version).Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "capctl actions: %v\n", err)
		return 1
	}
	registry, err := deeplink.NewRegistry(cfg.Deeplink.Actions)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "capctl actions: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(api.ActionsResponse{Scheme: deeplink.Scheme, Actions: registry.Entries()}); err != nil {
			_, _ = fmt.Fprintf(stderr, "capctl actions: %v\n", err)
			return 1
		}
		return 0
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ACTION\tURL")
	for _, e := range registry.Entries() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", e.Action, e.URL)
	}
	if err := tw.Flush(); err != nil {
		return 1
	}
	return 0
}
