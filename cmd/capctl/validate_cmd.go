// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/ManuGH/capctl/internal/config"
	"github.com/ManuGH/capctl/internal/version"
	"github.com/spf13/pflag"
)

// runValidate exits 0 for a valid file, 1 for an invalid one and 2 for
// usage errors.
func runValidate(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.StringP("config", "c", "", "path to YAML configuration file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *file == "" {
		_, _ = fmt.Fprintln(stderr, "capctl validate: --config is required")
		return 2
	}

	if _, err := config.NewLoader(*file, version.Version).Load(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", *file, err)
		return 1
	}
	_, _ = fmt.Fprintf(stdout, "%s: ok\n", *file)
	return 0
}
