// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// capctl controls a capture session through cap:// deeplinks.
//
// Usage:
//
//	capctl serve [--config FILE] [--env-file FILE]
//	capctl open [--addr HOST:PORT] URL...
//	capctl actions [--config FILE] [--json]
//	capctl validate --config FILE
//	capctl healthcheck [--addr HOST:PORT] [--mode ready|live]
//
// `capctl open` is the command an OS deeplink handler runs: it forwards the
// URLs to the running daemon.
package main

import (
	"fmt"
	"io"
	"os"

	xglog "github.com/ManuGH/capctl/internal/log"
	"github.com/ManuGH/capctl/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	if args[0] != "serve" {
		// Client commands keep stdout for their own output.
		xglog.Configure(xglog.Config{Level: "warn", Output: stderr, Service: "capctl", Version: version.Version})
	}

	switch args[0] {
	case "serve":
		return runServe(args[1:], stderr)
	case "open":
		return runOpen(args[1:], stdout, stderr)
	case "actions":
		return runActions(args[1:], stdout, stderr)
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "healthcheck":
		return runHealthcheck(args[1:], stdout, stderr)
	case "version", "--version", "-v":
		_, _ = fmt.Fprintf(stdout, "capctl %s\n", version.String())
		return 0
	case "help", "--help", "-h":
		usage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprint(w, `Usage: capctl <command> [flags]

Commands:
  serve        run the capture control daemon
  open         forward cap:// URLs to the running daemon
  actions      print the deeplink action registry
  validate     validate a configuration file
  healthcheck  probe a running daemon
  version      print version information
`)
}
