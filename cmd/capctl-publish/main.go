// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// capctl-publish builds an artifact and stores it in a local artifact store.
//
// Usage:
//
//	capctl-publish --artifact dist/ext.zip --store /var/lib/capctl/artifacts -- npm run build
//
// Everything after "--" is the build command. Exit codes: 0 published,
// 1 a pipeline stage failed, 2 usage error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	xglog "github.com/ManuGH/capctl/internal/log"
	"github.com/ManuGH/capctl/internal/publish"
	"github.com/ManuGH/capctl/internal/validate"
	"github.com/ManuGH/capctl/internal/version"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("capctl-publish", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	artifact := fs.StringP("artifact", "a", "", "path of the artifact the build produces")
	storeDir := fs.StringP("store", "s", "", "artifact store directory")
	workDir := fs.String("workdir", "", "working directory for the build command")
	timeout := fs.Duration("build-timeout", 10*time.Minute, "build command timeout")
	logLevel := fs.String("log-level", "info", "log level")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		_, _ = fmt.Fprintf(stdout, "capctl-publish %s\n", version.String())
		return 0
	}
	v := validate.New()
	v.NotEmpty("artifact", *artifact)
	v.Command("build", fs.Args())
	v.DurationRange("build-timeout", *timeout, time.Second, 24*time.Hour)
	if *storeDir == "" {
		v.AddError("store", "store directory is required", *storeDir)
	} else {
		v.Directory("store", *storeDir, false)
	}
	if err := v.Err(); err != nil {
		_, _ = fmt.Fprintf(stderr, "capctl-publish: %v\n", err)
		return 2
	}

	xglog.Configure(xglog.Config{Level: *logLevel, Output: stderr, Service: "capctl-publish", Version: version.Version})

	store, err := publish.NewDirStore(*storeDir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "capctl-publish: %v\n", err)
		return 1
	}

	h, err := publish.Publish(ctx, publish.Config{
		Builder:      publish.ExecBuilder{Argv: fs.Args(), Dir: *workDir, Timeout: *timeout},
		ArtifactPath: *artifact,
		Uploader:     store,
	})
	if err != nil {
		var perr *publish.Error
		if errors.As(err, &perr) {
			_, _ = fmt.Fprintf(stderr, "capctl-publish: stage %s failed: %v\n", perr.Stage, perr.Err)
		} else {
			_, _ = fmt.Fprintf(stderr, "capctl-publish: %v\n", err)
		}
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(h); err != nil {
		_, _ = fmt.Fprintf(stderr, "capctl-publish: %v\n", err)
		return 1
	}
	return 0
}
