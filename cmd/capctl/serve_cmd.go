// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/ManuGH/capctl/internal/config"
	"github.com/ManuGH/capctl/internal/daemon"
	xglog "github.com/ManuGH/capctl/internal/log"
	"github.com/ManuGH/capctl/internal/version"
	"github.com/spf13/pflag"
)

func runServe(args []string, stderr io.Writer) int {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.StringP("config", "c", "", "path to config file (YAML)")
	envFile := fs.String("env-file", "", "dotenv file loaded before reading the environment")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Safe defaults until the configuration is loaded.
	xglog.Configure(xglog.Config{Level: "info", Service: "capctl", Version: version.Version})
	logger := xglog.WithComponent("daemon")

	loader := config.NewLoader(*configPath, version.Version)
	if *envFile != "" {
		loader = loader.WithEnvFile(*envFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "config.load_failed").
			Str("config_path", *configPath).
			Msg("failed to load configuration")
		return 1
	}

	xglog.Configure(xglog.Config{Level: cfg.LogLevel, Service: "capctl", Version: cfg.Version})
	logger = xglog.WithComponent("daemon")
	logger.Info().
		Str(xglog.FieldEvent, "config.loaded").
		Str("config_path", *configPath).
		Str("listen", cfg.API.ListenAddr).
		Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := daemon.Build(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "daemon.build_failed").Msg("failed to wire daemon")
		return 1
	}

	if err := rt.App.Run(ctx); err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "daemon.failed").Msg("daemon stopped with error")
		_, _ = fmt.Fprintf(stderr, "capctl: %v\n", err)
		return 1
	}
	logger.Info().Str(xglog.FieldEvent, "daemon.exit").Msg("daemon exited")
	return 0
}
