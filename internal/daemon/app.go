// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package daemon owns the capctl runtime: the API server, the device file
// watcher and signal-driven reloads.
package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ManuGH/capctl/internal/log"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DeviceWatcher is a device source that can be reloaded and watched.
// *devices.FileSource implements it.
type DeviceWatcher interface {
	Reload() error
	Watch(ctx context.Context) error
}

// App owns the long-lived runtime lifecycle and delegates server management
// to Manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	devices      DeviceWatcher
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator. devices may be nil.
func NewApp(logger zerolog.Logger, manager Manager, devices DeviceWatcher) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		devices:      devices,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts all owned background subsystems and blocks until ctx is
// cancelled or a fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	if a.devices != nil {
		// Watching is best-effort: a broken watcher must not take the API down.
		g.Go(func() error {
			if err := a.devices.Watch(ctx); err != nil {
				a.logger.Warn().Err(err).
					Str(log.FieldEvent, "devices.watch_failed").
					Msg("device file watcher stopped")
			}
			return nil
		})

		if a.reloadSignal != nil {
			g.Go(func() error {
				hup := make(chan os.Signal, 1)
				signal.Notify(hup, a.reloadSignal)
				defer signal.Stop(hup)

				for {
					select {
					case <-ctx.Done():
						return nil
					case <-hup:
						a.reloadDevices()
					}
				}
			})
		}
	}

	g.Go(func() error {
		return a.manager.Start(ctx)
	})

	return g.Wait()
}

func (a *App) reloadDevices() {
	a.logger.Info().
		Str(log.FieldEvent, "devices.reload_signal").
		Str("signal", a.reloadSignal.String()).
		Msg("received reload signal, reloading device file")

	if err := a.devices.Reload(); err != nil {
		a.logger.Warn().Err(err).
			Str(log.FieldEvent, "devices.reload_failed").
			Msg("device file reload failed, keeping previous lists")
	}
}
