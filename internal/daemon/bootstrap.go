// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"fmt"
	"net"

	"github.com/ManuGH/capctl/internal/api"
	"github.com/ManuGH/capctl/internal/config"
	"github.com/ManuGH/capctl/internal/control/middleware"
	"github.com/ManuGH/capctl/internal/deeplink"
	"github.com/ManuGH/capctl/internal/domain/capture/controller"
	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/ManuGH/capctl/internal/domain/capture/ports"
	"github.com/ManuGH/capctl/internal/health"
	"github.com/ManuGH/capctl/internal/infra/hook"
	"github.com/ManuGH/capctl/internal/infrastructure/capture/stub"
	"github.com/ManuGH/capctl/internal/infrastructure/devices"
	"github.com/ManuGH/capctl/internal/log"
	"github.com/ManuGH/capctl/internal/telemetry"
)

const serviceName = "capctl"

// Runtime is a fully wired daemon.
type Runtime struct {
	App        *App
	Controller *controller.Controller
	Dispatcher *deeplink.Dispatcher
}

// BuildOption customizes Build.
type BuildOption func(*buildOptions)

type buildOptions struct {
	listener net.Listener
	backend  ports.CaptureBackend
}

// WithListener serves the API on ln instead of cfg.API.ListenAddr.
func WithListener(ln net.Listener) BuildOption {
	return func(o *buildOptions) { o.listener = ln }
}

// WithBackend overrides the configured capture backend.
func WithBackend(b ports.CaptureBackend) BuildOption {
	return func(o *buildOptions) { o.backend = b }
}

// Build wires the configuration into a runnable daemon. The tracer provider
// is shut down by the manager's shutdown hook.
func Build(ctx context.Context, cfg config.AppConfig, opts ...BuildOption) (*Runtime, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger := log.WithComponent("daemon")

	registry, err := deeplink.NewRegistry(cfg.Deeplink.Actions)
	if err != nil {
		return nil, err
	}

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: cfg.Version,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	var (
		source  ports.DeviceSource
		watcher DeviceWatcher
	)
	if cfg.Devices.File != "" {
		fs, err := devices.NewFileSource(cfg.Devices.File)
		if err != nil {
			_ = tp.Shutdown(ctx)
			return nil, err
		}
		source, watcher = fs, fs
	} else {
		source = devices.NewStaticSource(cfg.Devices.Microphones, cfg.Devices.Cameras)
	}

	backend := o.backend
	if backend == nil {
		backend = newBackend(cfg.Backend)
	}

	ctrl := controller.New(source, backend)
	ctrl.Prime(ctx)
	dispatcher := deeplink.NewDispatcher(registry, ctrl)

	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewDeviceChecker(source, model.DeviceMicrophone))
	hm.RegisterChecker(health.NewDeviceChecker(source, model.DeviceCamera))
	hm.RegisterChecker(health.NewFileChecker("devices.file", cfg.Devices.File))

	tracingService := ""
	if cfg.Telemetry.Enabled {
		tracingService = serviceName
	}
	server := api.New(api.Config{
		RateLimit: middleware.RateLimitConfig{
			RequestLimit: cfg.API.RateLimit.Requests,
			WindowSize:   cfg.API.RateLimit.Window,
		},
		TracingService: tracingService,
	}, dispatcher, ctrl, hm)

	mgr, err := NewManager(DefaultServerConfig(cfg.API.ListenAddr), Deps{
		Logger:     logger,
		APIHandler: server.Handler(),
		Listener:   o.listener,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	mgr.RegisterShutdownHook("telemetry", tp.Shutdown)

	logger.Info().
		Str(log.FieldEvent, "daemon.built").
		Str("backend", cfg.Backend.Kind).
		Str("device_file", cfg.Devices.File).
		Int("actions", registry.Len()).
		Msg("daemon wired")

	return &Runtime{
		App:        NewApp(logger, mgr, watcher),
		Controller: ctrl,
		Dispatcher: dispatcher,
	}, nil
}

func newBackend(cfg config.BackendConfig) ports.CaptureBackend {
	if cfg.Kind == config.BackendHook {
		return hook.NewRunner(cfg.Hooks, cfg.Timeout)
	}
	return stub.NewAdapter()
}
