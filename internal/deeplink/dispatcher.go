// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package deeplink

import (
	"context"
	"errors"
	"strings"

	"github.com/ManuGH/capctl/internal/domain/capture/controller"
	"github.com/ManuGH/capctl/internal/domain/capture/lifecycle"
	"github.com/ManuGH/capctl/internal/domain/capture/model"
	xglog "github.com/ManuGH/capctl/internal/log"
	"github.com/ManuGH/capctl/internal/metrics"
	"github.com/ManuGH/capctl/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Miss explains why a URL did not route to an action.
type Miss string

const (
	MissNone          Miss = ""
	MissScheme        Miss = "unsupported_scheme"
	MissUnknownAction Miss = "unknown_action"
)

// Executor runs a resolved action. *controller.Controller satisfies it.
type Executor interface {
	Execute(ctx context.Context, action model.Action) (model.ActionResult, error)
}

// Outcome is the routing result of one URL. A miss is not an error.
type Outcome struct {
	URL     string             `json:"url"`
	Matched bool               `json:"matched"`
	Miss    Miss               `json:"miss,omitempty"`
	Action  model.Action       `json:"action,omitzero"`
	Result  model.ActionResult `json:"result,omitzero"`
}

// Dispatcher routes URLs through a Registry into an Executor.
type Dispatcher struct {
	registry *Registry
	exec     Executor
	tracer   trace.Tracer
	logger   zerolog.Logger
}

// NewDispatcher wires a registry to an executor.
func NewDispatcher(registry *Registry, exec Executor) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		exec:     exec,
		tracer:   telemetry.Tracer("capctl/deeplink"),
		logger:   xglog.WithComponent("deeplink"),
	}
}

// Registry returns the registry the dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Handle routes one URL. Routing misses return a non-matched Outcome and a
// nil error. Executor errors are returned unchanged; for backend failures
// the Outcome still carries the committed result.
func (d *Dispatcher) Handle(ctx context.Context, url string) (Outcome, error) {
	ctx, span := d.tracer.Start(ctx, "deeplink.handle")
	defer span.End()

	out := Outcome{URL: url}
	logger := xglog.WithContext(ctx, d.logger)

	if !strings.HasPrefix(url, Scheme) {
		out.Miss = MissScheme
		return d.miss(span, logger, out), nil
	}
	action, ok := d.registry.Resolve(url)
	if !ok {
		out.Miss = MissUnknownAction
		return d.miss(span, logger, out), nil
	}

	out.Matched = true
	out.Action = action
	metrics.RecordDeeplink("matched")

	res, err := d.exec.Execute(ctx, action)
	out.Result = res
	span.SetAttributes(telemetry.DeeplinkAttributes(url, action.String(), "", true)...)
	if res.Status != "" {
		span.SetAttributes(telemetry.CaptureAttributes(string(res.State), res.SessionID, res.DeviceLabel())...)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(telemetry.ErrorAttributes(errorType(err))...)
		logger.Warn().
			Err(err).
			Str(xglog.FieldEvent, "deeplink.failed").
			Str(xglog.FieldURL, url).
			Str(xglog.FieldAction, action.String()).
			Msg("deeplink action failed")
		return out, err
	}

	logger.Info().
		Str(xglog.FieldEvent, "deeplink.dispatched").
		Str(xglog.FieldURL, url).
		Str(xglog.FieldAction, action.String()).
		Str(xglog.FieldStatus, res.Status).
		Msg("deeplink dispatched")
	return out, nil
}

// HandleAll routes each non-empty URL in order. Every URL is attempted; the
// returned errors slice is index-aligned with the outcomes.
func (d *Dispatcher) HandleAll(ctx context.Context, urls []string) ([]Outcome, []error) {
	outcomes := make([]Outcome, 0, len(urls))
	errs := make([]error, 0, len(urls))
	for _, url := range urls {
		if strings.TrimSpace(url) == "" {
			continue
		}
		out, err := d.Handle(ctx, url)
		outcomes = append(outcomes, out)
		errs = append(errs, err)
	}
	return outcomes, errs
}

func (d *Dispatcher) miss(span trace.Span, logger zerolog.Logger, out Outcome) Outcome {
	metrics.RecordDeeplink(string(out.Miss))
	span.SetAttributes(telemetry.DeeplinkAttributes(out.URL, "", string(out.Miss), false)...)
	logger.Debug().
		Str(xglog.FieldEvent, "deeplink.miss").
		Str(xglog.FieldURL, out.URL).
		Str(xglog.FieldMiss, string(out.Miss)).
		Msg("deeplink not routed")
	return out
}

func errorType(err error) string {
	switch {
	case errors.Is(err, lifecycle.ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, controller.ErrNoDeviceAvailable):
		return "no_device_available"
	case errors.Is(err, controller.ErrBackendFailure):
		return "backend_failure"
	default:
		return "other"
	}
}
