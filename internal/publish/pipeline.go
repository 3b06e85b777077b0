// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package publish builds an artifact and stores it in a local artifact store.
// The four stages run in order and the first failure stops the pipeline.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"

	xglog "github.com/ManuGH/capctl/internal/log"
	"github.com/ManuGH/capctl/internal/metrics"
	"github.com/ManuGH/capctl/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Config describes one publish run.
type Config struct {
	Builder      Builder
	ArtifactPath string
	Uploader     Uploader
}

// ArtifactHandle describes a published artifact.
type ArtifactHandle struct {
	Path    string  `json:"path"`
	Size    int64   `json:"size"`
	Digest  Digest  `json:"digest"`
	Receipt Receipt `json:"receipt"`
}

// Pipeline runs publish stages with logging, metrics and tracing.
type Pipeline struct {
	logger zerolog.Logger
	tracer trace.Tracer
}

// NewPipeline creates a pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		logger: xglog.WithComponent("publish"),
		tracer: telemetry.Tracer("capctl/publish"),
	}
}

// Publish runs build, artifact verification, upload and upload verification.
// Stage failures are returned as *Error naming the stage; an incomplete
// Config yields ErrInvalidConfig.
func Publish(ctx context.Context, cfg Config) (ArtifactHandle, error) {
	return NewPipeline().Run(ctx, cfg)
}

// Run executes the pipeline for cfg.
func (p *Pipeline) Run(ctx context.Context, cfg Config) (ArtifactHandle, error) {
	ctx, span := p.tracer.Start(ctx, "publish.run")
	defer span.End()

	h := ArtifactHandle{Path: cfg.ArtifactPath}
	if cfg.Builder == nil || cfg.Uploader == nil || cfg.ArtifactPath == "" {
		return h, fmt.Errorf("%w: requires a builder, an uploader and an artifact path", ErrInvalidConfig)
	}

	err := p.stage(ctx, StageBuild, cfg.ArtifactPath, func(ctx context.Context) error {
		return cfg.Builder.Build(ctx)
	})
	if err == nil {
		err = p.stage(ctx, StageVerifyArtifact, cfg.ArtifactPath, func(context.Context) error {
			var verr error
			h.Digest, h.Size, verr = verifyArtifact(cfg.ArtifactPath)
			return verr
		})
	}
	if err == nil {
		err = p.stage(ctx, StageUpload, cfg.ArtifactPath, func(ctx context.Context) error {
			var uerr error
			h.Receipt, uerr = cfg.Uploader.Upload(ctx, cfg.ArtifactPath)
			return uerr
		})
	}
	if err == nil {
		err = p.stage(ctx, StageVerifyUpload, cfg.ArtifactPath, func(ctx context.Context) error {
			return verifyReceipt(ctx, cfg.Uploader, h)
		})
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return h, err
	}

	p.logger.Info().
		Str(xglog.FieldEvent, "publish.completed").
		Str(xglog.FieldPath, h.Path).
		Str("digest", h.Digest.String()).
		Int64("size", h.Size).
		Str("location", h.Receipt.Location).
		Msg("artifact published")
	return h, nil
}

func (p *Pipeline) stage(ctx context.Context, stage Stage, artifact string, fn func(context.Context) error) error {
	ctx, span := p.tracer.Start(ctx, "publish."+string(stage),
		trace.WithAttributes(telemetry.PublishAttributes(string(stage), artifact)...))
	defer span.End()

	logger := xglog.WithContext(ctx, p.logger).With().Str(xglog.FieldStage, string(stage)).Logger()

	if err := ctx.Err(); err != nil {
		metrics.RecordPublishStage(string(stage), false)
		return &Error{Stage: stage, Err: err}
	}
	if err := fn(ctx); err != nil {
		metrics.RecordPublishStage(string(stage), false)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error().Err(err).Str(xglog.FieldEvent, "publish.stage_failed").Msg("publish stage failed")
		return &Error{Stage: stage, Err: err}
	}
	metrics.RecordPublishStage(string(stage), true)
	logger.Debug().Str(xglog.FieldEvent, "publish.stage_ok").Msg("publish stage finished")
	return nil
}

func verifyArtifact(path string) (Digest, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Digest{}, 0, err
	}
	if !info.Mode().IsRegular() {
		return Digest{}, 0, fmt.Errorf("%s is not a regular file", path)
	}
	if info.Size() == 0 {
		return Digest{}, 0, fmt.Errorf("%s is empty", path)
	}
	return DigestFile(path)
}

func verifyReceipt(ctx context.Context, up Uploader, h ArtifactHandle) error {
	r := h.Receipt
	switch {
	case r.Location == "":
		return errors.New("receipt has no location")
	case r.Digest != h.Digest:
		return fmt.Errorf("receipt digest %s does not match artifact digest %s", r.Digest, h.Digest)
	case r.Size != h.Size:
		return fmt.Errorf("receipt size %d does not match artifact size %d", r.Size, h.Size)
	}
	if v, ok := up.(Verifier); ok {
		stored, err := v.Verify(ctx, r)
		if err != nil {
			return fmt.Errorf("re-read stored artifact: %w", err)
		}
		if stored != h.Digest {
			return fmt.Errorf("stored artifact digest %s does not match %s", stored, h.Digest)
		}
	}
	return nil
}
