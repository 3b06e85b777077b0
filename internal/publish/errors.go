// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package publish

import (
	"errors"
	"fmt"
)

// Stage names one pipeline step.
type Stage string

const (
	StageBuild          Stage = "build"
	StageVerifyArtifact Stage = "verify_artifact"
	StageUpload         Stage = "upload"
	StageVerifyUpload   Stage = "verify_upload"
)

// Stages lists the pipeline steps in execution order.
func Stages() []Stage {
	return []Stage{StageBuild, StageVerifyArtifact, StageUpload, StageVerifyUpload}
}

var (
	ErrBuildFailed     = errors.New("build failed")
	ErrArtifactMissing = errors.New("artifact missing")
	ErrUploadFailed    = errors.New("upload failed")
	ErrUploadRejected  = errors.New("upload rejected")

	// ErrInvalidConfig is returned before any stage runs when Config lacks a
	// builder, an uploader or an artifact path. It is never wrapped in *Error.
	ErrInvalidConfig = errors.New("invalid publish config")
)

// kindFor maps a stage to the sentinel its failures match.
func kindFor(s Stage) error {
	switch s {
	case StageBuild:
		return ErrBuildFailed
	case StageVerifyArtifact:
		return ErrArtifactMissing
	case StageUpload:
		return ErrUploadFailed
	case StageVerifyUpload:
		return ErrUploadRejected
	default:
		return nil
	}
}

// Error reports the stage that stopped the pipeline. It matches the stage's
// sentinel and the underlying cause under errors.Is.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("publish %s: %v: %v", e.Stage, kindFor(e.Stage), e.Err)
}

func (e *Error) Unwrap() []error {
	kind := kindFor(e.Stage)
	if kind == nil {
		return []error{e.Err}
	}
	return []error{kind, e.Err}
}
