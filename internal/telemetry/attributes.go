// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across capctl.
const (
	// Deeplink attributes
	DeeplinkURLKey     = "deeplink.url"
	DeeplinkActionKey  = "deeplink.action"
	DeeplinkMatchedKey = "deeplink.matched"
	DeeplinkMissKey    = "deeplink.miss"

	// Capture attributes
	CaptureStateKey     = "capture.state"
	CaptureSessionIDKey = "capture.session_id"
	CaptureDeviceKey    = "capture.device"

	// Publish attributes
	PublishStageKey    = "publish.stage"
	PublishArtifactKey = "publish.artifact"
	PublishDigestKey   = "publish.digest"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// DeeplinkAttributes creates span attributes for a dispatched URL.
// Empty action and miss values are omitted.
func DeeplinkAttributes(url, action, miss string, matched bool) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 4)
	attrs = append(attrs,
		attribute.String(DeeplinkURLKey, url),
		attribute.Bool(DeeplinkMatchedKey, matched),
	)
	if action != "" {
		attrs = append(attrs, attribute.String(DeeplinkActionKey, action))
	}
	if miss != "" {
		attrs = append(attrs, attribute.String(DeeplinkMissKey, miss))
	}
	return attrs
}

// CaptureAttributes creates span attributes for a committed capture result.
func CaptureAttributes(state, sessionID, device string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	attrs = append(attrs, attribute.String(CaptureStateKey, state))
	if sessionID != "" {
		attrs = append(attrs, attribute.String(CaptureSessionIDKey, sessionID))
	}
	if device != "" {
		attrs = append(attrs, attribute.String(CaptureDeviceKey, device))
	}
	return attrs
}

// PublishAttributes creates span attributes for a publish stage.
func PublishAttributes(stage, artifact string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(PublishStageKey, stage),
		attribute.String(PublishArtifactKey, artifact),
	}
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
