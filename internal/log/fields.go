// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldSessionID = "session_id"
	FieldRequestID = "request_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldStage     = "stage"

	// Deeplink fields
	FieldURL    = "url"
	FieldAction = "action"
	FieldMiss   = "miss"
	FieldStatus = "status"

	// Device fields
	FieldDevice     = "device"
	FieldDeviceKind = "device_kind"

	// State fields
	FieldOldState = "old_state"
	FieldNewState = "new_state"

	// Path fields
	FieldPath = "path"
)
