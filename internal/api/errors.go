// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ManuGH/capctl/internal/control/http/problem"
	"github.com/ManuGH/capctl/internal/domain/capture/controller"
	"github.com/ManuGH/capctl/internal/domain/capture/lifecycle"
	"github.com/ManuGH/capctl/internal/log"
)

// Problem codes beyond the transition codes carried by lifecycle.TransitionError.
const (
	CodeNoDeviceAvailable = "NO_DEVICE_AVAILABLE"
	CodeBackendFailure    = "BACKEND_FAILURE"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInternal          = "INTERNAL"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().Err(err).
			Str(log.FieldEvent, "api.encode_failed").Msg("failed to encode response")
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, problemType, title, code, detail string, extra map[string]any) {
	problem.Write(w, r, status, problemType, title, code, detail, extra)
}

// writeActionError maps controller errors onto problem responses.
func writeActionError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		te *lifecycle.TransitionError
		de *controller.DeviceError
		be *controller.BackendError
	)
	switch {
	case errors.As(err, &te):
		writeProblem(w, r, http.StatusConflict, "capture/illegal_transition", "Illegal Transition", te.Code(), err.Error(),
			map[string]any{"state": te.From, "event": te.Event.String()})
	case errors.As(err, &de):
		writeProblem(w, r, http.StatusConflict, "capture/no_device", "No Device Available", CodeNoDeviceAvailable, err.Error(),
			map[string]any{"deviceKind": de.Kind, "known": de.Known})
	case errors.As(err, &be):
		writeProblem(w, r, http.StatusBadGateway, "capture/backend_failure", "Capture Backend Failure", CodeBackendFailure, err.Error(),
			map[string]any{"result": be.Result})
	default:
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().Err(err).
			Str(log.FieldEvent, "api.action_failed").Msg("unexpected action error")
		writeProblem(w, r, http.StatusInternalServerError, "system/internal", "Internal Server Error", CodeInternal,
			"An unexpected error occurred.", nil)
	}
}
