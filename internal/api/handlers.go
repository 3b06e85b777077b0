// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ManuGH/capctl/internal/deeplink"
)

const maxRequestBody = 16 << 10

// DeeplinkRequest is the body of POST /api/v1/deeplinks.
type DeeplinkRequest struct {
	URL string `json:"url"`
}

// ActionsResponse lists the registry.
type ActionsResponse struct {
	Scheme  string           `json:"scheme"`
	Actions []deeplink.Entry `json:"actions"`
}

func (s *Server) handleDeeplink(w http.ResponseWriter, r *http.Request) {
	var req DeeplinkRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, r, http.StatusBadRequest, "api/invalid_request", "Invalid Request", CodeInvalidRequest,
			"request body must be a JSON object with a url field", nil)
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeProblem(w, r, http.StatusBadRequest, "api/invalid_request", "Invalid Request", CodeInvalidRequest,
			"request body must contain a single JSON object", nil)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeProblem(w, r, http.StatusBadRequest, "api/invalid_request", "Invalid Request", CodeInvalidRequest,
			"url is required", nil)
		return
	}

	out, err := s.dispatcher.Handle(r.Context(), req.URL)
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, ActionsResponse{
		Scheme:  deeplink.Scheme,
		Actions: s.dispatcher.Registry().Entries(),
	})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.session.Snapshot())
}
