// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package api serves the capctl control API: deeplink submission, registry
// listing and session snapshots.
package api

import (
	"net/http"
	"sync"

	"github.com/ManuGH/capctl/internal/control/middleware"
	"github.com/ManuGH/capctl/internal/deeplink"
	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/ManuGH/capctl/internal/health"
)

// SessionReader exposes the read side of the session controller.
type SessionReader interface {
	Snapshot() model.Snapshot
}

// Config holds the HTTP-level settings of the control API.
type Config struct {
	// RateLimit guards the deeplink endpoint. A zero RequestLimit disables it.
	RateLimit middleware.RateLimitConfig
	// TracingService names the server spans; empty disables tracing.
	TracingService string
}

// Server represents the HTTP control API server.
type Server struct {
	cfg        Config
	dispatcher *deeplink.Dispatcher
	session    SessionReader
	health     *health.Manager

	once    sync.Once
	handler http.Handler
}

// New creates a server. health may be nil, in which case /healthz and
// /readyz answer from an empty manager.
func New(cfg Config, dispatcher *deeplink.Dispatcher, session SessionReader, hm *health.Manager) *Server {
	if hm == nil {
		hm = health.NewManager("")
	}
	return &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		session:    session,
		health:     hm,
	}
}

// Handler returns the fully wired router. It is built once.
func (s *Server) Handler() http.Handler {
	s.once.Do(func() {
		s.handler = s.routes()
	})
	return s.handler
}
