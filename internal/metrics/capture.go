// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package metrics exposes the Prometheus instruments of the capture daemon.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Action outcome labels.
const (
	OutcomeSuccess           = "success"
	OutcomeIllegalTransition = "illegal_transition"
	OutcomeNoDevice          = "no_device"
	OutcomeBackendFailure    = "backend_failure"
	OutcomeUnknown           = "unknown"
)

var (
	captureActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "capctl_capture_actions_total",
		Help: "Total number of capture actions executed by action and outcome",
	}, []string{"action", "outcome"})

	captureSessionState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "capctl_capture_session_state",
		Help: "Current recording session state (1 for the active state, 0 otherwise)",
	}, []string{"state"})

	captureBackendSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "capctl_capture_backend_call_seconds",
		Help:    "Latency of capture backend calls by action",
		Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	}, []string{"action"})
)

// RecordCaptureAction records one executed action with normalized labels.
// action ∈ {start_recording,stop_recording,pause_recording,resume_recording,switch_mic,switch_camera,unknown}
// outcome ∈ {success,illegal_transition,no_device,backend_failure,unknown}
func RecordCaptureAction(action, outcome string) {
	captureActionsTotal.WithLabelValues(normalizeActionLabel(action), normalizeOutcomeLabel(outcome)).Inc()
}

// SetSessionState marks state as the only active session state.
func SetSessionState(state string) {
	current := normalizeStateLabel(state)
	for _, s := range []string{"idle", "recording", "paused"} {
		v := 0.0
		if s == current {
			v = 1
		}
		captureSessionState.WithLabelValues(s).Set(v)
	}
}

// ObserveBackendCall records the latency of one backend invocation.
func ObserveBackendCall(action string, seconds float64) {
	captureBackendSeconds.WithLabelValues(normalizeActionLabel(action)).Observe(seconds)
}

func normalizeActionLabel(action string) string {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "start_recording", "stop_recording", "pause_recording", "resume_recording", "switch_mic", "switch_camera":
		return strings.ToLower(strings.TrimSpace(action))
	default:
		return "unknown"
	}
}

func normalizeOutcomeLabel(outcome string) string {
	switch strings.ToLower(strings.TrimSpace(outcome)) {
	case OutcomeSuccess, OutcomeIllegalTransition, OutcomeNoDevice, OutcomeBackendFailure:
		return strings.ToLower(strings.TrimSpace(outcome))
	default:
		return OutcomeUnknown
	}
}

func normalizeStateLabel(state string) string {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "idle", "recording", "paused":
		return strings.ToLower(strings.TrimSpace(state))
	default:
		return "unknown"
	}
}
