// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hookRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "capctl_hook_runs_total",
		Help: "Backend hook command runs by action and result",
	}, []string{"action", "result"})

	procTerminateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "capctl_proc_terminate_total",
		Help: "Signals sent to hook process groups by signal and result",
	}, []string{"signal", "result"})
)

// RecordHookRun records one hook invocation.
// result ∈ {ok,failed,timeout,skipped}
func RecordHookRun(action, result string) {
	switch result {
	case "ok", "failed", "timeout", "skipped":
	default:
		result = "failed"
	}
	hookRunsTotal.WithLabelValues(normalizeActionLabel(action), result).Inc()
}

// RecordProcTerminate records a signal delivery attempt.
// signal ∈ {SIGTERM,SIGKILL}; result ∈ {sent,gone,error}
func RecordProcTerminate(signal, result string) {
	procTerminateTotal.WithLabelValues(signal, result).Inc()
}
