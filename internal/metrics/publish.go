// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	publishStagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "capctl_publish_stages_total",
		Help: "Total number of publish pipeline stage executions by stage and outcome",
	}, []string{"stage", "outcome"})
)

// RecordPublishStage records one pipeline stage execution.
// stage ∈ {build,verify_artifact,upload,verify_upload,unknown}
func RecordPublishStage(stage string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	publishStagesTotal.WithLabelValues(normalizePublishStageLabel(stage), outcome).Inc()
}

func normalizePublishStageLabel(stage string) string {
	switch strings.ToLower(strings.TrimSpace(stage)) {
	case "build", "verify_artifact", "upload", "verify_upload":
		return strings.ToLower(strings.TrimSpace(stage))
	default:
		return "unknown"
	}
}
