// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deeplinksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "capctl_deeplinks_total",
		Help: "Total number of deeplinks handled by routing result",
	}, []string{"result"})

	deviceSourceReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "capctl_device_source_reloads_total",
		Help: "Total number of device file reloads by outcome",
	}, []string{"outcome"})
)

// RecordDeeplink records the routing result of one deeplink.
// result ∈ {matched,unsupported_scheme,unknown_action,other}
func RecordDeeplink(result string) {
	deeplinksTotal.WithLabelValues(normalizeDeeplinkResultLabel(result)).Inc()
}

// RecordDeviceSourceReload records a device file reload attempt.
func RecordDeviceSourceReload(ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	deviceSourceReloadsTotal.WithLabelValues(outcome).Inc()
}

func normalizeDeeplinkResultLabel(result string) string {
	switch strings.ToLower(strings.TrimSpace(result)) {
	case "matched", "unsupported_scheme", "unknown_action":
		return strings.ToLower(strings.TrimSpace(result))
	default:
		return "other"
	}
}
