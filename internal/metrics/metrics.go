// Package metrics declares the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internai_cache_requests_total",
			Help: "Live job cache lookups by result",
		},
		[]string{"result"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internai_upstream_requests_total",
			Help: "Calls to upstream job sources by outcome",
		},
		[]string{"upstream", "outcome"},
	)

	Fallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "internai_fallback_total",
			Help: "Live searches answered from the local job store after an upstream failure",
		},
	)

	LLMDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "internai_llm_duration_seconds",
			Help:    "Duration of LLM chat completion calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"outcome"},
	)
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
