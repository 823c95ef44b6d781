// Package metrics exposes Prometheus instrumentation for the estimation
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// EstimatesTotal counts completed estimations by method
	EstimatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bill_optimizer_estimates_total",
			Help: "Total number of bill estimations by method",
		},
		[]string{"method"},
	)

	// FallbacksTotal counts model-path failures that degraded to the
	// deterministic path
	FallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bill_optimizer_fallbacks_total",
			Help: "Total number of estimations that fell back, by reason",
		},
		[]string{"reason"},
	)

	// RequestDuration observes HTTP request latency
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bill_optimizer_request_duration_seconds",
			Help:    "HTTP request duration by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(EstimatesTotal)
	prometheus.MustRegister(FallbacksTotal)
	prometheus.MustRegister(RequestDuration)
}
