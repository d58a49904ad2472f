package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AnalysisCycles counts finished interaction cycles by surface and final state
	AnalysisCycles = Counter(
		"health_advisor_analysis_cycles_total",
		"Analysis cycles by surface and terminal state",
		"surface", "state",
	)

	// AnalysisFailures counts failed model calls by kind
	AnalysisFailures = Counter(
		"health_advisor_analysis_failures_total",
		"Failed generative model calls by kind",
		"kind",
	)

	// ValidationFailures counts rejected inputs by field
	ValidationFailures = Counter(
		"health_advisor_validation_failures_total",
		"Rejected form inputs by field",
		"field",
	)

	// AnalysisLatency tracks the duration of model calls
	AnalysisLatency = Histogram(
		"health_advisor_analysis_latency_seconds",
		"Latency of generative model calls in seconds",
		[]float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		"outcome",
	)

	// HTTPRequests counts web requests
	HTTPRequests = Counter(
		"health_advisor_http_requests_total",
		"Web requests by route, method and status",
		"route", "method", "status",
	)
)

func Counter(name, help string, labelKeys ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labelKeys,
	)
}

func Inc(c *prometheus.CounterVec, labels prometheus.Labels) {
	c.With(labels).Inc()
}

func Histogram(name, help string, buckets []float64, labelKeys ...string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labelKeys,
	)
}

func Observe(h *prometheus.HistogramVec, labels prometheus.Labels, v float64) {
	h.With(labels).Observe(v)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
