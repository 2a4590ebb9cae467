// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hanzimap_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures handler latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hanzimap_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	// ActiveSessions tracks connected explorer sessions
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hanzimap_sessions_active",
			Help: "Number of connected explorer sessions",
		},
	)

	// Recomputations counts visible-set rebuilds by cause: root, expand or manual
	Recomputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hanzimap_recomputations_total",
			Help: "Total number of visible set recomputations",
		},
		[]string{"cause"},
	)

	// VisibleElements records the size of each recomputed visible set
	VisibleElements = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hanzimap_visible_elements",
			Help:    "Number of elements left visible after a recomputation",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// DocumentElements reports the loaded document size by group (nodes, edges)
	DocumentElements = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hanzimap_document_elements",
			Help: "Number of elements in the loaded graph document",
		},
		[]string{"group"},
	)

	// LoadFailures counts failed data source loads
	LoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hanzimap_load_failures_total",
			Help: "Total number of failed graph document loads",
		},
	)
)
