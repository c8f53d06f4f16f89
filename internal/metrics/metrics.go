package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beatporter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "beatporter_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Conversion metrics
var (
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beatporter_imports_total",
			Help: "Total number of library imports by source format and outcome",
		},
		[]string{"format", "status"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beatporter_exports_total",
			Help: "Total number of library exports by target format",
		},
		[]string{"format"},
	)

	LibrariesResident = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "beatporter_libraries_resident",
			Help: "Number of libraries currently held in memory",
		},
	)
)
