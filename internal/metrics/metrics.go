// Package metrics exposes Prometheus collectors for the soil calculator service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, route and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, route and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// VolumeCalculationsTotal tracks volume calculations by bed shape and outcome.
	VolumeCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "volume_calculations_total",
			Help: "Total number of bed volume calculations",
		},
		[]string{"shape", "status"},
	)

	// UnknownUnitsTotal counts unit tags that fell back to the default unit.
	UnknownUnitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unknown_units_total",
			Help: "Total number of unrecognised unit tags treated as the default unit",
		},
		[]string{"kind"},
	)

	// SelectionChangesTotal counts bed entry additions and removals.
	SelectionChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selection_changes_total",
			Help: "Total number of bed entries added to or removed from selections",
		},
		[]string{"operation"},
	)

	// ActiveSessions tracks the number of selection sessions held in memory.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Number of selection sessions currently held in memory",
		},
	)
)

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest records duration and count for a completed request.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	HTTPRequestTotal.WithLabelValues(method, route, code).Inc()
}

// RecordVolumeCalculation records the outcome of a volume calculation.
func RecordVolumeCalculation(shape, status string) {
	VolumeCalculationsTotal.WithLabelValues(shape, status).Inc()
}

// RecordUnknownUnit records a unit fallback for the given unit kind ("length" or "volume").
func RecordUnknownUnit(kind string) {
	UnknownUnitsTotal.WithLabelValues(kind).Inc()
}

// RecordSelectionChange records an entry "add" or "remove".
func RecordSelectionChange(operation string) {
	SelectionChangesTotal.WithLabelValues(operation).Inc()
}

// SetActiveSessions updates the session gauge.
func SetActiveSessions(n int) {
	ActiveSessions.Set(float64(n))
}
