// Package metrics exposes prometheus instrumentation for the host.
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
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perch_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "perch_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "perch_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	descriptorBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perch_descriptor_builds_total",
			Help: "Total number of function descriptor builds",
		},
		[]string{"status"},
	)

	triggerProjections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perch_trigger_projections_total",
			Help: "Total number of trigger projections served to the scale controller",
		},
		[]string{"outcome"},
	)

	registryFunctions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "perch_registry_functions",
			Help: "Number of functions currently in the registry",
		},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func IncrementInFlight() {
	httpRequestsInFlight.Inc()
}

func DecrementInFlight() {
	httpRequestsInFlight.Dec()
}

// RecordDescriptorBuild counts a descriptor assembly with status "ok" or "error".
func RecordDescriptorBuild(status string) {
	descriptorBuilds.WithLabelValues(status).Inc()
}

// RecordTriggerProjection counts a trigger extraction with outcome
// "matched" or "absent".
func RecordTriggerProjection(outcome string) {
	triggerProjections.WithLabelValues(outcome).Inc()
}

func UpdateRegistrySize(count int) {
	registryFunctions.Set(float64(count))
}
