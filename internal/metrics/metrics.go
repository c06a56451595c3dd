package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Possible outcome label values for upstream requests
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Recorder collects metrics about requests made to the activities API
type Recorder struct {
	registry         *prometheus.Registry
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with its own registry
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Requests made to the activities API, by operation and outcome.",
	}, []string{"operation", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of requests made to the activities API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	registry.MustRegister(requests, duration)

	return &Recorder{
		registry:         registry,
		upstreamRequests: requests,
		upstreamDuration: duration,
	}
}

// ObserveUpstream records a single upstream call
func (r *Recorder) ObserveUpstream(operation, outcome string, elapsed time.Duration) {
	r.upstreamRequests.WithLabelValues(operation, outcome).Inc()
	r.upstreamDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Handler returns the exposition handler for this recorder's registry
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry (used in tests)
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
