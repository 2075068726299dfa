package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the wizard service.
type Metrics struct {
	PagesRendered      *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	GateRefusals       *prometheus.CounterVec
	SubmissionsDone    prometheus.Counter
	BackendCallSeconds *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		PagesRendered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkin_pages_rendered_total",
			Help: "Wizard pages rendered, by page id",
		}, []string{"page"}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkin_validation_failures_total",
			Help: "Form submissions rejected by validation, by page id",
		}, []string{"page"}),
		GateRefusals: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkin_gate_refusals_total",
			Help: "Requests refused before page logic ran, by outcome",
		}, []string{"outcome"}),
		SubmissionsDone: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkin_submissions_completed_total",
			Help: "Check-ins submitted to the case-management backend",
		}),
		BackendCallSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "checkin_backend_call_duration_seconds",
			Help:    "Latency of case-management backend calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
	}
}
