// Package metrics provides observability for the verification pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Verification outcomes by status and request type (ocr/manual)
	VerificationOutcome *prometheus.CounterVec

	// End-to-end verification latency including recognition and lookup
	VerifyLatency prometheus.Histogram

	// Alerts raised, by severity
	AlertsRaised *prometheus.CounterVec
}

// New creates a Metrics instance with all collectors registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		VerificationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "acadverify_verification_outcomes_total",
			Help: "Total verification outcomes by status and verification type",
		}, []string{"status", "type"}),

		VerifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "acadverify_verification_duration_seconds",
			Help:    "Duration of a full verification pass including recognition and lookup",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		AlertsRaised: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "acadverify_alerts_raised_total",
			Help: "Total alerts raised from verification outcomes, by severity",
		}, []string{"severity"}),
	}
}

func (m *Metrics) IncrementOutcome(status, verificationType string) {
	if m != nil {
		m.VerificationOutcome.WithLabelValues(status, verificationType).Inc()
	}
}

func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementAlert(severity string) {
	if m != nil {
		m.AlertsRaised.WithLabelValues(severity).Inc()
	}
}
