package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the case lifecycle coordinators.
type Metrics struct {
	// Operation outcomes by operation and result code ("ok" on success)
	Operations *prometheus.CounterVec

	OperationLatency *prometheus.HistogramVec

	// Pre-finalize validation errors by section
	ValidationErrors *prometheus.CounterVec

	// Failed calls to the legacy case-tracking mirror
	MirrorFailures *prometheus.CounterVec
}

// New registers the coordinator metrics with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kabal_behandling_operations_total",
			Help: "Total case lifecycle operations by operation and result",
		}, []string{"operation", "result"}),

		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kabal_behandling_operation_duration_seconds",
			Help:    "Duration of case lifecycle operations including the transaction",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		ValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kabal_behandling_validation_errors_total",
			Help: "Pre-finalize validation errors by section",
		}, []string{"section"}),

		MirrorFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kabal_behandling_legacy_mirror_failures_total",
			Help: "Failed legacy system mirror calls by call",
		}, []string{"call"}), // call: "assigned", "unassigned"
	}
}

// ObserveOperation records one finished operation.
func (m *Metrics) ObserveOperation(operation, result string, d time.Duration) {
	if m != nil {
		m.Operations.WithLabelValues(operation, result).Inc()
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

func (m *Metrics) IncValidationErrors(section string, n int) {
	if m != nil && n > 0 {
		m.ValidationErrors.WithLabelValues(section).Add(float64(n))
	}
}

func (m *Metrics) IncMirrorFailure(call string) {
	if m != nil {
		m.MirrorFailures.WithLabelValues(call).Inc()
	}
}
