package outbox

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the outbox relay.
type Metrics struct {
	Published       prometheus.Counter
	PublishFailures prometheus.Counter
	Backlog         prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Published: factory.NewCounter(prometheus.CounterOpts{
			Name: "kabal_outbox_published_total",
			Help: "Total number of outbox records delivered to Kafka",
		}),
		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "kabal_outbox_publish_failures_total",
			Help: "Total number of relay batches that failed to produce",
		}),
		Backlog: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kabal_outbox_last_batch_size",
			Help: "Number of unpublished records fetched in the last relay pass",
		}),
	}
}

func (m *Metrics) addPublished(n int) {
	if m != nil {
		m.Published.Add(float64(n))
	}
}

func (m *Metrics) incFailures() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}

func (m *Metrics) setBacklog(n int) {
	if m != nil {
		m.Backlog.Set(float64(n))
	}
}
