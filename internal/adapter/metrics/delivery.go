package metrics

import "github.com/prometheus/client_golang/prometheus"

// DeliveryMetrics holds Prometheus metrics for the outbound delivery queue.
type DeliveryMetrics struct {
	Attempts         *prometheus.CounterVec
	DeliveryDuration prometheus.Histogram
	QueueDepth       prometheus.Gauge
	SlotWrites       *prometheus.CounterVec
}

// NewDeliveryMetrics creates and registers delivery queue metrics on the given registry.
func NewDeliveryMetrics(reg prometheus.Registerer) *DeliveryMetrics {
	m := &DeliveryMetrics{
		Attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "delivery",
			Name:      "items_total",
			Help:      "Total number of queue items handled per tick, by outcome.",
		}, []string{"outcome"}),
		DeliveryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "delivery",
			Name:      "attempt_duration_seconds",
			Help:      "Duration of a single delivery attempt in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "delivery",
			Name:      "queue_depth",
			Help:      "Number of items waiting for delivery.",
		}),
		SlotWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "delivery",
			Name:      "slot_writes_total",
			Help:      "Total number of queue slot writes, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.Attempts, m.DeliveryDuration, m.QueueDepth, m.SlotWrites)
	return m
}
