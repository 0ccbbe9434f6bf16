package metrics

import "github.com/prometheus/client_golang/prometheus"

// SentimentMetrics holds Prometheus metrics for the sentiment classifier.
type SentimentMetrics struct {
	Analyses         *prometheus.CounterVec
	Fallbacks        *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
}

// NewSentimentMetrics creates and registers classifier metrics on the given registry.
func NewSentimentMetrics(reg prometheus.Registerer) *SentimentMetrics {
	m := &SentimentMetrics{
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sentiment",
			Name:      "analyses_total",
			Help:      "Total number of analyses, by the source that produced the result.",
		}, []string{"source"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sentiment",
			Name:      "remote_fallbacks_total",
			Help:      "Total number of remote analyses that fell back to the local heuristic, by reason.",
		}, []string{"reason"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sentiment",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of an analysis in seconds, by source.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.05, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
	}

	reg.MustRegister(m.Analyses, m.Fallbacks, m.AnalysisDuration)
	return m
}
