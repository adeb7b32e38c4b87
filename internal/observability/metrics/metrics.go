package metrics

import "github.com/prometheus/client_golang/prometheus"

// TurnMetrics exposes counters/histograms for the order-bot turn pipeline.
// All methods are nil-safe so callers can run without metrics wired.
type TurnMetrics struct {
	turnsTotal        *prometheus.CounterVec
	completionLatency prometheus.Histogram
}

func NewTurnMetrics(reg prometheus.Registerer) *TurnMetrics {
	m := &TurnMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saluzbot",
			Subsystem: "conversation",
			Name:      "turns_total",
			Help:      "Total processed turns by outcome",
		}, []string{"outcome"}),
		completionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "saluzbot",
			Subsystem: "conversation",
			Name:      "completion_latency_seconds",
			Help:      "Latency of the Gemini completion call including retries",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.completionLatency)
	return m
}

func (m *TurnMetrics) ObserveTurn(outcome string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(outcome).Inc()
}

func (m *TurnMetrics) ObserveCompletionLatency(seconds float64) {
	if m == nil {
		return
	}
	m.completionLatency.Observe(seconds)
}
