package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Store = (*storeMetrics)(nil)

type storeMetrics struct {
	queryCounter      *prometheus.CounterVec
	failureCounter    *prometheus.CounterVec
	durationHistogram *prometheus.HistogramVec
}

func newStoreMetrics(registry *promRegistry) *storeMetrics {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_queries_total",
			Help: "Total number of document store queries by collection and operation",
		},
		[]string{"collection", "operation"},
	)

	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_query_failures_total",
			Help: "Total number of failed document store queries by collection and operation",
		},
		[]string{"collection", "operation"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_query_duration_seconds",
			Help:    "Document store query duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"collection", "operation"},
	)

	registry.registry.MustRegister(counter, failures, duration)

	return &storeMetrics{
		queryCounter:      counter,
		failureCounter:    failures,
		durationHistogram: duration,
	}
}

func (m *storeMetrics) Query(collection, operation string, duration time.Duration) {
	m.queryCounter.WithLabelValues(collection, operation).Add(1)
	m.durationHistogram.WithLabelValues(collection, operation).Observe(duration.Seconds())
}

func (m *storeMetrics) QueryFailed(collection, operation string) {
	m.failureCounter.WithLabelValues(collection, operation).Add(1)
}
