package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	sourceFetches *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	snapshotSize  prometheus.Gauge
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		sourceFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricelens_source_fetches_total",
				Help: "Total number of backend source fetches",
			},
			[]string{"kind"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricelens_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		snapshotSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pricelens_snapshot_products",
				Help: "Number of products in the last snapshot",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pricelens_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSourceFetch records a fetch against the backend source.
func (r *Recorder) RecordSourceFetch(kind string) {
	r.sourceFetches.WithLabelValues(kind).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSnapshotSize records the product count of the last snapshot.
func (r *Recorder) RecordSnapshotSize(products int) {
	r.snapshotSize.Set(float64(products))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
