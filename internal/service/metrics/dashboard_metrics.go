package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	DashboardLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pricelens",
			Subsystem: "dashboard",
			Name:      "latency_seconds",
			Help:      "Latency of dashboard operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DashboardErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricelens",
			Subsystem: "dashboard",
			Name:      "errors_total",
			Help:      "Errors by dashboard operation",
		},
		[]string{"operation"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricelens",
			Subsystem: "dashboard",
			Name:      "cache_hits_total",
			Help:      "Cache hits and misses by kind",
		},
		[]string{"kind", "outcome"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(DashboardLatency, DashboardErrors, CacheHits)
	})
}
