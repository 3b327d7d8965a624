package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	DashboardComputations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "dashboard_computations_total", Help: "Total dashboard computations"},
	)
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "dashboard_cache_hits_total", Help: "Total dashboard results served from cache"},
	)
	ComputeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_compute_duration_seconds",
			Help:    "Time spent loading the snapshot and computing the dashboard",
			Buckets: prometheus.DefBuckets,
		},
	)
	SnapshotErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "dashboard_snapshot_errors_total", Help: "Total failed snapshot loads"},
	)
	ExportsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "exports_created_total", Help: "Total CSV exports written"},
		[]string{"type"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"method", "route", "status"},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			DashboardComputations,
			CacheHits,
			ComputeDuration,
			SnapshotErrors,
			ExportsCreated,
			HTTPRequests,
		)
	})
}
