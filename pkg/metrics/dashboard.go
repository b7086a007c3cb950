package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DashboardMetrics records per-sub-computation timings for snapshot builds.
type DashboardMetrics struct {
	duration  *prometheus.HistogramVec
	failure   *prometheus.CounterVec
	snapshots *prometheus.CounterVec
}

// NewDashboardMetrics registers the dashboard metrics on the provided registerer.
func NewDashboardMetrics(reg prometheus.Registerer) *DashboardMetrics {
	if reg == nil {
		return &DashboardMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_query_duration_seconds",
		Help:    "Duration of dashboard sub-computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_query_failure",
		Help: "Failed dashboard sub-computations.",
	}, []string{"query"})
	snapshots := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_snapshots",
		Help: "Dashboard snapshots computed, by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(duration, failure, snapshots)
	return &DashboardMetrics{
		duration:  duration,
		failure:   failure,
		snapshots: snapshots,
	}
}

// ObserveQuery records the duration for the named sub-computation.
func (d *DashboardMetrics) ObserveQuery(query string, duration time.Duration) {
	if d == nil || d.duration == nil {
		return
	}
	d.duration.WithLabelValues(normalizeLabel(query)).Observe(duration.Seconds())
}

// IncQueryFailure increments the failure counter for the named sub-computation.
func (d *DashboardMetrics) IncQueryFailure(query string) {
	if d == nil || d.failure == nil {
		return
	}
	d.failure.WithLabelValues(normalizeLabel(query)).Inc()
}

// IncSnapshot counts a finished snapshot; outcome is "success" or "failure".
func (d *DashboardMetrics) IncSnapshot(outcome string) {
	if d == nil || d.snapshots == nil {
		return
	}
	d.snapshots.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
