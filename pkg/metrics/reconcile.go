package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ReconcileMetrics records daily balance rebuilds.
type ReconcileMetrics struct {
	duration   prometheus.Histogram
	rebuilds   *prometheus.CounterVec
	replayed   prometheus.Counter
	violations prometheus.Counter
}

// NewReconcileMetrics registers the rebuild metrics on the provided registerer.
func NewReconcileMetrics(reg prometheus.Registerer) *ReconcileMetrics {
	if reg == nil {
		return &ReconcileMetrics{}
	}
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "daily_balance_rebuild_duration_seconds",
		Help:    "Duration of daily balance rebuilds in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	rebuilds := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "daily_balance_rebuild_total",
		Help: "Daily balance rebuilds by outcome.",
	}, []string{"outcome"})
	replayed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "daily_balance_orders_replayed_total",
		Help: "Orders replayed into daily balances by committed rebuilds.",
	})
	violations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "daily_balance_integrity_violations_total",
		Help: "Duplicate daily_balance debts detected during sync.",
	})
	reg.MustRegister(duration, rebuilds, replayed, violations)
	return &ReconcileMetrics{
		duration:   duration,
		rebuilds:   rebuilds,
		replayed:   replayed,
		violations: violations,
	}
}

// ObserveRebuild records one rebuild attempt.
func (m *ReconcileMetrics) ObserveRebuild(outcome string, duration time.Duration) {
	if m == nil || m.rebuilds == nil {
		return
	}
	m.duration.Observe(duration.Seconds())
	m.rebuilds.WithLabelValues(outcome).Inc()
}

// AddReplayed counts orders folded into a committed rebuild.
func (m *ReconcileMetrics) AddReplayed(n int) {
	if m == nil || m.replayed == nil || n <= 0 {
		return
	}
	m.replayed.Add(float64(n))
}

// IncIntegrityViolation counts a duplicate debt detection.
func (m *ReconcileMetrics) IncIntegrityViolation() {
	if m == nil || m.violations == nil {
		return
	}
	m.violations.Inc()
}
