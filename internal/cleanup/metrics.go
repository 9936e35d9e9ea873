package cleanup

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeCompleted = "completed"
	outcomeCancelled = "cancelled"
	outcomeMissing   = "missing_dir"
	outcomeFailed    = "failed"
)

const (
	reasonExhausted  = "retries_exhausted"
	reasonNotFound   = "not_found"
	reasonPermission = "permission"
	reasonCancelled  = "cancelled"
	reasonOther      = "other"
)

// Metrics exports sweep accounting to prometheus. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	sweepsTotal    *prometheus.CounterVec
	filesDeleted   prometheus.Counter
	bytesFreed     prometheus.Counter
	deleteFailures *prometheus.CounterVec
	deleteRetries  prometheus.Counter
	sweepDuration  prometheus.Histogram
	lastSweep      prometheus.Gauge
}

// NewMetrics creates the cleanup collectors and registers them on reg
// (prometheus.DefaultRegisterer when nil).
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		sweepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cleanup_sweeps_total",
				Help:      "Total number of cleanup sweeps by outcome",
			},
			[]string{"outcome"},
		),
		filesDeleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cleanup_files_deleted_total",
				Help:      "Total number of telemetry files deleted",
			},
		),
		bytesFreed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cleanup_bytes_freed_total",
				Help:      "Total bytes reclaimed by deleting telemetry files",
			},
		),
		deleteFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cleanup_delete_failures_total",
				Help:      "Telemetry files left in place, by reason",
			},
			[]string{"reason"},
		),
		deleteRetries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cleanup_delete_retries_total",
				Help:      "Delete attempts repeated after a transient failure",
			},
		),
		sweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cleanup_sweep_duration_seconds",
				Help:      "Duration of cleanup sweeps",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30},
			},
		),
		lastSweep: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cleanup_last_sweep_timestamp_seconds",
				Help:      "Unix time of the last finished sweep",
			},
		),
	}

	reg.MustRegister(
		m.sweepsTotal,
		m.filesDeleted,
		m.bytesFreed,
		m.deleteFailures,
		m.deleteRetries,
		m.sweepDuration,
		m.lastSweep,
	)

	return m
}

func (m *Metrics) observeSweep(outcome string, result Result, duration time.Duration) {
	if m == nil {
		return
	}
	m.sweepsTotal.WithLabelValues(outcome).Inc()
	m.filesDeleted.Add(float64(result.FilesDeleted))
	m.bytesFreed.Add(float64(result.SpaceFreedBytes))
	m.sweepDuration.Observe(duration.Seconds())
	m.lastSweep.SetToCurrentTime()
}

func (m *Metrics) incFailure(reason string) {
	if m == nil {
		return
	}
	m.deleteFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) incRetry() {
	if m == nil {
		return
	}
	m.deleteRetries.Inc()
}
