// Package metrics provides Prometheus metrics for the token versioning engine
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the engine. All record methods are
// nil-receiver safe so library users can run without metrics.
type Metrics struct {
	// Version store metrics
	VersionsCreatedTotal *prometheus.CounterVec
	BreakingChangesTotal prometheus.Counter
	VersionsPrunedTotal  prometheus.Counter
	VersionSwitchesTotal prometheus.Counter
	DiffChanges          prometheus.Histogram
	StoredVersions       prometheus.Gauge

	// Migration metrics
	MigrationsAppliedTotal *prometheus.CounterVec
	MigrationStepDuration  prometheus.Histogram

	// Export metrics
	ExportsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	m := &Metrics{}

	m.VersionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenvault_versions_created_total",
			Help: "Total number of token versions created",
		},
		[]string{"bump"},
	)

	m.BreakingChangesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tokenvault_breaking_changes_total",
			Help: "Total number of versions recorded as breaking",
		},
	)

	m.VersionsPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tokenvault_versions_pruned_total",
			Help: "Total number of snapshots discarded by retention pruning",
		},
	)

	m.VersionSwitchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tokenvault_version_switches_total",
			Help: "Total number of switchToVersion calls",
		},
	)

	m.DiffChanges = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tokenvault_diff_changes",
			Help:    "Number of change records produced per structural diff",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	m.StoredVersions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tokenvault_stored_versions",
			Help: "Current number of retained snapshots",
		},
	)

	m.MigrationsAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenvault_migrations_applied_total",
			Help: "Total number of migration steps applied",
		},
		[]string{"direction"},
	)

	m.MigrationStepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tokenvault_migration_step_duration_seconds",
			Help:    "Duration of individual migration transforms in seconds",
			Buckets: []float64{.0001, .001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	m.ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tokenvault_exports_total",
			Help: "Total number of history exports",
		},
		[]string{"format"},
	)

	return m
}

// RecordVersionCreated records a createVersion with its bump kind
func (m *Metrics) RecordVersionCreated(bump string, breaking bool, changeCount int) {
	if m == nil {
		return
	}
	m.VersionsCreatedTotal.WithLabelValues(bump).Inc()
	if breaking {
		m.BreakingChangesTotal.Inc()
	}
	m.DiffChanges.Observe(float64(changeCount))
}

// RecordPruned records snapshots discarded by retention
func (m *Metrics) RecordPruned(count int) {
	if m == nil {
		return
	}
	m.VersionsPrunedTotal.Add(float64(count))
}

// RecordSwitch records a switchToVersion call
func (m *Metrics) RecordSwitch() {
	if m == nil {
		return
	}
	m.VersionSwitchesTotal.Inc()
}

// SetStoredVersions updates the retained snapshot gauge
func (m *Metrics) SetStoredVersions(n int) {
	if m == nil {
		return
	}
	m.StoredVersions.Set(float64(n))
}

// RecordMigrationStep records one applied transform
func (m *Metrics) RecordMigrationStep(direction string, duration time.Duration) {
	if m == nil {
		return
	}
	m.MigrationsAppliedTotal.WithLabelValues(direction).Inc()
	m.MigrationStepDuration.Observe(duration.Seconds())
}

// RecordExport records a history export
func (m *Metrics) RecordExport(format string) {
	if m == nil {
		return
	}
	m.ExportsTotal.WithLabelValues(format).Inc()
}
