package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "rowport"
	subsystem = "export"
)

// ExportMetrics tracks metrics for export runs.
//
// Metrics:
//   - rowport_export_runs_total: Run count by format and status
//   - rowport_export_rows_total: Rows streamed by format
//   - rowport_export_bytes_total: Bytes written by format
//   - rowport_export_duration_seconds: Run duration histogram by format
type ExportMetrics struct {
	// Total run count
	runsTotal *prometheus.CounterVec

	// Rows streamed through the pipeline
	rowsTotal *prometheus.CounterVec

	// Bytes written to the sink
	bytesTotal *prometheus.CounterVec

	// Run duration histogram
	duration *prometheus.HistogramVec
}

// NewExportMetrics creates and registers export metrics with the provided
// registry.
func NewExportMetrics(registry *prometheus.Registry) *ExportMetrics {
	em := &ExportMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "runs_total",
				Help:      "Total number of export runs",
			},
			[]string{"format", "status"},
		),

		rowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rows_total",
				Help:      "Total number of rows streamed to the sink",
			},
			[]string{"format"},
		),

		bytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "bytes_total",
				Help:      "Total number of bytes written to the sink",
			},
			[]string{"format"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Duration of export runs in seconds",
				// Small tables finish in milliseconds, large exports
				// run for minutes
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
			},
			[]string{"format"},
		),
	}

	registry.MustRegister(
		em.runsTotal,
		em.rowsTotal,
		em.bytesTotal,
		em.duration,
	)

	return em
}

// RecordExport records metrics for a completed export run.
func (em *ExportMetrics) RecordExport(format, status string, rows, bytes int64, duration time.Duration) {
	em.runsTotal.WithLabelValues(format, status).Inc()
	em.duration.WithLabelValues(format).Observe(duration.Seconds())

	if rows > 0 {
		em.rowsTotal.WithLabelValues(format).Add(float64(rows))
	}
	if bytes > 0 {
		em.bytesTotal.WithLabelValues(format).Add(float64(bytes))
	}
}
