package metrics

import (
	"time"

	"helios-data/rowport/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the Prometheus metrics for export activity. It manages
// metric registration and provides a unified recording interface for the
// export and schedule commands.
//
// Label cardinality is bounded by construction: format has four values
// and status has two, so no limiter is needed.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Export metrics
	exportMetrics *ExportMetrics
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.exportMetrics = NewExportMetrics(registry)

	return c
}

// RecordExport records metrics for a completed export run.
//
// Parameters:
//   - format: output format name ("csv", "json", "xml", "parquet")
//   - status: run status ("success", "error")
//   - rows: number of rows streamed (0 for failed runs)
//   - bytes: number of bytes written to the sink
//   - duration: total run duration
//
// Example:
//
//	collector.RecordExport("csv", "success", 15000, 2_400_000, 1200*time.Millisecond)
func (c *Collector) RecordExport(format, status string, rows, bytes int64, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.exportMetrics.RecordExport(format, status, rows, bytes, duration)
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the /metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
