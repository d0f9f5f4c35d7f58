// Package telemetry provides observability for Rowport.
//
// # Overview
//
// The telemetry package implements structured logging, Prometheus metrics
// and health check endpoints. One-shot exports only log; the schedule
// daemon additionally serves metrics and probes on a local listener.
//
// # Components
//
//   - logging: Structured logging with credential redaction
//   - metrics: Prometheus metrics for export activity
//   - health: Liveness and readiness endpoints for the schedule daemon
//
// # Usage
//
//	// Build and install the logger
//	logger, err := logging.New(logging.Config{
//	    Level:         cfg.Telemetry.Logging.Level,
//	    Format:        cfg.Telemetry.Logging.Format,
//	    RedactSecrets: true,
//	})
//	logger.Install()
//
//	// Record export metrics
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordExport("csv", "success", res.Rows, res.Bytes, elapsed)
//
//	// Serve probes next to the metrics endpoint
//	health.Mount(mux, checker, version, commit, buildTime)
//
// # Credential Protection
//
// DSNs carry database passwords, and they surface in config dumps and
// driver errors. The logging redactor masks them before anything reaches
// the log stream:
//
//   - postgres://user:hunter2@db/app → postgres://user:***@db/app
//   - password=hunter2 → password=***
package telemetry
