// Package metrics provides Prometheus metrics collection for Rowport.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring export
// activity: run counts, rows streamed, bytes written and run durations.
// Recording is guarded by the Enabled flag so one-shot CLI runs carry no
// metrics overhead.
//
// # Usage
//
//	// Create collector
//	collector := metrics.NewCollector(cfg, nil)
//
//	// Record a completed run
//	collector.RecordExport(
//		"csv",          // format
//		"success",      // status
//		15000,          // rows
//		2400000,        // bytes
//		time.Second,    // duration
//	)
//
// # Prometheus Endpoint
//
// All metrics are exposed via Handler() in standard Prometheus format:
//
//	# HELP rowport_export_runs_total Total number of export runs
//	# TYPE rowport_export_runs_total counter
//	rowport_export_runs_total{format="csv",status="success"} 1234
//
// The schedule command serves the endpoint on the configured listen
// address; one-shot exports never open a listener.
//
// # Histogram Buckets
//
// Run durations use buckets spanning milliseconds to minutes:
//
//	0.01s, 0.05s, 0.1s, 0.5s, 1s, 5s, 15s, 60s, 300s
package metrics
