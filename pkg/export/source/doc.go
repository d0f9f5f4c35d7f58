// Package source provides Row Source implementations for the export
// pipeline.
//
// Two sources are included:
//
//   - MemorySource: a fixed in-memory row set, intended for tests and
//     examples. It can inject delays and failures to exercise pipeline
//     behavior.
//   - SQLSource: a streaming database/sql query. Rows are scanned
//     generically from the result set's column list, so any driver works;
//     the rowport CLI registers sqlite (modernc.org/sqlite), postgres
//     (lib/pq), and mysql (go-sql-driver/mysql).
//
// Both implement export.Source: production runs in a goroutine that
// feeds a small buffered channel and suspends when the pipeline stops
// reading. Fetch failures are delivered on the error channel before the
// channels close.
package source
