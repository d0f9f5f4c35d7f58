// Package export implements streaming export of tabular result sets into
// delimited-text (CSV), structured-document (JSON), markup (XML), and
// columnar-binary (Parquet) outputs.
//
// The package is built around three pieces:
//
//   - Encoder: a per-format state machine that turns rows into byte chunks
//     with correct framing (header, separators, footer)
//   - Source: a pausable producer of rows, typically backed by a database
//     cursor (see the source subpackage)
//   - Pipeline: the coordinator that connects a Source to an Encoder to an
//     io.Writer sink, one row in flight at a time
//
// # Encoders
//
// Encoders share one lifecycle: Start emits the opening frame, EncodeRow
// emits one row frame per call, Finish emits the closing frame. Every
// export produces exactly one opening and one closing frame, even when the
// source yields zero rows. Encoders are single-use; calls outside the
// lifecycle return ErrNotStarted, ErrAlreadyStarted, or ErrFinished.
//
//	enc, err := export.NewEncoder(export.FormatJSON, projection)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Column projection is uniform across formats: an ordered list of
// {Source, Target} pairs. Only target names appear in output.
//
// # Streaming Pipeline
//
// A Pipeline runs the whole export and reports totals:
//
//	p := export.NewPipeline(src, enc, w)
//	res, err := p.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("exported %d rows (%d bytes) in %s\n", res.Rows, res.Bytes, res.Duration)
//
// Rows flow strictly in source order. The pipeline holds at most one row
// beyond the source's small channel buffer, so memory use is independent
// of the result set size. When the sink blocks, the encoder and source
// block with it.
//
// # Error Handling
//
// Failures carry the stage they occurred in: SourceError, EncodeError,
// SinkError, and LifecycleError all record the export format and wrap the
// underlying cause. Any failure aborts the run; the encoder's closing
// frame is only written after a clean end-of-input, and the source is
// released exactly once on every path.
package export
