package export

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Source produces the rows of one export. Rows starts production and
// returns a row channel and an error channel, both closed by the
// producer when it stops. The row channel carries a small fixed buffer;
// when the consumer stops reading, production suspends on the send.
// Fetch failures arrive on the error channel before both channels close.
//
// Close releases the underlying resource (cursor, connection). The
// pipeline calls it exactly once per run, on every path.
type Source interface {
	Rows(ctx context.Context) (<-chan Row, <-chan error, error)
	Close() error
}

// Pipeline connects a Source to an Encoder to a sink and runs the
// export. One row is in flight at a time: the encoder and source only
// advance when the sink accepts the previous chunk, so memory use stays
// flat regardless of row count.
//
// A Pipeline is single-use; a second Run returns a lifecycle error.
type Pipeline struct {
	source  Source
	encoder Encoder
	sink    io.Writer
	logger  *slog.Logger

	ran     atomic.Bool
	release sync.Once
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger used for run progress. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates a pipeline over a source, an encoder, and a sink.
func NewPipeline(source Source, encoder Encoder, sink io.Writer, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		source:  source,
		encoder: encoder,
		sink:    sink,
		logger:  slog.Default().With("component", "export-pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the export and returns its totals. Any stage failure
// aborts the run immediately: the sink receives no further writes, the
// encoder's closing frame is skipped, and the source is released exactly
// once. The closing frame is written only after a clean end-of-input.
func (p *Pipeline) Run(ctx context.Context) (res *Result, err error) {
	format := p.encoder.Format()

	if !p.ran.CompareAndSwap(false, true) {
		return nil, NewLifecycleError(format, "run", ErrPipelineReused)
	}

	runID := uuid.New().String()
	start := time.Now()
	logger := p.logger.With("run_id", runID, "format", string(format))
	logger.Debug("export started")

	// Release the source on every path. A release failure surfaces only
	// when the run itself succeeded; otherwise the original error wins.
	defer func() {
		p.release.Do(func() {
			if cerr := p.source.Close(); cerr != nil {
				if err == nil {
					res = nil
					err = NewLifecycleError(format, "release", cerr)
					return
				}
				logger.Error("source release failed", "error", cerr)
			}
		})
		if err != nil {
			logger.Error("export failed", "error", err)
		}
	}()

	// An abort between rows leaves the producer parked on its channel
	// send; cancelling here unblocks it before the source is released.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rowsCh, errCh, err := p.source.Rows(ctx)
	if err != nil {
		return nil, NewLifecycleError(format, "acquire", err)
	}

	var rows, bytes int64

	write := func(chunk []byte) error {
		if len(chunk) == 0 {
			return nil
		}
		n, werr := p.sink.Write(chunk)
		bytes += int64(n)
		if werr != nil {
			return NewSinkError(format, bytes, werr)
		}
		return nil
	}

	chunk, eerr := p.encoder.Start()
	if eerr != nil {
		return nil, NewEncodeError(format, -1, eerr)
	}
	if err := write(chunk); err != nil {
		return nil, err
	}

	for {
		select {
		case <-ctx.Done():
			return nil, NewSourceError(format, rows, ctx.Err())

		case row, ok := <-rowsCh:
			if !ok {
				// End of stream; a fetch failure arrives on the error
				// channel before the row channel closes.
				if serr := <-errCh; serr != nil {
					return nil, NewSourceError(format, rows, serr)
				}
				// A cancelled producer closes its channels without an
				// error, so a closed row channel alone does not prove
				// clean end-of-input.
				if cerr := ctx.Err(); cerr != nil {
					return nil, NewSourceError(format, rows, cerr)
				}

				chunk, eerr := p.encoder.Finish()
				if eerr != nil {
					return nil, NewEncodeError(format, -1, eerr)
				}
				if err := write(chunk); err != nil {
					return nil, err
				}

				result := &Result{
					RunID:    runID,
					Format:   format,
					Rows:     rows,
					Bytes:    bytes,
					Duration: time.Since(start),
				}
				logger.Info("export finished",
					"rows", result.Rows,
					"bytes", result.Bytes,
					"duration_ms", result.Duration.Milliseconds(),
				)
				return result, nil
			}

			chunk, eerr := p.encoder.EncodeRow(row)
			if eerr != nil {
				return nil, NewEncodeError(format, rows, eerr)
			}
			if err := write(chunk); err != nil {
				return nil, err
			}
			rows++
		}
	}
}
