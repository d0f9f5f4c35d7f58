package export

import "fmt"

// Encoder is the per-format state machine converting rows to byte chunks
// with correct framing. The lifecycle is Start, zero or more EncodeRow
// calls, Finish. Encoders are single-use and not safe for concurrent use.
//
// Returned chunks remain valid only until the next call on the same
// encoder; callers must write or copy them before continuing.
type Encoder interface {
	// Format returns the format tag this encoder produces.
	Format() Format

	// Start emits the opening frame. It must be called exactly once,
	// before any row.
	Start() ([]byte, error)

	// EncodeRow emits the frame for one row. A chunk may be empty when
	// the encoder buffers internally (columnar output).
	EncodeRow(row Row) ([]byte, error)

	// Finish emits the closing frame and terminates the encoder. It must
	// only be called after a clean end-of-input.
	Finish() ([]byte, error)
}

// encoderState tracks the shared lifecycle of every encoder variant.
type encoderState int

const (
	stateCreated encoderState = iota
	stateStarted
	stateFinished
)

// checkStart validates a Start call and advances the state.
func (s *encoderState) checkStart() error {
	switch *s {
	case stateStarted:
		return ErrAlreadyStarted
	case stateFinished:
		return ErrFinished
	}
	*s = stateStarted
	return nil
}

// checkRow validates an EncodeRow call.
func (s *encoderState) checkRow() error {
	switch *s {
	case stateCreated:
		return ErrNotStarted
	case stateFinished:
		return ErrFinished
	}
	return nil
}

// checkFinish validates a Finish call and advances the state.
func (s *encoderState) checkFinish() error {
	switch *s {
	case stateCreated:
		return ErrNotStarted
	case stateFinished:
		return ErrFinished
	}
	*s = stateFinished
	return nil
}

// encoderOptions carries optional encoder tuning.
type encoderOptions struct {
	rowGroupSize int
}

// EncoderOption configures an encoder created by NewEncoder.
type EncoderOption func(*encoderOptions)

// WithRowGroupSize sets the number of rows the parquet encoder buffers
// before flushing a row group to the sink. Values below 1 keep the
// default (1000). Other formats ignore this option.
func WithRowGroupSize(n int) EncoderOption {
	return func(o *encoderOptions) {
		o.rowGroupSize = n
	}
}

// NewEncoder creates an encoder for the given format and projection.
// The projection is validated once here; encoders assume it is sound.
func NewEncoder(format Format, proj Projection, opts ...EncoderOption) (Encoder, error) {
	if err := proj.Validate(); err != nil {
		return nil, fmt.Errorf("invalid projection: %w", err)
	}

	options := encoderOptions{rowGroupSize: defaultRowGroupSize}
	for _, opt := range opts {
		opt(&options)
	}
	if options.rowGroupSize < 1 {
		options.rowGroupSize = defaultRowGroupSize
	}

	switch format {
	case FormatCSV:
		return newCSVEncoder(proj), nil
	case FormatJSON:
		return newJSONEncoder(proj), nil
	case FormatXML:
		return newXMLEncoder(proj), nil
	case FormatParquet:
		return newParquetEncoder(proj, options.rowGroupSize)
	default:
		return nil, fmt.Errorf("unknown format %q (valid: csv, json, xml, parquet)", format)
	}
}
