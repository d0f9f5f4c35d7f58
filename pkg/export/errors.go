package export

import (
	"errors"
	"fmt"
)

// Encoder lifecycle sentinels. Wrapped by EncodeError or LifecycleError
// when surfaced from a pipeline; match with errors.Is.
var (
	// ErrNotStarted is returned when EncodeRow or Finish is called before
	// Start.
	ErrNotStarted = errors.New("encoder not started")
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("encoder already started")
	// ErrFinished is returned when an encoder is used after Finish.
	ErrFinished = errors.New("encoder already finished")
	// ErrPipelineReused is returned when Run is called on a pipeline that
	// has already run.
	ErrPipelineReused = errors.New("pipeline already ran")
)

// SourceError represents a row production failure.
type SourceError struct {
	Format Format // Export format of the failed run
	Rows   int64  // Rows successfully delivered before the failure
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("source error [format=%s, rows=%d]: %v", e.Format, e.Rows, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// NewSourceError creates a new SourceError.
func NewSourceError(format Format, rows int64, cause error) *SourceError {
	return &SourceError{
		Format: format,
		Rows:   rows,
		Cause:  cause,
	}
}

// EncodeError represents a row that violates a format's representability
// constraints, or a failure in an encoder's own framing work (schema
// construction, footer write).
type EncodeError struct {
	Format Format // Export format being produced
	Row    int64  // Zero-based index of the offending row; -1 for frame work
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("encode error [format=%s]: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("encode error [format=%s, row=%d]: %v", e.Format, e.Row, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *EncodeError) Unwrap() error {
	return e.Cause
}

// NewEncodeError creates a new EncodeError.
func NewEncodeError(format Format, row int64, cause error) *EncodeError {
	return &EncodeError{
		Format: format,
		Row:    row,
		Cause:  cause,
	}
}

// SinkError represents a rejected write to the destination.
type SinkError struct {
	Format Format // Export format being produced
	Bytes  int64  // Bytes successfully written before the failure
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *SinkError) Error() string {
	return fmt.Sprintf("sink error [format=%s, bytes_written=%d]: %v", e.Format, e.Bytes, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *SinkError) Unwrap() error {
	return e.Cause
}

// NewSinkError creates a new SinkError.
func NewSinkError(format Format, bytes int64, cause error) *SinkError {
	return &SinkError{
		Format: format,
		Bytes:  bytes,
		Cause:  cause,
	}
}

// LifecycleError represents a resource acquisition or release failure, or
// a misuse of the pipeline lifecycle itself.
type LifecycleError struct {
	Format Format // Export format of the run
	Op     string // Operation that failed ("acquire", "release", "run")
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *LifecycleError) Error() string {
	return fmt.Sprintf("lifecycle error [format=%s, op=%s]: %v", e.Format, e.Op, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *LifecycleError) Unwrap() error {
	return e.Cause
}

// NewLifecycleError creates a new LifecycleError.
func NewLifecycleError(format Format, op string, cause error) *LifecycleError {
	return &LifecycleError{
		Format: format,
		Op:     op,
		Cause:  cause,
	}
}
