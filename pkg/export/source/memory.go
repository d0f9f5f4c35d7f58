package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"helios-data/rowport/pkg/export"
)

// rowBuffer is the row channel capacity shared by all sources. It bounds
// the number of rows in flight between producer and pipeline.
const rowBuffer = 100

// MemorySource implements export.Source over a fixed slice of rows.
// This implementation is intended for tests and examples.
type MemorySource struct {
	// Delay pauses production before each row. Useful for exercising
	// cancellation and backpressure in tests.
	Delay time.Duration

	// FailAfter injects a fetch failure after that many rows were
	// produced. Negative values disable injection.
	FailAfter int

	// FailErr is the injected failure. Defaults to a generic error.
	FailErr error

	// CloseErr is returned by Close, for release-failure tests.
	CloseErr error

	rows []export.Row

	mu         sync.Mutex
	closed     bool
	closeCount int
}

// NewMemorySource creates a source over the given rows. The slice is not
// copied; callers must not mutate it during an export.
func NewMemorySource(rows []export.Row) *MemorySource {
	return &MemorySource{
		rows:      rows,
		FailAfter: -1,
	}
}

// Rows starts producing rows into a buffered channel. Both returned
// channels are closed when production stops.
func (s *MemorySource) Rows(ctx context.Context) (<-chan export.Row, <-chan error, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, nil, fmt.Errorf("memory source is closed")
	}

	rowsCh := make(chan export.Row, rowBuffer)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowsCh)
		defer close(errCh)

		for i, row := range s.rows {
			if s.FailAfter >= 0 && i >= s.FailAfter {
				errCh <- s.failure()
				return
			}

			if s.Delay > 0 {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case <-time.After(s.Delay):
				}
			}

			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case rowsCh <- row:
			}
		}
	}()

	return rowsCh, errCh, nil
}

// Close marks the source closed. It counts invocations so tests can
// assert the pipeline releases exactly once.
func (s *MemorySource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeCount++
	s.closed = true
	return s.CloseErr
}

// CloseCount returns how many times Close has been called.
func (s *MemorySource) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCount
}

func (s *MemorySource) failure() error {
	if s.FailErr != nil {
		return s.FailErr
	}
	return errors.New("injected source failure")
}
