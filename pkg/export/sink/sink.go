package sink

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// CountingWriter wraps a writer and counts the bytes it accepts.
// Not safe for concurrent use; the pipeline writes sequentially.
type CountingWriter struct {
	w io.Writer
	n int64
}

// NewCountingWriter wraps w.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

// Write passes p through and adds the accepted byte count.
func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Count returns the number of bytes written so far.
func (c *CountingWriter) Count() int64 {
	return c.n
}

// DigestWriter wraps a writer and maintains a running xxHash64 of the
// bytes it accepts. Not safe for concurrent use.
type DigestWriter struct {
	w io.Writer
	h *xxhash.Digest
}

// NewDigestWriter wraps w.
func NewDigestWriter(w io.Writer) *DigestWriter {
	return &DigestWriter{
		w: w,
		h: xxhash.New(),
	}
}

// Write passes p through and folds the accepted bytes into the digest.
func (d *DigestWriter) Write(p []byte) (int, error) {
	n, err := d.w.Write(p)
	if n > 0 {
		// xxhash.Digest.Write never fails.
		_, _ = d.h.Write(p[:n])
	}
	return n, err
}

// Sum64 returns the digest of everything written so far.
func (d *DigestWriter) Sum64() uint64 {
	return d.h.Sum64()
}
