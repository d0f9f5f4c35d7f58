package sink

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a stream compression codec.
type Compression string

const (
	// CompressionNone passes bytes through unchanged.
	CompressionNone Compression = "none"
	// CompressionGzip is DEFLATE in a gzip envelope.
	CompressionGzip Compression = "gzip"
	// CompressionZstd is Zstandard.
	CompressionZstd Compression = "zstd"
	// CompressionS2 is the Snappy-compatible S2 format.
	CompressionS2 Compression = "s2"
	// CompressionLZ4 is the LZ4 frame format.
	CompressionLZ4 Compression = "lz4"
)

// ParseCompression resolves a user-supplied codec name. The empty string
// means no compression.
func ParseCompression(s string) (Compression, error) {
	switch Compression(strings.ToLower(strings.TrimSpace(s))) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionGzip:
		return CompressionGzip, nil
	case CompressionZstd:
		return CompressionZstd, nil
	case CompressionS2:
		return CompressionS2, nil
	case CompressionLZ4:
		return CompressionLZ4, nil
	default:
		return "", fmt.Errorf("unknown compression %q (valid: none, gzip, zstd, s2, lz4)", s)
	}
}

// Extension returns the conventional file name suffix for the codec,
// empty for none.
func (c Compression) Extension() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// NewWriter wraps w in the given compression codec. The returned writer
// must be closed to flush the final frame; for CompressionNone the Close
// is a no-op and the destination stays open.
func NewWriter(c Compression, w io.Writer) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("create zstd writer: %w", err)
		}
		return zw, nil
	case CompressionS2:
		return s2.NewWriter(w), nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown compression %q (valid: none, gzip, zstd, s2, lz4)", c)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
