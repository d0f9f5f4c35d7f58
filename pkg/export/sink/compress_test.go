package sink

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in      string
		want    Compression
		wantErr bool
	}{
		{"", CompressionNone, false},
		{"none", CompressionNone, false},
		{"gzip", CompressionGzip, false},
		{"GZIP", CompressionGzip, false},
		{" zstd ", CompressionZstd, false},
		{"s2", CompressionS2, false},
		{"lz4", CompressionLZ4, false},
		{"brotli", "", true},
		{"gz", "", true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.in, func(t *testing.T) {
			got, err := ParseCompression(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error for %q", tt.in)
				}
				if !strings.Contains(err.Error(), "valid:") {
					t.Errorf("error does not list valid codecs: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCompression(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCompression(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompressionExtension(t *testing.T) {
	tests := []struct {
		c    Compression
		want string
	}{
		{CompressionNone, ""},
		{CompressionGzip, ".gz"},
		{CompressionZstd, ".zst"},
		{CompressionS2, ".s2"},
		{CompressionLZ4, ".lz4"},
	}
	for _, tt := range tests {
		if got := tt.c.Extension(); got != tt.want {
			t.Errorf("%s.Extension() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestCompressionRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat("rowport sample line 42,", 300))

	decompress := map[Compression]func(r io.Reader) (io.Reader, error){
		CompressionGzip: func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) },
		CompressionZstd: func(r io.Reader) (io.Reader, error) { return zstd.NewReader(r) },
		CompressionS2:   func(r io.Reader) (io.Reader, error) { return s2.NewReader(r), nil },
		CompressionLZ4:  func(r io.Reader) (io.Reader, error) { return lz4.NewReader(r), nil },
	}

	for codec, open := range decompress {
		t.Run(string(codec), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(codec, &buf)
			if err != nil {
				t.Fatalf("NewWriter failed: %v", err)
			}
			if _, err := w.Write(payload); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			if buf.Len() >= len(payload) {
				t.Errorf("compressible payload did not shrink: %d >= %d", buf.Len(), len(payload))
			}

			r, err := open(&buf)
			if err != nil {
				t.Fatalf("open reader: %v", err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("decompress: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Error("round trip does not match the payload")
			}
		})
	}
}

func TestNewWriter_NonePassesThrough(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(CompressionNone, &buf)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	if _, err := w.Write([]byte("as-is")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if buf.String() != "as-is" {
		t.Errorf("destination = %q, want %q", buf.String(), "as-is")
	}
}

func TestNewWriter_UnknownCodec(t *testing.T) {
	if _, err := NewWriter(Compression("bogus"), io.Discard); err == nil {
		t.Error("expected an error for an unknown codec")
	}
}
