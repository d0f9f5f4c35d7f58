package export

import (
	"bytes"
	"errors"
	"testing"
)

// encodeAll drives one encoder through its full lifecycle and returns
// the concatenated output.
func encodeAll(t *testing.T, enc Encoder, rows []Row) []byte {
	t.Helper()

	var buf bytes.Buffer

	chunk, err := enc.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	buf.Write(chunk)

	for i, row := range rows {
		chunk, err = enc.EncodeRow(row)
		if err != nil {
			t.Fatalf("EncodeRow %d failed: %v", i, err)
		}
		buf.Write(chunk)
	}

	chunk, err = enc.Finish()
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	buf.Write(chunk)

	return buf.Bytes()
}

func TestNewEncoder(t *testing.T) {
	proj := Projection{{Source: "a", Target: "a"}}

	t.Run("dispatches on format", func(t *testing.T) {
		for _, format := range Formats() {
			enc, err := NewEncoder(format, proj)
			if err != nil {
				t.Fatalf("NewEncoder(%s) failed: %v", format, err)
			}
			if enc.Format() != format {
				t.Errorf("encoder reports format %q, want %q", enc.Format(), format)
			}
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		if _, err := NewEncoder(Format("avro"), proj); err == nil {
			t.Error("expected error for unknown format")
		}
	})

	t.Run("rejects invalid projection", func(t *testing.T) {
		bad := Projection{{Source: "a", Target: "x"}, {Source: "b", Target: "x"}}
		for _, format := range Formats() {
			if _, err := NewEncoder(format, bad); err == nil {
				t.Errorf("NewEncoder(%s) should reject duplicate targets", format)
			}
		}
	})
}

func TestEncoderLifecycle(t *testing.T) {
	proj := Projection{{Source: "a", Target: "a"}}
	row := Row{"a": "v"}

	for _, format := range Formats() {
		t.Run(string(format), func(t *testing.T) {
			t.Run("row before start", func(t *testing.T) {
				enc, _ := NewEncoder(format, proj)
				if _, err := enc.EncodeRow(row); !errors.Is(err, ErrNotStarted) {
					t.Errorf("expected ErrNotStarted, got %v", err)
				}
			})

			t.Run("finish before start", func(t *testing.T) {
				enc, _ := NewEncoder(format, proj)
				if _, err := enc.Finish(); !errors.Is(err, ErrNotStarted) {
					t.Errorf("expected ErrNotStarted, got %v", err)
				}
			})

			t.Run("double start", func(t *testing.T) {
				enc, _ := NewEncoder(format, proj)
				if _, err := enc.Start(); err != nil {
					t.Fatalf("Start failed: %v", err)
				}
				if _, err := enc.Start(); !errors.Is(err, ErrAlreadyStarted) {
					t.Errorf("expected ErrAlreadyStarted, got %v", err)
				}
			})

			t.Run("use after finish", func(t *testing.T) {
				enc, _ := NewEncoder(format, proj)
				if _, err := enc.Start(); err != nil {
					t.Fatalf("Start failed: %v", err)
				}
				if _, err := enc.Finish(); err != nil {
					t.Fatalf("Finish failed: %v", err)
				}
				if _, err := enc.EncodeRow(row); !errors.Is(err, ErrFinished) {
					t.Errorf("EncodeRow after Finish: expected ErrFinished, got %v", err)
				}
				if _, err := enc.Finish(); !errors.Is(err, ErrFinished) {
					t.Errorf("double Finish: expected ErrFinished, got %v", err)
				}
				if _, err := enc.Start(); !errors.Is(err, ErrFinished) {
					t.Errorf("Start after Finish: expected ErrFinished, got %v", err)
				}
			})
		})
	}
}
