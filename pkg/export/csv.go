package export

import (
	"bytes"
	"strings"
)

// csvEncoder produces delimited-text output: a bare header line of target
// names followed by one line per row with every field quoted.
//
// The stdlib csv writer quotes fields only when necessary; this format
// quotes unconditionally, trading size for parse-safety, so lines are
// assembled by hand.
type csvEncoder struct {
	proj  Projection
	state encoderState
	buf   bytes.Buffer
}

func newCSVEncoder(proj Projection) *csvEncoder {
	return &csvEncoder{proj: proj}
}

// Format returns FormatCSV.
func (e *csvEncoder) Format() Format {
	return FormatCSV
}

// Start emits the header line: target names joined by commas, unquoted,
// newline-terminated.
func (e *csvEncoder) Start() ([]byte, error) {
	if err := e.state.checkStart(); err != nil {
		return nil, err
	}

	e.buf.Reset()
	for i, col := range e.proj {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.buf.WriteString(col.Target)
	}
	e.buf.WriteByte('\n')

	return e.buf.Bytes(), nil
}

// EncodeRow emits one line: every projected value normalized, embedded
// quotes doubled, wrapped in quotes, comma-joined, newline-terminated.
// A missing source field yields an empty quoted field, not an error.
func (e *csvEncoder) EncodeRow(row Row) ([]byte, error) {
	if err := e.state.checkRow(); err != nil {
		return nil, err
	}

	e.buf.Reset()
	for i, col := range e.proj {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		field := Normalize(row[col.Source])
		e.buf.WriteByte('"')
		e.buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		e.buf.WriteByte('"')
	}
	e.buf.WriteByte('\n')

	return e.buf.Bytes(), nil
}

// Finish terminates the encoder. The format has no footer.
func (e *csvEncoder) Finish() ([]byte, error) {
	if err := e.state.checkFinish(); err != nil {
		return nil, err
	}
	return nil, nil
}
