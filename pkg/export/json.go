package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// jsonEncoder produces a single document holding an array of objects.
// Keys follow projection order and values keep their native types, so
// objects are assembled field by field with one json.Marshal per value
// instead of marshaling a Go map (which would sort keys).
type jsonEncoder struct {
	proj     Projection
	state    encoderState
	firstRow bool
	buf      bytes.Buffer
}

func newJSONEncoder(proj Projection) *jsonEncoder {
	return &jsonEncoder{proj: proj, firstRow: true}
}

// Format returns FormatJSON.
func (e *jsonEncoder) Format() Format {
	return FormatJSON
}

// Start emits the array-opening bracket.
func (e *jsonEncoder) Start() ([]byte, error) {
	if err := e.state.checkStart(); err != nil {
		return nil, err
	}
	return []byte("["), nil
}

// EncodeRow emits one object, preceded by a comma for every row after the
// first. A missing source field is emitted as null. A value the format
// cannot represent (a non-finite float, a cyclic structure) fails the row
// and with it the export.
func (e *jsonEncoder) EncodeRow(row Row) ([]byte, error) {
	if err := e.state.checkRow(); err != nil {
		return nil, err
	}

	e.buf.Reset()
	if !e.firstRow {
		e.buf.WriteByte(',')
	}

	e.buf.WriteByte('{')
	for i, col := range e.proj {
		if i > 0 {
			e.buf.WriteByte(',')
		}

		key, err := json.Marshal(col.Target)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", col.Target, err)
		}
		e.buf.Write(key)
		e.buf.WriteByte(':')

		value, err := marshalJSONValue(row[col.Source])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", col.Target, err)
		}
		e.buf.Write(value)
	}
	e.buf.WriteByte('}')

	e.firstRow = false
	return e.buf.Bytes(), nil
}

// Finish emits the array-closing bracket.
func (e *jsonEncoder) Finish() ([]byte, error) {
	if err := e.state.checkFinish(); err != nil {
		return nil, err
	}
	return []byte("]"), nil
}

// marshalJSONValue serializes one field value, keeping native types.
// Timestamps and byte slices get their canonical string forms rather
// than encoding/json's defaults for those types.
func marshalJSONValue(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case time.Time:
		return json.Marshal(Normalize(val))
	case []byte:
		return json.Marshal(string(val))
	default:
		return json.Marshal(val)
	}
}
