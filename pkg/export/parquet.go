package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/parquet-go/parquet-go"
)

// defaultRowGroupSize is the number of rows buffered per row group before
// encoded bytes are handed to the sink.
const defaultRowGroupSize = 1000

// parquetEncoder produces columnar-binary output. Every target column is
// declared as an optional string; all values pass through Normalize, so
// native numeric and boolean typing is intentionally not preserved.
//
// Rows are buffered into row groups of rowGroupSize rows. Completing a
// row group flushes its pages into the spill buffer, whose contents are
// the returned chunk; the sink write that follows is where backpressure
// reaches this encoder. Finish closes the writer, which appends the
// footer, and drains whatever remains. A file abandoned before Finish is
// unreadable.
type parquetEncoder struct {
	proj         Projection
	state        encoderState
	schema       *parquet.Schema
	cols         []parquetColumn
	writer       *parquet.GenericWriter[any]
	spill        bytes.Buffer
	values       []parquet.Value
	rowGroupSize int
	sinceFlush   int
}

// parquetColumn binds one projected column to its leaf position in the
// file schema. The schema orders fields by name, not projection order,
// so each source field is resolved to its column index up front.
type parquetColumn struct {
	source   string
	index    int
	defLevel int
}

func newParquetEncoder(proj Projection, rowGroupSize int) (*parquetEncoder, error) {
	group := parquet.Group{}
	for _, col := range proj {
		group[col.Target] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema("records", group)

	cols := make([]parquetColumn, 0, len(proj))
	for _, col := range proj {
		leaf, ok := schema.Lookup(col.Target)
		if !ok {
			return nil, fmt.Errorf("schema is missing column %q", col.Target)
		}
		cols = append(cols, parquetColumn{
			source:   col.Source,
			index:    leaf.ColumnIndex,
			defLevel: leaf.MaxDefinitionLevel,
		})
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].index < cols[j].index })

	return &parquetEncoder{
		proj:         proj,
		schema:       schema,
		cols:         cols,
		values:       make([]parquet.Value, len(cols)),
		rowGroupSize: rowGroupSize,
	}, nil
}

// Format returns FormatParquet.
func (e *parquetEncoder) Format() Format {
	return FormatParquet
}

// Start allocates the file writer. No row is accepted before it.
func (e *parquetEncoder) Start() ([]byte, error) {
	if err := e.state.checkStart(); err != nil {
		return nil, err
	}

	e.spill.Reset()
	e.writer = parquet.NewGenericWriter[any](&e.spill, e.schema)

	return e.drain(), nil
}

// EncodeRow appends one row to the current row group. Absent source
// fields become empty strings, still present at the definition level.
// The returned chunk is empty until a row group completes.
func (e *parquetEncoder) EncodeRow(row Row) ([]byte, error) {
	if err := e.state.checkRow(); err != nil {
		return nil, err
	}

	for i, col := range e.cols {
		s := Normalize(row[col.source])
		e.values[i] = parquet.ValueOf(s).Level(0, col.defLevel, col.index)
	}

	if _, err := e.writer.WriteRows([]parquet.Row{e.values}); err != nil {
		return nil, fmt.Errorf("append row: %w", err)
	}

	e.sinceFlush++
	if e.sinceFlush < e.rowGroupSize {
		return nil, nil
	}

	if err := e.writer.Flush(); err != nil {
		return nil, fmt.Errorf("flush row group: %w", err)
	}
	e.sinceFlush = 0

	return e.drain(), nil
}

// Finish closes the writer, which writes the final row group and the
// footer, and returns the remaining bytes.
func (e *parquetEncoder) Finish() ([]byte, error) {
	if err := e.state.checkFinish(); err != nil {
		return nil, err
	}

	if err := e.writer.Close(); err != nil {
		return nil, fmt.Errorf("write footer: %w", err)
	}

	return e.drain(), nil
}

// drain hands out the spill buffer's bytes and resets it. The returned
// slice is valid until the writer produces more output, which cannot
// happen before the next encoder call.
func (e *parquetEncoder) drain() []byte {
	if e.spill.Len() == 0 {
		return nil
	}
	chunk := e.spill.Bytes()
	e.spill.Reset()
	return chunk
}
