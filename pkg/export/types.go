package export

import (
	"fmt"
	"strings"
	"time"
)

// Row is one record from the data source, keyed by source field name.
// Values may be nil, strings, numbers, booleans, time.Time, []byte, or
// nested maps/slices. Rows are read-only to the encoders and are not
// retained beyond one encode step.
type Row map[string]any

// Format identifies one of the supported output formats.
type Format string

const (
	// FormatCSV is delimited text: a bare header line followed by one
	// fully quoted line per row.
	FormatCSV Format = "csv"
	// FormatJSON is a single document holding an array of objects with
	// native value types.
	FormatJSON Format = "json"
	// FormatXML is markup: an XML declaration, one <record> element per
	// row, wrapped in a <records> root.
	FormatXML Format = "xml"
	// FormatParquet is columnar binary: a Parquet file whose columns are
	// all optional strings.
	FormatParquet Format = "parquet"
)

// Formats lists all supported formats in display order.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatXML, FormatParquet}
}

// ParseFormat resolves a user-supplied format name. Matching is
// case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	case FormatParquet:
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: csv, json, xml, parquet)", s)
	}
}

// Column maps one source field to one output name.
type Column struct {
	// Source is the field name looked up in each Row.
	Source string
	// Target is the name that appears in the output (CSV header cell,
	// JSON key, XML element name, Parquet column name).
	Target string
}

// Projection is the ordered list of columns applied by every encoder.
// It is immutable for the lifetime of one export.
type Projection []Column

// Validate checks that the projection is usable: non-empty, no blank
// source or target names, and no duplicate targets.
func (p Projection) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("projection must contain at least one column")
	}

	seen := make(map[string]struct{}, len(p))
	for i, col := range p {
		if col.Source == "" {
			return fmt.Errorf("column %d: source name must not be empty", i)
		}
		if col.Target == "" {
			return fmt.Errorf("column %d: target name must not be empty", i)
		}
		if _, dup := seen[col.Target]; dup {
			return fmt.Errorf("column %d: duplicate target name %q", i, col.Target)
		}
		seen[col.Target] = struct{}{}
	}

	return nil
}

// Targets returns the target names in projection order.
func (p Projection) Targets() []string {
	targets := make([]string, len(p))
	for i, col := range p {
		targets[i] = col.Target
	}
	return targets
}

// Result summarizes a completed export run.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string
	// Format is the output format that was produced.
	Format Format
	// Rows is the number of rows encoded.
	Rows int64
	// Bytes is the total number of bytes handed to the sink, frames
	// included.
	Bytes int64
	// Duration is the wall-clock time of the run.
	Duration time.Duration
}
