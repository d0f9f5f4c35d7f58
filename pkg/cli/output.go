package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
)

// Formatter formats command output.
type Formatter interface {
	Format(data interface{}) ([]byte, error)
	FormatTo(w io.Writer, data interface{}) error
}

// TextFormatter formats output as plain text.
type TextFormatter struct{}

// Format converts data to text format.
func (f *TextFormatter) Format(data interface{}) ([]byte, error) {
	return []byte(fmt.Sprintf("%v\n", data)), nil
}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data interface{}) error {
	_, err := fmt.Fprintf(w, "%v\n", data)
	return err
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// Format converts data to JSON format.
func (f *JSONFormatter) Format(data interface{}) ([]byte, error) {
	if f.Indent {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	default:
		return &TextFormatter{}
	}
}

// Output writes user-facing command messages with quiet/verbose
// awareness. Summaries and progress go to Err so they never mix with an
// export streamed to standard output.
type Output struct {
	// Out receives primary command output. Defaults to os.Stdout.
	Out io.Writer

	// Err receives diagnostics and summaries. Defaults to os.Stderr.
	Err io.Writer

	// Quiet suppresses everything except errors.
	Quiet bool

	// Verbose enables additional detail.
	Verbose bool
}

// NewOutput creates an Output bound to the process streams.
func NewOutput(quiet, verbose bool) *Output {
	return &Output{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Quiet:   quiet,
		Verbose: verbose,
	}
}

// Printf writes a message to Out unless quiet.
func (o *Output) Printf(format string, args ...any) {
	if o.Quiet {
		return
	}
	fmt.Fprintf(o.out(), format, args...)
}

// Verbosef writes a message to Err only in verbose mode.
func (o *Output) Verbosef(format string, args ...any) {
	if o.Quiet || !o.Verbose {
		return
	}
	fmt.Fprintf(o.err(), format, args...)
}

// Errorf writes an error message to Err. Quiet does not suppress errors.
func (o *Output) Errorf(format string, args ...any) {
	fmt.Fprintf(o.err(), format, args...)
}

func (o *Output) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

func (o *Output) err() io.Writer {
	if o.Err != nil {
		return o.Err
	}
	return os.Stderr
}
