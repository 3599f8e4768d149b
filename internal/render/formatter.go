package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Format selects how a command renders structured results.
type Format string

const (
	// FormatText is the default human-readable text format.
	FormatText Format = "text"
	// FormatJSON is machine-readable indented JSON without color.
	FormatJSON Format = "json"
	// FormatPretty is syntax-highlighted JSON for dark terminals.
	FormatPretty Format = "pretty"
)

// ParseFormat parses a format string and validates it.
func ParseFormat(s string) (Format, error) {
	format := Format(s)
	switch format {
	case FormatText, FormatJSON, FormatPretty:
		return format, nil
	default:
		return FormatText, fmt.Errorf("invalid output format: %q (must be 'text', 'json' or 'pretty')", s)
	}
}

// Formatter writes command results in the configured format.
type Formatter struct {
	format Format
	writer io.Writer
}

// New creates a Formatter writing to stdout.
func New(format Format) *Formatter {
	return &Formatter{
		format: format,
		writer: os.Stdout,
	}
}

// SetWriter sets the output writer (useful for testing).
func (f *Formatter) SetWriter(w io.Writer) {
	f.writer = w
}

// Print renders v in the configured format. Text output uses the value's
// String method when it has one and falls back to plain indented JSON
// otherwise; strings pass through verbatim.
func (f *Formatter) Print(v any) error {
	switch f.format {
	case FormatJSON:
		return f.printJSON(v)
	case FormatPretty:
		s, err := Pretty(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.writer, s)
		return err
	case FormatText:
		return f.printText(v)
	default:
		return fmt.Errorf("unsupported output format: %s", f.format)
	}
}

func (f *Formatter) printJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "    ")
	return encoder.Encode(jsonable(v, 0))
}

func (f *Formatter) printText(v any) error {
	switch t := v.(type) {
	case string:
		_, err := fmt.Fprintln(f.writer, t)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.writer, t.String())
		return err
	default:
		return f.printJSON(v)
	}
}
