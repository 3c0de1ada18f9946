// Package output handles output formatting and writing.
package output

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatJSONL, FormatYAML, FormatTable}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !slices.Contains(Formats(), f) {
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
	return f, nil
}

// Writer handles output serialization.
// CSV and table writers only accept leads.Lead items.
type Writer interface {
	// Write outputs a single result.
	Write(data any) error

	// WriteAll outputs multiple results.
	WriteAll(data []any) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
	array  bool
}

// WithPretty enables pretty-printing.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// WithArray always emits a list from JSON and YAML writers, even when a
// single item was written.
func WithArray(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.array = enabled
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		jw := NewJSONWriter(w, cfg.pretty, cfg.indent)
		jw.array = cfg.array
		return jw, nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		yw := NewYAMLWriter(w)
		yw.array = cfg.array
		return yw, nil
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatTable:
		return NewTableWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
