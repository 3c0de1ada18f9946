// Package ingest loads company tables from CSV and JSON sources.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/leadrank/internal/logger"
	"github.com/jmylchreest/leadrank/pkg/schema"
)

// Format is an input file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var (
	// ErrEmptyInput is returned when the source has no header at all.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnsupportedFormat is returned for file types other than CSV and JSON.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrMalformedInput is returned when the source cannot be parsed.
	ErrMalformedInput = errors.New("malformed input")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFormat picks the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// LoadFile reads a table from path. An empty format is detected from the
// file extension.
func LoadFile(path string, format Format) (schema.Table, error) {
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return schema.Table{}, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return schema.Table{}, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	t, err := Read(f, format)
	if err != nil {
		return schema.Table{}, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("input loaded",
		"path", path,
		"format", format,
		"columns", len(t.Columns),
		"rows", t.Len())
	return t, nil
}

// Read parses a table from r in the given format.
func Read(r io.Reader, format Format) (schema.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return schema.Table{}, fmt.Errorf("failed to read input: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return schema.Table{}, ErrEmptyInput
	}

	switch format {
	case FormatCSV:
		return parseCSV(data)
	case FormatJSON:
		return parseJSON(data)
	default:
		return schema.Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
