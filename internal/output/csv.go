package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jmylchreest/leadrank/pkg/leads"
)

// CSVWriter writes leads as CSV with the canonical and derived columns.
// Null revenue and missing tech stacks are written as empty cells.
type CSVWriter struct {
	w             *csv.Writer
	headerWritten bool
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write writes a single lead, preceded by the header on first use.
func (w *CSVWriter) Write(data any) error {
	l, err := asLead(data)
	if err != nil {
		return err
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	return w.w.Write(csvRecord(l))
}

// WriteAll writes multiple leads.
func (w *CSVWriter) WriteAll(data []any) error {
	for _, item := range data {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes the header if nothing was written and flushes the buffer.
func (w *CSVWriter) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}

// Close flushes the writer.
func (w *CSVWriter) Close() error {
	return w.Flush()
}

func (w *CSVWriter) writeHeader() error {
	if w.headerWritten {
		return nil
	}
	w.headerWritten = true
	return w.w.Write(leads.Columns())
}

func csvRecord(l leads.Lead) []string {
	revenue := ""
	if l.HasRevenue() {
		revenue = strconv.FormatFloat(l.Revenue(), 'f', -1, 64)
	}
	return []string{
		l.CompanyName,
		l.ContactName,
		l.Website,
		l.Industry,
		revenue,
		strconv.FormatFloat(l.YearsInBusiness, 'f', -1, 64),
		strconv.Itoa(l.Score),
		strconv.FormatBool(l.Legacy),
		l.Stack(),
	}
}

func asLead(data any) (leads.Lead, error) {
	switch v := data.(type) {
	case leads.Lead:
		return v, nil
	case *leads.Lead:
		if v != nil {
			return *v, nil
		}
	}
	return leads.Lead{}, fmt.Errorf("unsupported item type %T: expected leads.Lead", data)
}
