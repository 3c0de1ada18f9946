package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/jmylchreest/leadrank/pkg/leads"
)

var tableHeader = []string{"Company", "Contact", "Industry", "Revenue", "Years", "Score", "Legacy", "Tech Stack"}

// maxCellWidth bounds free-text columns so one long value cannot blow up
// the whole table.
const maxCellWidth = 40

// TableWriter renders leads as an aligned text table for the console.
type TableWriter struct {
	w        *bufio.Writer
	rows     [][]string
	rendered bool
}

// NewTableWriter creates a table writer.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: bufio.NewWriter(w)}
}

// Write buffers a single lead.
func (w *TableWriter) Write(data any) error {
	l, err := asLead(data)
	if err != nil {
		return err
	}
	w.rows = append(w.rows, tableRow(l))
	return nil
}

// WriteAll buffers multiple leads.
func (w *TableWriter) WriteAll(data []any) error {
	for _, item := range data {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush renders the buffered rows. Widths are measured in display cells so
// wide characters stay aligned.
func (w *TableWriter) Flush() error {
	if w.rendered && len(w.rows) == 0 {
		return w.w.Flush()
	}
	w.rendered = true

	widths := make([]int, len(tableHeader))
	for _, row := range append([][]string{tableHeader}, w.rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	w.writeRow(tableHeader, widths)
	sep := make([]string, len(widths))
	for i, n := range widths {
		sep[i] = strings.Repeat("-", n)
	}
	w.writeRow(sep, widths)
	for _, row := range w.rows {
		w.writeRow(row, widths)
	}
	w.rows = nil
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TableWriter) Close() error {
	return w.Flush()
}

func (w *TableWriter) writeRow(row []string, widths []int) {
	var sb strings.Builder
	sb.WriteString("|")
	for i, cell := range row {
		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(cell, widths[i]))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
	w.w.WriteString(sb.String())
}

func tableRow(l leads.Lead) []string {
	legacy := "No"
	if l.Legacy {
		legacy = "Yes"
	}
	stack := l.Stack()
	if stack == "" {
		stack = "N/A"
	}
	return []string{
		truncate(l.CompanyName),
		truncate(l.ContactName),
		truncate(l.Industry),
		FormatRevenue(l.AnnualRevenueUSD),
		strconv.FormatFloat(l.YearsInBusiness, 'f', -1, 64),
		strconv.Itoa(l.Score),
		legacy,
		truncate(stack),
	}
}

func truncate(s string) string {
	return runewidth.Truncate(s, maxCellWidth, "...")
}

// FormatRevenue renders a revenue as "$5,000,000", or "N/A" when null.
func FormatRevenue(revenue *float64) string {
	if revenue == nil {
		return "N/A"
	}
	return "$" + humanize.Commaf(*revenue)
}
