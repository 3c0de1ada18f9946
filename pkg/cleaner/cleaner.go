// Package cleaner coerces mapped, still-textual company rows into typed
// records. Rows whose required numeric fields cannot be coerced are dropped.
package cleaner

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmylchreest/leadrank/pkg/schema"
)

// ErrDropRow marks a row that must be excluded from the pipeline.
// FieldCleaners return it (usually wrapped in a *DropError) to reject a row.
var ErrDropRow = errors.New("row dropped")

// DropError explains why a row was excluded.
type DropError struct {
	Field  string
	Reason string
	Value  string
}

func (e *DropError) Error() string {
	return fmt.Sprintf("%s: %s (value %q)", e.Field, e.Reason, e.Value)
}

// Is makes errors.Is(err, ErrDropRow) true for any DropError.
func (e *DropError) Is(target error) bool {
	return target == ErrDropRow
}

// FieldCleaner fills part of a Record from a canonical row.
// The row holds cells in schema.CanonicalNames order.
type FieldCleaner interface {
	// Clean reads the raw cells it owns and writes typed values into rec.
	// Returning an error wrapping ErrDropRow excludes the row.
	Clean(row []string, rec *schema.Record) error

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

// Row is a cleaned record together with its position in the input table.
type Row struct {
	Index  int           `json:"index"`
	Record schema.Record `json:"record"`
}

// Cleaner runs a chain of FieldCleaners over every row of a canonical table.
type Cleaner struct {
	chain *ChainCleaner
}

// New creates the standard cleaner: text fields, revenue, years in business.
func New(cfg *Config) *Cleaner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Cleaner{
		chain: NewChain(
			NewText(),
			NewRevenue(cfg.RevenueStripChars),
			NewYears(),
		),
	}
}

// NewWithChain creates a cleaner from custom field cleaners.
func NewWithChain(cleaners ...FieldCleaner) *Cleaner {
	return &Cleaner{chain: NewChain(cleaners...)}
}

// Name returns the underlying chain name.
func (c *Cleaner) Name() string {
	return c.chain.Name()
}

// Clean types every row of t. Dropped rows are counted in Stats and are not
// returned. The only error is a table that is not in canonical shape.
func (c *Cleaner) Clean(t schema.Table) ([]Row, *Stats, error) {
	start := time.Now()
	stats := NewStats()
	stats.InputRows = t.Len()

	if err := checkCanonical(t); err != nil {
		return nil, stats, err
	}

	out := make([]Row, 0, t.Len())
	for i, raw := range t.Rows {
		rec, err := c.CleanRow(raw)
		if err != nil {
			var drop *DropError
			if errors.As(err, &drop) {
				stats.RecordDrop(drop.Field + "_" + drop.Reason)
			} else {
				stats.RecordDrop("other")
			}
			continue
		}
		if !rec.HasRevenue() {
			stats.RevenueNulls++
		}
		out = append(out, Row{Index: i, Record: rec})
	}

	stats.OutputRows = len(out)
	stats.Duration = time.Since(start)
	return out, stats, nil
}

// CleanRow types a single canonical row.
func (c *Cleaner) CleanRow(raw []string) (schema.Record, error) {
	var rec schema.Record
	if err := c.chain.Clean(raw, &rec); err != nil {
		return schema.Record{}, err
	}
	return rec, nil
}

func checkCanonical(t schema.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	names := schema.CanonicalNames()
	if len(t.Columns) != len(names) {
		return fmt.Errorf("%w: expected %d canonical columns, got %d", schema.ErrInvalidTable, len(names), len(t.Columns))
	}
	for i, n := range names {
		if t.Columns[i] != n {
			return fmt.Errorf("%w: column %d is %q, expected %q", schema.ErrInvalidTable, i, t.Columns[i], n)
		}
	}
	return nil
}
