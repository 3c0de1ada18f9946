package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidTable is returned when the input is not a usable record set,
// e.g. rows without a header or rows of differing width.
var ErrInvalidTable = errors.New("invalid record set")

// Table is a raw tabular record set. Cells are kept as text because input
// values are untrusted and may need cleaning before they can be typed.
type Table struct {
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Validate checks the structural preconditions of the table: a non-empty
// header whenever rows are present, and rows as wide as the header.
func (t Table) Validate() error {
	if len(t.Rows) > 0 && len(t.Columns) == 0 {
		return fmt.Errorf("%w: %d rows without a header", ErrInvalidTable, len(t.Rows))
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%w: row %d has %d cells, header has %d", ErrInvalidTable, i, len(row), len(t.Columns))
		}
	}
	return nil
}

// Column returns the index of the named column, or -1.
func (t Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// Record is a cleaned canonical company record. AnnualRevenueUSD is nil when
// the raw value could not be coerced to a number.
type Record struct {
	CompanyName      string   `json:"company_name" yaml:"company_name"`
	ContactName      string   `json:"contact_name" yaml:"contact_name"`
	Website          string   `json:"website" yaml:"website"`
	Industry         string   `json:"industry" yaml:"industry"`
	AnnualRevenueUSD *float64 `json:"annual_revenue_usd" yaml:"annual_revenue_usd"`
	YearsInBusiness  float64  `json:"years_in_business" yaml:"years_in_business"`
}

// HasRevenue reports whether the record carries a numeric revenue.
func (r Record) HasRevenue() bool {
	return r.AnnualRevenueUSD != nil
}

// Revenue returns the revenue value, or 0 when it is null.
func (r Record) Revenue() float64 {
	if r.AnnualRevenueUSD == nil {
		return 0
	}
	return *r.AnnualRevenueUSD
}

// Float returns a pointer to v, for building records with a revenue.
func Float(v float64) *float64 {
	return &v
}
