package cleaner

import (
	"math"
	"strconv"
	"strings"

	"github.com/jmylchreest/leadrank/pkg/schema"
)

// Cell positions within a canonical row.
const (
	colCompany = iota
	colContact
	colWebsite
	colIndustry
	colRevenue
	colYears
)

// CleanText replaces non-breaking spaces and collapses runs of whitespace.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// TextCleaner copies the descriptive string fields, normalizing whitespace.
// The company name is only trimmed: it is the join key for exact-name lookups.
type TextCleaner struct{}

// NewText creates a text field cleaner.
func NewText() *TextCleaner {
	return &TextCleaner{}
}

// Clean copies company, contact, website and industry.
func (c *TextCleaner) Clean(row []string, rec *schema.Record) error {
	rec.CompanyName = strings.TrimSpace(row[colCompany])
	rec.ContactName = CleanText(row[colContact])
	rec.Website = CleanText(row[colWebsite])
	rec.Industry = CleanText(row[colIndustry])
	return nil
}

// Name returns the cleaner type.
func (c *TextCleaner) Name() string {
	return "text"
}

// RevenueCleaner strips currency formatting and parses revenue.
// Unparseable revenue becomes null; it never drops the row.
type RevenueCleaner struct {
	strip *strings.Replacer
}

// NewRevenue creates a revenue cleaner removing every rune in stripChars.
func NewRevenue(stripChars string) *RevenueCleaner {
	pairs := make([]string, 0, 2*len(stripChars))
	for _, r := range stripChars {
		pairs = append(pairs, string(r), "")
	}
	return &RevenueCleaner{strip: strings.NewReplacer(pairs...)}
}

// Clean sets AnnualRevenueUSD, or leaves it nil when coercion fails.
func (c *RevenueCleaner) Clean(row []string, rec *schema.Record) error {
	rec.AnnualRevenueUSD = nil
	raw := strings.TrimSpace(c.strip.Replace(row[colRevenue]))
	if v, ok := parseNumber(raw); ok {
		rec.AnnualRevenueUSD = &v
	}
	return nil
}

// Name returns the cleaner type.
func (c *RevenueCleaner) Name() string {
	return "revenue"
}

// YearsCleaner parses years in business and drops rows where it is
// missing or not numeric.
type YearsCleaner struct{}

// NewYears creates a years-in-business cleaner.
func NewYears() *YearsCleaner {
	return &YearsCleaner{}
}

// Clean sets YearsInBusiness or rejects the row.
func (c *YearsCleaner) Clean(row []string, rec *schema.Record) error {
	raw := strings.TrimSpace(row[colYears])
	if raw == "" {
		return &DropError{Field: schema.FieldYearsInBusiness, Reason: "missing", Value: row[colYears]}
	}
	v, ok := parseNumber(raw)
	if !ok {
		return &DropError{Field: schema.FieldYearsInBusiness, Reason: "not_numeric", Value: row[colYears]}
	}
	rec.YearsInBusiness = v
	return nil
}

// Name returns the cleaner type.
func (c *YearsCleaner) Name() string {
	return "years"
}

// parseNumber parses a finite decimal number.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
