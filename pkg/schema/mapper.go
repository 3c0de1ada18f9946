package schema

import (
	"fmt"
	"strings"
)

// defaultSynonyms maps normalized header names to canonical field names.
var defaultSynonyms = map[string]string{
	// Company name
	"company_name":  FieldCompanyName,
	"company":       FieldCompanyName,
	"business_name": FieldCompanyName,
	"organization":  FieldCompanyName,
	"firm":          FieldCompanyName,
	"entity":        FieldCompanyName,
	"name":          FieldCompanyName,
	"client":        FieldCompanyName,
	"business":      FieldCompanyName,

	// Contact name
	"contact_name":   FieldContactName,
	"contact":        FieldContactName,
	"person":         FieldContactName,
	"representative": FieldContactName,
	"lead":           FieldContactName,
	"owner":          FieldContactName,
	"manager":        FieldContactName,
	"ceo":            FieldContactName,
	"founder":        FieldContactName,

	// Website
	"website":  FieldWebsite,
	"url":      FieldWebsite,
	"web":      FieldWebsite,
	"site":     FieldWebsite,
	"homepage": FieldWebsite,
	"domain":   FieldWebsite,
	"link":     FieldWebsite,

	// Industry
	"industry":      FieldIndustry,
	"sector":        FieldIndustry,
	"vertical":      FieldIndustry,
	"business_type": FieldIndustry,
	"category":      FieldIndustry,
	"field":         FieldIndustry,
	"market":        FieldIndustry,
	"niche":         FieldIndustry,

	// Revenue
	"annual_revenue_usd": FieldAnnualRevenue,
	"annual_revenue":     FieldAnnualRevenue,
	"revenue":            FieldAnnualRevenue,
	"sales":              FieldAnnualRevenue,
	"turnover":           FieldAnnualRevenue,
	"income":             FieldAnnualRevenue,
	"earnings":           FieldAnnualRevenue,
	"annual_sales":       FieldAnnualRevenue,
	"yearly_revenue":     FieldAnnualRevenue,

	// Years in business
	"years_in_business": FieldYearsInBusiness,
	"age":               FieldYearsInBusiness,
	"company_age":       FieldYearsInBusiness,
	"years_operating":   FieldYearsInBusiness,
	"established":       FieldYearsInBusiness,
	"founded":           FieldYearsInBusiness,
	"years_active":      FieldYearsInBusiness,
	"business_age":      FieldYearsInBusiness,
}

// NormalizeHeader lower-cases a column name, turns spaces, hyphens and
// underscores into single underscores and drops parentheses, so that
// "Annual Revenue (USD)" becomes "annual_revenue_usd".
func NormalizeHeader(name string) string {
	name = strings.ToLower(name)
	name = strings.NewReplacer("(", "", ")", "", "-", " ", "_", " ").Replace(name)
	return strings.Join(strings.Fields(name), "_")
}

// FieldMapping describes where a canonical field's values come from.
type FieldMapping struct {
	Field     string `json:"field" yaml:"field"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"` // Original column name
	Index     int    `json:"-" yaml:"-"`                               // Source column index, -1 when defaulted
	Defaulted bool   `json:"defaulted" yaml:"defaulted"`
	Default   string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Mapping is the result of planning a header against the canonical schema.
type Mapping struct {
	Fields   []FieldMapping `json:"fields" yaml:"fields"`
	Unmapped []string       `json:"unmapped,omitempty" yaml:"unmapped,omitempty"`
}

// Defaulted returns the canonical fields that had no source column.
func (m Mapping) Defaulted() []string {
	var out []string
	for _, f := range m.Fields {
		if f.Defaulted {
			out = append(out, f.Field)
		}
	}
	return out
}

// Source returns the original column name a canonical field was mapped from.
func (m Mapping) Source(field string) (string, bool) {
	for _, f := range m.Fields {
		if f.Field == field && !f.Defaulted {
			return f.Source, true
		}
	}
	return "", false
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithSynonyms adds header synonyms. Keys are normalized with NormalizeHeader;
// values must be canonical field names, anything else is ignored.
func WithSynonyms(synonyms map[string]string) MapperOption {
	return func(m *Mapper) {
		for k, v := range synonyms {
			if !IsCanonical(v) {
				continue
			}
			m.synonyms[NormalizeHeader(k)] = v
		}
	}
}

// Mapper normalizes arbitrary column names onto the canonical schema.
type Mapper struct {
	synonyms map[string]string
	fields   []Field
}

// NewMapper creates a mapper with the built-in synonym table.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{
		synonyms: make(map[string]string, len(defaultSynonyms)),
		fields:   CanonicalFields(),
	}
	for k, v := range defaultSynonyms {
		m.synonyms[k] = v
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolve returns the canonical field a column name maps to.
func (m *Mapper) Resolve(column string) (string, bool) {
	field, ok := m.synonyms[NormalizeHeader(column)]
	return field, ok
}

// Plan maps a header onto the canonical fields without touching any rows.
// When several columns resolve to the same field the left-most one wins.
func (m *Mapper) Plan(columns []string) Mapping {
	sources := make(map[string]int, len(m.fields))
	var unmapped []string

	for i, col := range columns {
		field, ok := m.Resolve(col)
		if !ok {
			unmapped = append(unmapped, col)
			continue
		}
		if _, taken := sources[field]; taken {
			unmapped = append(unmapped, col)
			continue
		}
		sources[field] = i
	}

	mapping := Mapping{
		Fields:   make([]FieldMapping, 0, len(m.fields)),
		Unmapped: unmapped,
	}
	for _, f := range m.fields {
		fm := FieldMapping{Field: f.Name, Index: -1}
		if idx, ok := sources[f.Name]; ok {
			fm.Source = columns[idx]
			fm.Index = idx
		} else {
			fm.Defaulted = true
			fm.Default = f.Default
		}
		mapping.Fields = append(mapping.Fields, fm)
	}
	return mapping
}

// Map produces a table with exactly the six canonical columns in fixed order.
// Unmapped input columns are dropped and absent fields are filled with their
// defaults. The only failure is a structurally invalid input table.
func (m *Mapper) Map(t Table) (Table, Mapping, error) {
	if err := t.Validate(); err != nil {
		return Table{}, Mapping{}, err
	}

	mapping := m.Plan(t.Columns)
	out := Table{
		Columns: CanonicalNames(),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		mapped := make([]string, len(mapping.Fields))
		for j, fm := range mapping.Fields {
			if fm.Defaulted {
				mapped[j] = fm.Default
				continue
			}
			mapped[j] = row[fm.Index]
		}
		out.Rows[i] = mapped
	}
	return out, mapping, nil
}

// String renders the mapping as "source -> field" lines.
func (m Mapping) String() string {
	var sb strings.Builder
	for _, f := range m.Fields {
		if f.Defaulted {
			sb.WriteString(fmt.Sprintf("(default %q) -> %s\n", f.Default, f.Field))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s -> %s\n", f.Source, f.Field))
	}
	for _, c := range m.Unmapped {
		sb.WriteString(fmt.Sprintf("%s -> (dropped)\n", c))
	}
	return sb.String()
}
