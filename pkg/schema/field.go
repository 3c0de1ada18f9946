// Package schema defines the canonical company record and maps arbitrary
// tabular input onto it.
package schema

// FieldType represents the type of a canonical field.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
)

// Canonical field names, in output order.
const (
	FieldCompanyName     = "company_name"
	FieldContactName     = "contact_name"
	FieldWebsite         = "website"
	FieldIndustry        = "industry"
	FieldAnnualRevenue   = "annual_revenue_usd"
	FieldYearsInBusiness = "years_in_business"
)

// Derived field names appended by the scoring pipeline.
const (
	FieldScore     = "ai_acquisition_score"
	FieldLegacy    = "legacy_tech_flag"
	FieldTechStack = "simulated_tech_stack"
)

// Field describes a single canonical field.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Type        FieldType `json:"type" yaml:"type"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Default     string    `json:"default" yaml:"default"` // Filled when the input has no matching column
}

var canonicalFields = []Field{
	{Name: FieldCompanyName, Type: TypeString, Description: "Company name, join key for tech lookups", Required: true},
	{Name: FieldContactName, Type: TypeString, Description: "Primary contact", Default: "N/A"},
	{Name: FieldWebsite, Type: TypeString, Description: "Company website", Default: "N/A"},
	{Name: FieldIndustry, Type: TypeString, Description: "Industry or sector", Default: "General"},
	{Name: FieldAnnualRevenue, Type: TypeNumber, Description: "Annual revenue in USD", Default: "1000000"},
	{Name: FieldYearsInBusiness, Type: TypeNumber, Description: "Years the company has operated", Required: true, Default: "5"},
}

// CanonicalFields returns the six canonical fields in their fixed order.
func CanonicalFields() []Field {
	out := make([]Field, len(canonicalFields))
	copy(out, canonicalFields)
	return out
}

// CanonicalNames returns the canonical field names in their fixed order.
func CanonicalNames() []string {
	names := make([]string, len(canonicalFields))
	for i, f := range canonicalFields {
		names[i] = f.Name
	}
	return names
}

// IsCanonical reports whether name is one of the six canonical field names.
func IsCanonical(name string) bool {
	for _, f := range canonicalFields {
		if f.Name == name {
			return true
		}
	}
	return false
}
