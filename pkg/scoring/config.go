// Package scoring computes the acquisition-readiness score of a cleaned
// company record from an ordered set of additive rules.
package scoring

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds every threshold and magnitude used by the scoring rules.
type Config struct {
	// BaseScore is the starting total before any rule applies.
	BaseScore int `json:"base_score" yaml:"base_score" mapstructure:"base_score"`

	// === Age rule ===

	// SeniorYears and above earns SeniorAdjust.
	SeniorYears  float64 `json:"senior_years" yaml:"senior_years" mapstructure:"senior_years" validate:"gte=0"`
	SeniorAdjust int     `json:"senior_adjust" yaml:"senior_adjust" mapstructure:"senior_adjust"`

	// MidYears up to SeniorYears earns MidAdjust.
	MidYears  float64 `json:"mid_years" yaml:"mid_years" mapstructure:"mid_years" validate:"gte=0,ltefield=SeniorYears"`
	MidAdjust int     `json:"mid_adjust" yaml:"mid_adjust" mapstructure:"mid_adjust"`

	// Below YoungYears earns YoungAdjust. Between YoungYears and MidYears nothing applies.
	YoungYears  float64 `json:"young_years" yaml:"young_years" mapstructure:"young_years" validate:"gte=0,ltefield=MidYears"`
	YoungAdjust int     `json:"young_adjust" yaml:"young_adjust" mapstructure:"young_adjust"`

	// === Revenue rule ===

	// RevenueMin..RevenueMax (inclusive) is the sweet spot.
	RevenueMin      float64 `json:"revenue_min" yaml:"revenue_min" mapstructure:"revenue_min" validate:"gte=0,ltefield=RevenueMax"`
	RevenueMax      float64 `json:"revenue_max" yaml:"revenue_max" mapstructure:"revenue_max" validate:"gte=0"`
	SweetSpotAdjust int     `json:"sweet_spot_adjust" yaml:"sweet_spot_adjust" mapstructure:"sweet_spot_adjust"`
	OutsideAdjust   int     `json:"outside_adjust" yaml:"outside_adjust" mapstructure:"outside_adjust"`

	// PenalizeNullRevenue applies OutsideAdjust to records whose revenue could
	// not be parsed. Off by default: null revenue contributes nothing.
	PenalizeNullRevenue bool `json:"penalize_null_revenue" yaml:"penalize_null_revenue" mapstructure:"penalize_null_revenue"`

	// === Industry rule ===

	// TraditionalIndustries are matched exactly against the record's industry.
	TraditionalIndustries []string `json:"traditional_industries" yaml:"traditional_industries" mapstructure:"traditional_industries" validate:"dive,required"`
	IndustryAdjust        int      `json:"industry_adjust" yaml:"industry_adjust" mapstructure:"industry_adjust"`

	// === Legacy tech ===

	// LegacyTechAdjust is added when the classifier flags the record.
	LegacyTechAdjust int `json:"legacy_tech_adjust" yaml:"legacy_tech_adjust" mapstructure:"legacy_tech_adjust"`

	// === Bounds ===

	MinScore int `json:"min_score" yaml:"min_score" mapstructure:"min_score" validate:"gte=0,lte=100,ltefield=MaxScore"`
	MaxScore int `json:"max_score" yaml:"max_score" mapstructure:"max_score" validate:"gte=0,lte=100"`
}

// DefaultTraditionalIndustries are the sectors considered prime for modernization.
var DefaultTraditionalIndustries = []string{
	"Manufacturing",
	"Retail",
	"Consulting",
	"Agency",
	"Traditional Consulting",
	"Logistics",
	"Accounting",
	"Insurance",
	"Environmental",
}

// DefaultConfig returns the standard acquisition-readiness rules.
func DefaultConfig() *Config {
	return &Config{
		BaseScore: 50,

		SeniorYears:  20,
		SeniorAdjust: 20,
		MidYears:     10,
		MidAdjust:    10,
		YoungYears:   5,
		YoungAdjust:  -10,

		RevenueMin:      3_000_000,
		RevenueMax:      10_000_000,
		SweetSpotAdjust: 15,
		OutsideAdjust:   -5,

		TraditionalIndustries: slices.Clone(DefaultTraditionalIndustries),
		IndustryAdjust:        10,

		LegacyTechAdjust: 15,

		MinScore: 0,
		MaxScore: 100,
	}
}

// Merge merges another config into this one.
// Non-zero values from other override this config; industries are appended,
// not replaced. Zero values cannot be set through Merge.
func (c *Config) Merge(other *Config) *Config {
	merged := *c
	merged.TraditionalIndustries = slices.Clone(c.TraditionalIndustries)
	if other == nil {
		return &merged
	}

	overrideInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	overrideFloat := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}

	overrideInt(&merged.BaseScore, other.BaseScore)
	overrideFloat(&merged.SeniorYears, other.SeniorYears)
	overrideInt(&merged.SeniorAdjust, other.SeniorAdjust)
	overrideFloat(&merged.MidYears, other.MidYears)
	overrideInt(&merged.MidAdjust, other.MidAdjust)
	overrideFloat(&merged.YoungYears, other.YoungYears)
	overrideInt(&merged.YoungAdjust, other.YoungAdjust)
	overrideFloat(&merged.RevenueMin, other.RevenueMin)
	overrideFloat(&merged.RevenueMax, other.RevenueMax)
	overrideInt(&merged.SweetSpotAdjust, other.SweetSpotAdjust)
	overrideInt(&merged.OutsideAdjust, other.OutsideAdjust)
	overrideInt(&merged.IndustryAdjust, other.IndustryAdjust)
	overrideInt(&merged.LegacyTechAdjust, other.LegacyTechAdjust)
	overrideInt(&merged.MinScore, other.MinScore)
	overrideInt(&merged.MaxScore, other.MaxScore)

	if other.PenalizeNullRevenue {
		merged.PenalizeNullRevenue = true
	}

	for _, ind := range other.TraditionalIndustries {
		if !slices.Contains(merged.TraditionalIndustries, ind) {
			merged.TraditionalIndustries = append(merged.TraditionalIndustries, ind)
		}
	}

	return &merged
}

// ValidationError lists every rule a Config violates.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "scoring config validation failed:\n- " + strings.Join(e.Problems, "\n- ")
}

var validate = validator.New()

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	problems := make([]string, 0, len(verrs))
	for _, e := range verrs {
		problems = append(problems, formatValidationError(e))
	}
	return &ValidationError{Problems: problems}
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Namespace())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s failed validation '%s'", e.Field(), e.Tag())
	}
}
