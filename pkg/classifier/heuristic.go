package classifier

import (
	"slices"

	"github.com/jmylchreest/leadrank/pkg/schema"
)

// HeuristicConfig tunes the attribute-based strategy.
type HeuristicConfig struct {
	// IndustryYears is the minimum age for companies in LegacyIndustries.
	IndustryYears    float64  `json:"industry_years" yaml:"industry_years" mapstructure:"industry_years" validate:"gte=0"`
	LegacyIndustries []string `json:"legacy_industries" yaml:"legacy_industries" mapstructure:"legacy_industries" validate:"dive,required"`

	// AnyIndustryYears flags every company at least this old.
	AnyIndustryYears float64 `json:"any_industry_years" yaml:"any_industry_years" mapstructure:"any_industry_years" validate:"gte=0"`

	LegacyLabel string `json:"legacy_label" yaml:"legacy_label" mapstructure:"legacy_label"`
	ModernLabel string `json:"modern_label" yaml:"modern_label" mapstructure:"modern_label"`
}

// DefaultHeuristicConfig returns the standard heuristic thresholds.
func DefaultHeuristicConfig() HeuristicConfig {
	return HeuristicConfig{
		IndustryYears:    15,
		LegacyIndustries: []string{"Manufacturing", "Accounting", "Insurance", "Logistics"},
		AnyIndustryYears: 25,
		LegacyLabel:      "Legacy (On-Premise Systems)",
		ModernLabel:      "Modern (Cloud-based)",
	}
}

// HeuristicClassifier flags old companies, with a lower age bar for
// industries known to lag on modernization.
type HeuristicClassifier struct {
	cfg HeuristicConfig
}

// NewHeuristic creates a heuristic classifier.
func NewHeuristic(cfg HeuristicConfig) *HeuristicClassifier {
	cfg.LegacyIndustries = slices.Clone(cfg.LegacyIndustries)
	return &HeuristicClassifier{cfg: cfg}
}

// Classify always produces a description.
func (c *HeuristicClassifier) Classify(rec schema.Record) Classification {
	legacy := rec.YearsInBusiness >= c.cfg.AnyIndustryYears ||
		(rec.YearsInBusiness >= c.cfg.IndustryYears && slices.Contains(c.cfg.LegacyIndustries, rec.Industry))

	label := c.cfg.ModernLabel
	if legacy {
		label = c.cfg.LegacyLabel
	}
	return Classification{
		Legacy:    legacy,
		TechStack: label,
		Known:     true,
		Strategy:  c.Name(),
	}
}

// Name returns the strategy name.
func (c *HeuristicClassifier) Name() string {
	return StrategyHeuristic
}
