package scoring

import (
	"fmt"

	"github.com/jmylchreest/leadrank/pkg/schema"
)

// Rule identifies a scoring rule.
type Rule string

const (
	RuleBase       Rule = "base"
	RuleAge        Rule = "age"
	RuleRevenue    Rule = "revenue"
	RuleIndustry   Rule = "industry"
	RuleLegacyTech Rule = "legacy_tech"
)

// Contribution records how much a single rule moved the running total.
type Contribution struct {
	Rule   Rule   `json:"rule" yaml:"rule"`
	Delta  int    `json:"delta" yaml:"delta"`
	Reason string `json:"reason" yaml:"reason"`
}

// Breakdown is the outcome of scoring one record.
type Breakdown struct {
	Raw           int            `json:"raw" yaml:"raw"`     // Total before clamping
	Score         int            `json:"score" yaml:"score"` // Clamped to [MinScore, MaxScore]
	Contributions []Contribution `json:"contributions" yaml:"contributions"`
}

// Delta returns the contribution of rule, or 0 if it did not apply.
func (b Breakdown) Delta(rule Rule) int {
	for _, c := range b.Contributions {
		if c.Rule == rule {
			return c.Delta
		}
	}
	return 0
}

// Engine applies the scoring rules. It is safe for concurrent use.
type Engine struct {
	cfg        Config
	industries map[string]struct{}
}

// NewEngine validates cfg and builds an engine. A nil cfg uses DefaultConfig.
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	industries := make(map[string]struct{}, len(cfg.TraditionalIndustries))
	for _, ind := range cfg.TraditionalIndustries {
		industries[ind] = struct{}{}
	}
	return &Engine{cfg: *cfg, industries: industries}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Score applies, in order: base, age, revenue sweet spot, industry and the
// legacy-tech bonus, then clamps the total. Each rule reads the record's own
// fields; rules only interact through the running total.
func (e *Engine) Score(rec schema.Record, legacy bool) Breakdown {
	b := Breakdown{Contributions: make([]Contribution, 0, 5)}
	total := 0
	add := func(rule Rule, delta int, reason string) {
		total += delta
		b.Contributions = append(b.Contributions, Contribution{Rule: rule, Delta: delta, Reason: reason})
	}

	add(RuleBase, e.cfg.BaseScore, "base score")

	if delta, reason, ok := e.ageRule(rec.YearsInBusiness); ok {
		add(RuleAge, delta, reason)
	}
	if delta, reason, ok := e.revenueRule(rec.AnnualRevenueUSD); ok {
		add(RuleRevenue, delta, reason)
	}
	if _, ok := e.industries[rec.Industry]; ok {
		add(RuleIndustry, e.cfg.IndustryAdjust, fmt.Sprintf("traditional industry %q", rec.Industry))
	}
	if legacy {
		add(RuleLegacyTech, e.cfg.LegacyTechAdjust, "legacy tech detected")
	}

	b.Raw = total
	b.Score = e.clamp(total)
	return b
}

func (e *Engine) ageRule(years float64) (int, string, bool) {
	switch {
	case years >= e.cfg.SeniorYears:
		return e.cfg.SeniorAdjust, fmt.Sprintf("%g years >= %g", years, e.cfg.SeniorYears), true
	case years >= e.cfg.MidYears:
		return e.cfg.MidAdjust, fmt.Sprintf("%g years in [%g, %g)", years, e.cfg.MidYears, e.cfg.SeniorYears), true
	case years < e.cfg.YoungYears:
		return e.cfg.YoungAdjust, fmt.Sprintf("%g years < %g", years, e.cfg.YoungYears), true
	default:
		return 0, "", false
	}
}

func (e *Engine) revenueRule(revenue *float64) (int, string, bool) {
	if revenue == nil {
		if e.cfg.PenalizeNullRevenue {
			return e.cfg.OutsideAdjust, "revenue unknown", true
		}
		return 0, "", false
	}
	v := *revenue
	if v >= e.cfg.RevenueMin && v <= e.cfg.RevenueMax {
		return e.cfg.SweetSpotAdjust, "revenue in sweet spot", true
	}
	return e.cfg.OutsideAdjust, "revenue outside sweet spot", true
}

func (e *Engine) clamp(v int) int {
	return min(max(v, e.cfg.MinScore), e.cfg.MaxScore)
}
