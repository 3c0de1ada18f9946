// Package leads assembles scored company records into a ranked, filterable
// lead list. Every function here is pure: inputs are never modified.
package leads

import (
	"github.com/jmylchreest/leadrank/pkg/classifier"
	"github.com/jmylchreest/leadrank/pkg/schema"
	"github.com/jmylchreest/leadrank/pkg/scoring"
)

// Lead is a cleaned record enriched with its score and legacy-tech flag.
type Lead struct {
	schema.Record `yaml:",inline"`

	Score     int    `json:"ai_acquisition_score" yaml:"ai_acquisition_score"`
	Legacy    bool   `json:"legacy_tech_flag" yaml:"legacy_tech_flag"`
	TechStack *string `json:"simulated_tech_stack" yaml:"simulated_tech_stack"` // Nil when the classifier had no description

	// Index is the row's position in the input table, used as the tie-break key.
	Index     int               `json:"-" yaml:"-"`
	Breakdown scoring.Breakdown `json:"-" yaml:"-"`
	Strategy  string            `json:"-" yaml:"-"`
}

// Assemble merges a record with its classification and score breakdown.
func Assemble(index int, rec schema.Record, c classifier.Classification, b scoring.Breakdown) Lead {
	l := Lead{
		Record:    rec,
		Score:     b.Score,
		Legacy:    c.Legacy,
		Index:     index,
		Breakdown: b,
		Strategy:  c.Strategy,
	}
	if c.TechStack != "" {
		stack := c.TechStack
		l.TechStack = &stack
	}
	return l
}

// Stack returns the tech stack description, or "" when there is none.
func (l Lead) Stack() string {
	if l.TechStack == nil {
		return ""
	}
	return *l.TechStack
}

// Columns returns the export column order: the canonical fields followed by
// the derived ones.
func Columns() []string {
	return append(schema.CanonicalNames(), schema.FieldScore, schema.FieldLegacy, schema.FieldTechStack)
}
