// Package classifier flags companies that probably run outdated technology.
// Strategies are pluggable: a static lookup table, an attribute heuristic,
// or any Classifier registered by the caller.
package classifier

import (
	"github.com/jmylchreest/leadrank/pkg/schema"
)

// Classification is the outcome of classifying one record.
type Classification struct {
	Legacy    bool   `json:"legacy" yaml:"legacy"`
	TechStack string `json:"tech_stack,omitempty" yaml:"tech_stack,omitempty"` // Empty when the strategy has no description
	Known     bool   `json:"known" yaml:"known"`                               // False when the strategy had no information
	Strategy  string `json:"strategy" yaml:"strategy"`
}

// Classifier derives a legacy-tech classification from a cleaned record.
// Implementations must be pure and safe for concurrent use.
type Classifier interface {
	// Classify inspects a single record.
	Classify(rec schema.Record) Classification

	// Name returns the strategy name for logging/debugging.
	Name() string
}
