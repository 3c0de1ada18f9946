package classifier

import (
	"strings"

	"github.com/jmylchreest/leadrank/pkg/schema"
)

// FallbackClassifier tries each classifier in order and returns the first
// classification that is Known. This lets a curated table take precedence
// while a heuristic covers companies it does not list.
type FallbackClassifier struct {
	classifiers []Classifier
}

// NewFallback creates a fallback chain from the given classifiers.
func NewFallback(classifiers ...Classifier) *FallbackClassifier {
	return &FallbackClassifier{
		classifiers: classifiers,
	}
}

// Classify returns the first known classification, or an unknown one
// attributed to the chain when no classifier had information.
func (f *FallbackClassifier) Classify(rec schema.Record) Classification {
	for _, c := range f.classifiers {
		if res := c.Classify(rec); res.Known {
			return res
		}
	}
	return Classification{Strategy: f.Name()}
}

// Name returns the fallback chain name.
func (f *FallbackClassifier) Name() string {
	names := make([]string, len(f.classifiers))
	for i, c := range f.classifiers {
		names[i] = c.Name()
	}
	return "fallback(" + strings.Join(names, "->") + ")"
}
