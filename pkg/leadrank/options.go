// Package leadrank provides the public API for normalizing and scoring
// company lead tables.
package leadrank

import (
	"log/slog"

	"github.com/jmylchreest/leadrank/pkg/classifier"
	"github.com/jmylchreest/leadrank/pkg/cleaner"
	"github.com/jmylchreest/leadrank/pkg/scoring"
)

// Config holds all pipeline configuration.
type Config struct {
	// Stage settings
	Scoring    *scoring.Config   `json:"scoring" yaml:"scoring" mapstructure:"scoring"`
	Cleaner    *cleaner.Config   `json:"cleaner" yaml:"cleaner" mapstructure:"cleaner"`
	Classifier classifier.Config `json:"classifier" yaml:"classifier" mapstructure:"classifier"`

	// Synonyms adds header -> canonical field mappings to the built-in table.
	Synonyms map[string]string `json:"synonyms,omitempty" yaml:"synonyms,omitempty" mapstructure:"synonyms"`

	// Concurrency is the number of rows scored in parallel. 1 runs synchronously.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	// Injected dependencies (optional)
	ClassifierImpl classifier.Classifier `json:"-" yaml:"-" mapstructure:"-"`
	Logger         *slog.Logger          `json:"-" yaml:"-" mapstructure:"-"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Scoring:     scoring.DefaultConfig(),
		Cleaner:     cleaner.DefaultConfig(),
		Classifier:  classifier.DefaultConfig(),
		Concurrency: 1,
	}
}

// Option configures the pipeline.
type Option func(*Config)

// WithScoring sets the scoring rules.
func WithScoring(cfg *scoring.Config) Option {
	return func(c *Config) {
		c.Scoring = cfg
	}
}

// WithCleaner sets the field cleaner configuration.
func WithCleaner(cfg *cleaner.Config) Option {
	return func(c *Config) {
		c.Cleaner = cfg
	}
}

// WithClassifierConfig sets the classifier configuration.
func WithClassifierConfig(cfg classifier.Config) Option {
	return func(c *Config) {
		c.Classifier = cfg
	}
}

// WithClassifierStrategy selects a registered classifier strategy
// (lookup, heuristic, fallback).
func WithClassifierStrategy(strategy string) Option {
	return func(c *Config) {
		c.Classifier.Strategy = strategy
	}
}

// WithClassifier injects a custom classifier, bypassing the registry.
func WithClassifier(cl classifier.Classifier) Option {
	return func(c *Config) {
		c.ClassifierImpl = cl
	}
}

// WithSynonyms adds header synonyms to the schema mapper.
func WithSynonyms(synonyms map[string]string) Option {
	return func(c *Config) {
		c.Synonyms = synonyms
	}
}

// WithConcurrency sets the number of rows scored in parallel.
func WithConcurrency(n int) Option {
	return func(c *Config) {
		c.Concurrency = n
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
