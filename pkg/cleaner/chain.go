package cleaner

import (
	"strings"

	"github.com/jmylchreest/leadrank/pkg/schema"
)

// ChainCleaner applies multiple field cleaners in sequence.
// The first cleaner that rejects the row stops the chain.
type ChainCleaner struct {
	cleaners []FieldCleaner
}

// NewChain creates a cleaner that applies field cleaners in the order provided.
func NewChain(cleaners ...FieldCleaner) *ChainCleaner {
	return &ChainCleaner{
		cleaners: cleaners,
	}
}

// Clean applies all cleaners in sequence.
func (c *ChainCleaner) Clean(row []string, rec *schema.Record) error {
	for _, cleaner := range c.cleaners {
		if err := cleaner.Clean(row, rec); err != nil {
			return err
		}
	}
	return nil
}

// Name returns the names of all chained cleaners.
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.cleaners))
	for i, cleaner := range c.cleaners {
		names[i] = cleaner.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
