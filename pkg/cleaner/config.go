package cleaner

// DefaultRevenueStripChars are removed from revenue values before parsing:
// currency symbol, thousands separator and stray quotes.
const DefaultRevenueStripChars = `$,"`

// Config defines the cleaner options.
type Config struct {
	// RevenueStripChars lists every character removed from raw revenue values.
	RevenueStripChars string `json:"revenue_strip_chars" yaml:"revenue_strip_chars" mapstructure:"revenue_strip_chars"`
}

// DefaultConfig returns the standard cleaning configuration.
func DefaultConfig() *Config {
	return &Config{
		RevenueStripChars: DefaultRevenueStripChars,
	}
}

// Merge returns a copy of c with non-empty values from other applied.
func (c *Config) Merge(other *Config) *Config {
	merged := *c
	if other == nil {
		return &merged
	}
	if other.RevenueStripChars != "" {
		merged.RevenueStripChars = other.RevenueStripChars
	}
	return &merged
}
