package classifier

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Built-in strategy names.
const (
	StrategyLookup    = "lookup"
	StrategyHeuristic = "heuristic"
	StrategyFallback  = "fallback"
)

// ErrUnknownStrategy is returned when Config.Strategy has no registered factory.
var ErrUnknownStrategy = errors.New("unknown classifier strategy")

// Config selects and configures a classification strategy.
type Config struct {
	Strategy string `json:"strategy" yaml:"strategy" mapstructure:"strategy" validate:"required"`

	// Lookup strategy
	Table     map[string]string `json:"table,omitempty" yaml:"table,omitempty" mapstructure:"-"`
	TableFile string            `json:"table_file,omitempty" yaml:"table_file,omitempty" mapstructure:"table_file"`
	Keywords  []string          `json:"keywords" yaml:"keywords" mapstructure:"keywords" validate:"dive,required"`

	// Heuristic strategy
	Heuristic HeuristicConfig `json:"heuristic" yaml:"heuristic" mapstructure:"heuristic"`
}

// DefaultConfig returns the heuristic strategy with standard thresholds.
// The built-in lookup table only covers a fixed demo roster, so the heuristic
// is the better default for arbitrary uploads.
func DefaultConfig() Config {
	return Config{
		Strategy:  StrategyHeuristic,
		Keywords:  slices.Clone(DefaultKeywords),
		Heuristic: DefaultHeuristicConfig(),
	}
}

var validate = validator.New()

// Validate checks the configuration values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			problems := make([]string, 0, len(verrs))
			for _, e := range verrs {
				problems = append(problems, fmt.Sprintf("%s failed '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("classifier config validation failed: %s", strings.Join(problems, "; "))
		}
		return err
	}
	return nil
}

// ResolveTable returns the lookup table: TableFile when set, then Table,
// then the built-in table.
func (c Config) ResolveTable() (map[string]string, error) {
	if c.TableFile != "" {
		return LoadTable(c.TableFile)
	}
	if c.Table != nil {
		return c.Table, nil
	}
	return DefaultTable(), nil
}

// Factory builds a classifier from config.
type Factory func(cfg Config) (Classifier, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func init() {
	Register(StrategyLookup, func(cfg Config) (Classifier, error) {
		table, err := cfg.ResolveTable()
		if err != nil {
			return nil, err
		}
		return NewLookup(table, cfg.Keywords), nil
	})
	Register(StrategyHeuristic, func(cfg Config) (Classifier, error) {
		return NewHeuristic(cfg.Heuristic), nil
	})
	Register(StrategyFallback, func(cfg Config) (Classifier, error) {
		table, err := cfg.ResolveTable()
		if err != nil {
			return nil, err
		}
		return NewFallback(NewLookup(table, cfg.Keywords), NewHeuristic(cfg.Heuristic)), nil
	})
}

// Register adds or replaces a strategy factory.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Available returns the registered strategy names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

// New creates the classifier selected by cfg.Strategy.
func New(cfg Config) (Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registryMu.RLock()
	factory, ok := registry[cfg.Strategy]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownStrategy, cfg.Strategy, strings.Join(Available(), ", "))
	}

	c, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s classifier: %w", cfg.Strategy, err)
	}
	return c, nil
}
