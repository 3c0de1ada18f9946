package scoring

import (
	"fmt"
	"sort"
)

// Preset names accepted by Preset.
const (
	PresetNameDefault     = "default"
	PresetNameLegacyFocus = "legacy-focus"
	PresetNameGrowth      = "growth"
)

var presets = map[string]func() *Config{
	PresetNameDefault:     DefaultConfig,
	PresetNameLegacyFocus: PresetLegacyFocus,
	PresetNameGrowth:      PresetGrowth,
}

// PresetLegacyFocus weights age, traditional industries and legacy technology
// more heavily. Use when the goal is finding modernization candidates.
func PresetLegacyFocus() *Config {
	cfg := DefaultConfig()
	cfg.BaseScore = 40
	cfg.SeniorAdjust = 25
	cfg.IndustryAdjust = 15
	cfg.LegacyTechAdjust = 25
	cfg.TraditionalIndustries = append(cfg.TraditionalIndustries, "Construction", "Wholesale")
	return cfg
}

// PresetGrowth widens the revenue sweet spot and softens the age bonus.
func PresetGrowth() *Config {
	cfg := DefaultConfig()
	cfg.SeniorAdjust = 10
	cfg.MidAdjust = 5
	cfg.RevenueMin = 1_000_000
	cfg.RevenueMax = 50_000_000
	cfg.SweetSpotAdjust = 20
	cfg.OutsideAdjust = -10
	return cfg
}

// Preset returns a fresh copy of the named preset. The empty name is the default.
func Preset(name string) (*Config, error) {
	if name == "" {
		name = PresetNameDefault
	}
	fn, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown scoring preset: %s (available: %v)", name, PresetNames())
	}
	return fn(), nil
}

// PresetNames returns the sorted preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
