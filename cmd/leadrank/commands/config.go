package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/leadrank/internal/output"
	"github.com/jmylchreest/leadrank/pkg/leadrank"
	"github.com/jmylchreest/leadrank/pkg/scoring"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration that score would run with, after merging
defaults, the config file and LEADRANK_* environment variables.

The output is valid YAML and can be saved as .leadrank.yaml.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	w := output.NewYAMLWriter(cmd.OutOrStdout())
	if err := w.Write(cfg); err != nil {
		return err
	}
	return w.Close()
}

// readConfigTable decodes classifier.table from the config file itself.
// Viper lower-cases keys and splits them on dots, which would corrupt
// company names used as exact lookup keys.
func readConfigTable(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is the config file viper already loaded
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier table: %w", err)
	}

	var file struct {
		Classifier struct {
			Table map[string]string `yaml:"table"`
		} `yaml:"classifier"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid classifier table: %w", err)
	}
	return file.Classifier.Table, nil
}

// loadConfig builds the pipeline configuration from the scoring preset
// overlaid with the viper config file and environment.
func loadConfig() (leadrank.Config, error) {
	cfg := leadrank.DefaultConfig()

	base, err := scoring.Preset(viper.GetString("preset"))
	if err != nil {
		return cfg, err
	}
	cfg.Scoring = base

	// Keys decode onto the defaults, so explicit zeros are kept. Lists from
	// the file replace the defaults rather than overlaying them.
	if viper.IsSet("scoring") {
		if viper.IsSet("scoring.traditional_industries") {
			cfg.Scoring.TraditionalIndustries = nil
		}
		if err := viper.UnmarshalKey("scoring", cfg.Scoring); err != nil {
			return cfg, fmt.Errorf("invalid scoring config: %w", err)
		}
	}
	if viper.IsSet("cleaner") {
		if err := viper.UnmarshalKey("cleaner", cfg.Cleaner); err != nil {
			return cfg, fmt.Errorf("invalid cleaner config: %w", err)
		}
	}
	if viper.IsSet("classifier") {
		if viper.IsSet("classifier.keywords") {
			cfg.Classifier.Keywords = nil
		}
		if err := viper.UnmarshalKey("classifier", &cfg.Classifier); err != nil {
			return cfg, fmt.Errorf("invalid classifier config: %w", err)
		}
	}
	if viper.IsSet("classifier.table") {
		table, err := readConfigTable(viper.ConfigFileUsed())
		if err != nil {
			return cfg, err
		}
		cfg.Classifier.Table = table
	}
	if viper.IsSet("synonyms") {
		cfg.Synonyms = viper.GetStringMapString("synonyms")
	}

	// Nested keys from the environment are not seen by UnmarshalKey.
	if s := viper.GetString("classifier.strategy"); s != "" {
		cfg.Classifier.Strategy = s
	}
	if n := viper.GetInt("concurrency"); n > 0 {
		cfg.Concurrency = n
	}

	if err := cfg.Scoring.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.Classifier.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
