// Package commands implements the CLI commands for leadrank.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/leadrank/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "leadrank",
	Short: "Score company lead lists for acquisition readiness",
	Long: `Leadrank normalizes company lead tables and ranks them by how likely
each company is to benefit from modernization.

Point it at a CSV or JSON export with any reasonable column names; it maps
the columns onto a canonical schema, cleans revenue and age values, flags
probable legacy technology, and writes a scored lead list.

Examples:
  # Score a CSV and show the top 10 as a table
  leadrank score -i leads.csv --format table --top 10

  # High-priority legacy leads only, exported as CSV
  leadrank score -i leads.csv -o hot.csv --priority high --legacy

  # Use the curated tech table, falling back to the heuristic
  leadrank score -i leads.json --strategy fallback

  # Check how columns will be mapped
  leadrank columns -i leads.csv`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			Level: viper.GetString("log_level"),
			JSON:  viper.GetBool("log_json"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.leadrank.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")
	rootCmd.PersistentFlags().String("preset", "", "scoring preset: default, legacy-focus, growth")

	bindFlags()
}

// bindFlags binds the global flags to viper keys.
func bindFlags() {
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
	_ = viper.BindPFlag("preset", rootCmd.PersistentFlags().Lookup("preset"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".leadrank")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. LEADRANK_CLASSIFIER_STRATEGY
	viper.SetEnvPrefix("LEADRANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("config file loaded", "path", viper.ConfigFileUsed())
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
