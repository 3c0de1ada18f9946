package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/leadrank/pkg/schema"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show how input columns map onto the canonical schema",
	Long: `Read only the header of an input file and print which column feeds
each canonical field, which fields fall back to a default, and which
columns are ignored.

Example:
  leadrank columns -i leads.csv`,
	RunE: runColumns,
}

func init() {
	rootCmd.AddCommand(columnsCmd)

	flags := columnsCmd.Flags()
	flags.StringP("input", "i", "", "input file (.csv or .json)")
	flags.String("input-format", "", "input format: csv, json (default: from extension)")
	flags.Bool("sample", false, "use the built-in demo dataset instead of an input file")
}

func runColumns(cmd *cobra.Command, args []string) error {
	table, err := loadInput(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mapping := schema.NewMapper(schema.WithSynonyms(cfg.Synonyms)).Plan(table.Columns)

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprint(out, mapping.String()); err != nil {
		return err
	}
	if d := mapping.Defaulted(); len(d) > 0 {
		logInfo("%d canonical field(s) will use defaults", len(d))
	}
	if table.Len() == 0 {
		logInfo("Input has a header but no rows")
	}
	return nil
}
