package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/leadrank/internal/ingest"
	"github.com/jmylchreest/leadrank/internal/logger"
	"github.com/jmylchreest/leadrank/internal/output"
	"github.com/jmylchreest/leadrank/pkg/leadrank"
	"github.com/jmylchreest/leadrank/pkg/leads"
	"github.com/jmylchreest/leadrank/pkg/schema"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score and rank a company lead table",
	Long: `Map, clean, classify and score every row of a lead table.

Rows whose years in business cannot be read are dropped; the count is
reported on stderr. Results are sorted by score (highest first) unless
--sort says otherwise. Filters are combined with AND.

Examples:
  # Score a CSV, write JSON to stdout
  leadrank score -i leads.csv

  # Medium-priority modern companies in Retail, as a console table
  leadrank score -i leads.csv --priority medium --modern --industry Retail --format table

  # Try the built-in demo dataset
  leadrank score --sample --format table`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	flags := scoreCmd.Flags()

	// Input
	flags.StringP("input", "i", "", "input file (.csv or .json)")
	flags.String("input-format", "", "input format: csv, json (default: from extension)")
	flags.Bool("sample", false, "use the built-in demo dataset instead of an input file")

	// Pipeline
	flags.String("strategy", "", "legacy-tech classifier: lookup, heuristic, fallback")
	flags.String("tech-table", "", "YAML/JSON file of company -> tech stack for the lookup strategy")
	flags.IntP("concurrency", "c", 1, "rows scored in parallel")

	// Ranking and filtering
	flags.String("sort", string(leads.SortScoreDesc), "sort order: score_desc, score_asc, company_name, revenue_desc")
	flags.String("priority", string(leads.TierAll), "priority tier: all, high (90-100), medium (75-89)")
	flags.Int("min-score", 0, "minimum score")
	flags.Int("max-score", 100, "maximum score")
	flags.Bool("legacy", false, "only companies flagged for legacy tech")
	flags.Bool("modern", false, "only companies not flagged for legacy tech")
	flags.StringSlice("industry", nil, "only these industries (can be repeated)")
	flags.IntP("top", "n", 0, "keep only the N highest-scoring leads (0=all)")

	// Output
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("format", "f", string(output.FormatJSON), "output format: csv, json, jsonl, yaml, table")

	scoreCmd.MarkFlagsMutuallyExclusive("legacy", "modern")
	scoreCmd.MarkFlagsMutuallyExclusive("input", "sample")
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Validate presentation flags before doing any work
	sortStr, _ := cmd.Flags().GetString("sort")
	sortKey, err := leads.ParseSortKey(sortStr)
	if err != nil {
		return err
	}
	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	preds, err := buildFilters(cmd)
	if err != nil {
		return err
	}

	table, err := loadInput(cmd)
	if err != nil {
		logger.Error("failed to load input", "error", err)
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}
	if s, _ := cmd.Flags().GetString("strategy"); s != "" {
		cfg.Classifier.Strategy = s
	}
	if path, _ := cmd.Flags().GetString("tech-table"); path != "" {
		cfg.Classifier.TableFile = path
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}

	p, err := leadrank.New(
		leadrank.WithScoring(cfg.Scoring),
		leadrank.WithCleaner(cfg.Cleaner),
		leadrank.WithClassifierConfig(cfg.Classifier),
		leadrank.WithSynonyms(cfg.Synonyms),
		leadrank.WithConcurrency(cfg.Concurrency),
	)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return err
	}

	logger.Info("scoring leads",
		"rows", table.Len(),
		"classifier", p.Classifier().Name(),
		"concurrency", cfg.Concurrency)

	res, err := p.Run(ctx, table)
	if err != nil {
		logger.Error("scoring failed", "error", err)
		return err
	}
	if res.Dropped > 0 {
		logInfo("Dropped %d of %d rows with unreadable years in business", res.Dropped, res.CleanStats.InputRows)
	}

	ranked := leads.Sort(leads.Filter(res.Leads, preds...), sortKey)
	if top, _ := cmd.Flags().GetInt("top"); top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}

	summary := leads.Summarize(res.Leads)
	logger.Info("scoring complete",
		"leads", summary.Total,
		"selected", len(ranked),
		"average_score", fmt.Sprintf("%.1f", summary.AverageScore),
		"high_priority", summary.HighPriority,
		"legacy", summary.Legacy,
		"total_revenue", "$"+humanize.Comma(int64(summary.TotalRevenue)),
		"duration", res.Duration)

	return writeLeads(cmd, ranked, format)
}

func loadInput(cmd *cobra.Command) (schema.Table, error) {
	if sample, _ := cmd.Flags().GetBool("sample"); sample {
		return leadrank.SampleTable(), nil
	}

	path, _ := cmd.Flags().GetString("input")
	if path == "" {
		return schema.Table{}, errors.New("an input file is required (use -i or --sample)")
	}

	var format ingest.Format
	if s, _ := cmd.Flags().GetString("input-format"); s != "" {
		f, err := ingest.ParseFormat(s)
		if err != nil {
			return schema.Table{}, err
		}
		format = f
	}
	return ingest.LoadFile(path, format)
}

func buildFilters(cmd *cobra.Command) ([]leads.Predicate, error) {
	flags := cmd.Flags()

	tierStr, _ := flags.GetString("priority")
	tier, err := leads.ParseTier(tierStr)
	if err != nil {
		return nil, err
	}
	minScore, _ := flags.GetInt("min-score")
	maxScore, _ := flags.GetInt("max-score")
	if minScore > maxScore {
		return nil, fmt.Errorf("--min-score %d exceeds --max-score %d", minScore, maxScore)
	}

	preds := []leads.Predicate{tier.Predicate(), leads.ScoreRange(minScore, maxScore)}
	if legacy, _ := flags.GetBool("legacy"); legacy {
		preds = append(preds, leads.Legacy(true))
	}
	if modern, _ := flags.GetBool("modern"); modern {
		preds = append(preds, leads.Legacy(false))
	}
	if industries, _ := flags.GetStringSlice("industry"); len(industries) > 0 {
		preds = append(preds, leads.Industry(industries...))
	}
	return preds, nil
}

func writeLeads(cmd *cobra.Command, ls []leads.Lead, format output.Format) error {
	out := cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logger.Error("failed to create output file", "path", outPath, "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	writer, err := output.NewWriter(out, format, output.WithArray(true))
	if err != nil {
		return err
	}

	items := make([]any, len(ls))
	for i, l := range ls {
		items[i] = l
	}
	if err := writer.WriteAll(items); err != nil {
		logger.Error("failed to write output", "error", err)
		return err
	}
	return writer.Close()
}
