package leadrank

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/leadrank/internal/logger"
	"github.com/jmylchreest/leadrank/pkg/classifier"
	"github.com/jmylchreest/leadrank/pkg/cleaner"
	"github.com/jmylchreest/leadrank/pkg/leads"
	"github.com/jmylchreest/leadrank/pkg/schema"
	"github.com/jmylchreest/leadrank/pkg/scoring"
)

// Result is the outcome of a pipeline run.
type Result struct {
	Leads      []leads.Lead   // Enriched records, in input order
	Mapping    schema.Mapping // How input columns were mapped
	CleanStats *cleaner.Stats
	Dropped    int // Rows excluded by the field cleaner
	Duration   time.Duration
}

// Pipeline maps, cleans, classifies and scores company tables.
// It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	mapper      *schema.Mapper
	cleaner     *cleaner.Cleaner
	engine      *scoring.Engine
	classifier  classifier.Classifier
	concurrency int
	log         *slog.Logger
	config      Config
}

// New creates a new Pipeline.
func New(opts ...Option) (*Pipeline, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	engine, err := scoring.NewEngine(cfg.Scoring)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring engine: %w", err)
	}

	// Use injected classifier or create one from the registry
	cl := cfg.ClassifierImpl
	if cl == nil {
		cl, err = classifier.New(cfg.Classifier)
		if err != nil {
			return nil, fmt.Errorf("failed to create classifier: %w", err)
		}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.With("component", "pipeline")
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Pipeline{
		mapper:      schema.NewMapper(schema.WithSynonyms(cfg.Synonyms)),
		cleaner:     cleaner.New(cfg.Cleaner),
		engine:      engine,
		classifier:  cl,
		concurrency: concurrency,
		log:         log,
		config:      cfg,
	}, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() Config {
	return p.config
}

// Classifier returns the classifier in use.
func (p *Pipeline) Classifier() classifier.Classifier {
	return p.classifier
}

// Plan reports how a header would be mapped onto the canonical fields.
func (p *Pipeline) Plan(columns []string) schema.Mapping {
	return p.mapper.Plan(columns)
}

// Run processes a table. An empty table yields an empty result; the only
// error conditions are a structurally invalid table and a cancelled context.
func (p *Pipeline) Run(ctx context.Context, t schema.Table) (*Result, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mapped, mapping, err := p.mapper.Map(t)
	if err != nil {
		return nil, fmt.Errorf("schema mapping failed: %w", err)
	}
	if defaulted := mapping.Defaulted(); len(defaulted) > 0 {
		p.log.Debug("columns defaulted", "fields", defaulted)
	}
	if len(mapping.Unmapped) > 0 {
		p.log.Debug("columns dropped", "columns", mapping.Unmapped)
	}

	rows, stats, err := p.cleaner.Clean(mapped)
	if err != nil {
		return nil, fmt.Errorf("cleaning failed: %w", err)
	}
	if dropped := stats.Dropped(); dropped > 0 {
		p.log.Info("rows dropped during cleaning",
			"dropped", dropped,
			"input", stats.InputRows,
			"reasons", stats.DroppedBy)
	}

	out := make([]leads.Lead, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, row := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = p.score(row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.log.Debug("pipeline complete",
		"leads", len(out),
		"classifier", p.classifier.Name(),
		"duration", time.Since(start))

	return &Result{
		Leads:      out,
		Mapping:    mapping,
		CleanStats: stats,
		Dropped:    stats.Dropped(),
		Duration:   time.Since(start),
	}, nil
}

// Score classifies and scores a single cleaned record.
func (p *Pipeline) Score(rec schema.Record) leads.Lead {
	return p.score(cleaner.Row{Index: 0, Record: rec})
}

func (p *Pipeline) score(row cleaner.Row) leads.Lead {
	cls := p.classifier.Classify(row.Record)
	b := p.engine.Score(row.Record, cls.Legacy)
	return leads.Assemble(row.Index, row.Record, cls, b)
}
