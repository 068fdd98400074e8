// Package engine runs the wallet scoring pipeline end to end.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/walletscore/internal/aggregate"
	"github.com/Veraticus/walletscore/internal/ingest"
	"github.com/Veraticus/walletscore/internal/model"
	"github.com/Veraticus/walletscore/internal/report"
	"github.com/Veraticus/walletscore/internal/scoring"
)

// Result holds everything one pipeline run produced.
type Result struct {
	Run     *model.RunSummary
	Ranking *report.Ranking
	Bots    scoring.BotFlags
	Skipped model.SkipCounts
	Raw     []model.ScoredWallet
	Sources []ingest.SourceReport
}

// ScoringEngine orchestrates normalization, aggregation, scoring and report
// assembly.
type ScoringEngine struct {
	logger     *slog.Logger
	normalizer *ingest.Normalizer
	aggregator *aggregate.Aggregator
	now        func() time.Time
}

// Option configures a ScoringEngine.
type Option func(*ScoringEngine)

// WithSourceHook forwards per-source reports to fn while loading.
func WithSourceHook(fn func(ingest.SourceReport)) Option {
	return func(e *ScoringEngine) {
		e.normalizer = ingest.NewNormalizer(e.logger, ingest.WithSourceHook(fn))
	}
}

// WithClock overrides the clock used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *ScoringEngine) {
		e.now = now
	}
}

// New creates a scoring engine.
func New(logger *slog.Logger, opts ...Option) *ScoringEngine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &ScoringEngine{
		logger:     logger,
		normalizer: ingest.NewNormalizer(logger),
		aggregator: aggregate.NewAggregator(logger),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run scores every wallet found in sources.
//
// When no source yields a record Run returns an error wrapping
// common.ErrNoData and a nil Result.
func (e *ScoringEngine) Run(ctx context.Context, sources []ingest.Source) (*Result, error) {
	run := &model.RunSummary{
		ID:        uuid.New().String(),
		StartedAt: e.now(),
	}
	e.logger.Info("Starting scoring run", "run_id", run.ID, "sources", len(sources))

	normalized, err := e.normalizer.Normalize(ctx, sources)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	aggregated := e.aggregator.Aggregate(normalized.Records)
	wallets := aggregated.Book.Wallets()

	raw := scoring.RawPass(wallets)
	scored := scoring.NormalizedPass(wallets)
	bots := scoring.DetectBots(normalized.Records)
	ranking := report.Assemble(scored, bots)

	skipped := make(model.SkipCounts)
	skipped.Merge(normalized.Skipped)
	skipped.Merge(aggregated.Skipped)

	run.SourcesLoaded = normalized.LoadedSources()
	run.SourcesSkipped = len(normalized.Sources) - run.SourcesLoaded
	run.Records = aggregated.Applied
	run.RecordsSkipped = skipped.Total()
	run.Wallets = ranking.Len()
	run.Bots = ranking.BotCount()

	for reason, count := range skipped {
		e.logger.Debug("Skipped records", "reason", reason, "count", count)
	}
	e.logger.Info("Scoring run complete",
		"run_id", run.ID,
		"wallets", run.Wallets,
		"bots", run.Bots,
		"records", run.Records,
		"records_skipped", run.RecordsSkipped)

	return &Result{
		Run:     run,
		Ranking: ranking,
		Bots:    bots,
		Skipped: skipped,
		Raw:     raw,
		Sources: normalized.Sources,
	}, nil
}
