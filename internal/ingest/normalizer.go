package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/walletscore/internal/common"
	"github.com/Veraticus/walletscore/internal/model"
)

// SourceReport describes the outcome of loading one source.
type SourceReport struct {
	Err     error
	Name    string
	Shape   Shape
	Records int
	Skipped int
}

// Loaded reports whether the source contributed any records.
func (r SourceReport) Loaded() bool {
	return r.Err == nil && r.Records > 0
}

// Result is the normalized record stream plus per-source diagnostics.
type Result struct {
	Skipped model.SkipCounts
	Records []model.TransactionRecord
	Sources []SourceReport
}

// LoadedSources returns how many sources contributed records.
func (r *Result) LoadedSources() int {
	n := 0
	for _, s := range r.Sources {
		if s.Loaded() {
			n++
		}
	}
	return n
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithSourceHook registers a callback invoked after each source is processed,
// whether it loaded or not.
func WithSourceHook(fn func(SourceReport)) Option {
	return func(n *Normalizer) {
		n.onSource = fn
	}
}

// Normalizer converts raw sources into a single TransactionRecord sequence.
type Normalizer struct {
	logger   *slog.Logger
	onSource func(SourceReport)
}

// NewNormalizer creates a normalizer that reports diagnostics to logger.
func NewNormalizer(logger *slog.Logger, opts ...Option) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	n := &Normalizer{logger: logger}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize loads every source in order and concatenates their records.
// Failing sources are logged and skipped. It returns common.ErrNoData, along
// with the diagnostics gathered so far, when no source yields a record.
func (n *Normalizer) Normalize(ctx context.Context, sources []Source) (*Result, error) {
	result := &Result{
		Skipped: make(model.SkipCounts),
		Sources: make([]SourceReport, 0, len(sources)),
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n.logger.Info("Loading source", "source", src.Name(), "shape", src.Shape())

		records, skipped, err := n.normalizeSource(ctx, src)
		report := SourceReport{
			Name:    src.Name(),
			Shape:   src.Shape(),
			Records: len(records),
			Skipped: skipped.Total(),
			Err:     err,
		}

		switch {
		case err != nil:
			n.logger.Warn("Skipping source", "source", src.Name(), "error", err)
		case len(records) == 0:
			n.logger.Warn("No transactions found in source", "source", src.Name())
		default:
			n.logger.Info("Loaded source",
				"source", src.Name(),
				"records", len(records),
				"skipped", report.Skipped)
		}

		result.Records = append(result.Records, records...)
		result.Skipped.Merge(skipped)
		result.Sources = append(result.Sources, report)

		if n.onSource != nil {
			n.onSource(report)
		}
	}

	if len(result.Records) == 0 {
		return result, fmt.Errorf("%w: %d sources yielded no records", common.ErrNoData, len(sources))
	}

	n.logger.Info("Combined transaction data",
		"records", len(result.Records),
		"sources_loaded", result.LoadedSources(),
		"records_skipped", result.Skipped.Total())

	return result, nil
}

func (n *Normalizer) normalizeSource(ctx context.Context, src Source) ([]model.TransactionRecord, model.SkipCounts, error) {
	shape := src.Shape()
	if shape == ShapeUnknown {
		return nil, nil, fmt.Errorf("%w: %s", common.ErrUnsupportedSource, src.Name())
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", src.Name(), err)
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil {
			n.logger.Warn("Failed to close source", "source", src.Name(), "error", closeErr)
		}
	}()

	switch shape {
	case ShapeKeyedDocument:
		return n.readKeyedDocument(rc, src.Name())
	case ShapeTable:
		return n.readTable(rc, src.Name())
	default:
		return nil, nil, fmt.Errorf("%w: %s", common.ErrUnsupportedSource, src.Name())
	}
}
