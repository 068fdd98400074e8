// Package service defines the interfaces between the scoring pipeline and its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/walletscore/internal/model"
)

// RankingExporter persists the final ranked wallet table.
type RankingExporter interface {
	// Export writes wallets in rank order. Implementations must not reorder them.
	Export(ctx context.Context, run *model.RunSummary, wallets []model.ScoredWallet) error
}

// RankingStore is a RankingExporter backed by a database that needs setup and teardown.
type RankingStore interface {
	RankingExporter
	Migrate(ctx context.Context) error
	Close() error
}

// ReportSink renders ranked wallet summaries for a person to read.
type ReportSink interface {
	// RawPreview shows wallets ranked by raw score.
	RawPreview(wallets []model.ScoredWallet) error
	// RankingPreview shows wallets ranked by normalized score with risk tiers.
	RankingPreview(wallets []model.ScoredWallet) error
	// Summary shows the full rows for the best and worst wallets.
	Summary(top, bottom []model.ScoredWallet) error
	// Chart plots normalized scores by wallet.
	Chart(wallets []model.ScoredWallet) error
	// Run prints the run totals.
	Run(run *model.RunSummary) error
}
