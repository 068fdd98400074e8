package report

import (
	"fmt"
	"io"

	"github.com/Veraticus/walletscore/internal/model"
)

// Console prints reports to a writer.
type Console struct {
	writer    io.Writer
	formatter *Formatter
	dist      map[model.RiskCategory]int
}

// NewConsole creates a console report sink writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{
		writer:    w,
		formatter: NewFormatter(),
	}
}

// WithRiskDistribution attaches tier counts shown by Run.
func (c *Console) WithRiskDistribution(dist map[model.RiskCategory]int) *Console {
	c.dist = dist
	return c
}

func (c *Console) print(s string) error {
	if _, err := fmt.Fprintln(c.writer, s+"\n"); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// RawPreview prints wallets ranked by raw score.
func (c *Console) RawPreview(wallets []model.ScoredWallet) error {
	return c.print(c.formatter.FormatRawPreview(wallets))
}

// RankingPreview prints wallets ranked by normalized score.
func (c *Console) RankingPreview(wallets []model.ScoredWallet) error {
	return c.print(c.formatter.FormatRankingPreview(wallets))
}

// Summary prints the top and bottom rows.
func (c *Console) Summary(top, bottom []model.ScoredWallet) error {
	return c.print(c.formatter.FormatSummary(top, bottom))
}

// Chart prints the score bar chart.
func (c *Console) Chart(wallets []model.ScoredWallet) error {
	return c.print(c.formatter.FormatChart(wallets))
}

// Run prints the run totals.
func (c *Console) Run(run *model.RunSummary) error {
	return c.print(c.formatter.FormatRun(run, c.dist))
}
