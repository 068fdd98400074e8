package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Veraticus/walletscore/internal/cli"
	"github.com/Veraticus/walletscore/internal/model"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const defaultChartWidth = 40

// Formatter renders rankings as styled terminal text.
type Formatter struct {
	styles     *Styles
	chartWidth int
}

// NewFormatter creates a formatter with default styles.
func NewFormatter() *Formatter {
	return &Formatter{
		styles:     NewStyles(),
		chartWidth: defaultChartWidth,
	}
}

func (f *Formatter) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(f.styles.Border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return f.styles.Header
			}
			return f.styles.Cell
		}).
		Headers(headers...)
}

func (f *Formatter) empty(title string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		f.styles.Title.Render(title),
		f.styles.Subtle.Render("No wallets to show"))
}

// FormatRawPreview renders wallets ranked by raw score with their raw totals.
func (f *Formatter) FormatRawPreview(wallets []model.ScoredWallet) string {
	title := fmt.Sprintf("Top %d wallets by raw score", len(wallets))
	if len(wallets) == 0 {
		return f.empty(title)
	}

	headers := []string{"#", "Wallet"}
	for _, c := range model.Categories() {
		headers = append(headers, c.String())
	}
	headers = append(headers, "Score")

	t := f.newTable(headers...)
	for i, w := range wallets {
		row := []string{fmt.Sprintf("%d", i+1), w.WalletID}
		for _, c := range model.Categories() {
			row = append(row, fmt.Sprintf("%.2f", w.Totals.Get(c)))
		}
		row = append(row, f.score(w.Score, "%.2f"))
		t.Row(row...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, f.styles.Title.Render(title), t.Render())
}

// FormatRankingPreview renders wallets with normalized scores and risk tiers.
func (f *Formatter) FormatRankingPreview(wallets []model.ScoredWallet) string {
	title := fmt.Sprintf("Top %d wallets by normalized score", len(wallets))
	if len(wallets) == 0 {
		return f.empty(title)
	}

	t := f.newTable("#", "Wallet", "Score", "Risk")
	for i, w := range wallets {
		t.Row(
			fmt.Sprintf("%d", i+1),
			w.WalletID,
			f.score(w.Score, "%.4f"),
			f.styles.Risk(w.RiskCategory).Render(string(w.RiskCategory)),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, f.styles.Title.Render(title), t.Render())
}

// FormatSummary renders full rows for the best and worst wallets.
func (f *Formatter) FormatSummary(top, bottom []model.ScoredWallet) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		f.fullRows(fmt.Sprintf("Top %d wallets", len(top)), top),
		"",
		f.fullRows(fmt.Sprintf("Bottom %d wallets", len(bottom)), bottom),
	)
}

func (f *Formatter) fullRows(title string, wallets []model.ScoredWallet) string {
	if len(wallets) == 0 {
		return f.empty(title)
	}

	t := f.newTable(ExportHeader()...)
	for _, w := range wallets {
		row := []string{w.WalletID}
		for _, c := range model.Categories() {
			row = append(row, fmt.Sprintf("%.4f", w.Totals.Get(c)))
		}
		row = append(row,
			f.score(w.Score, "%.4f"),
			f.styles.Risk(w.RiskCategory).Render(string(w.RiskCategory)),
			fmt.Sprintf("%t", w.IsBot),
			f.styles.BotLabel(w.BotLabel).Render(string(w.BotLabel)),
		)
		t.Row(row...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, f.styles.Title.Render(title), t.Render())
}

// FormatChart renders a horizontal bar chart of normalized scores. Bar length
// is proportional to the score's magnitude relative to the largest one shown.
func (f *Formatter) FormatChart(wallets []model.ScoredWallet) string {
	title := cli.ChartIcon + " " + fmt.Sprintf("Top %d wallets by normalized score", len(wallets))
	if len(wallets) == 0 {
		return f.empty(title)
	}

	maxAbs := 0.0
	labelWidth := 0
	for _, w := range wallets {
		maxAbs = math.Max(maxAbs, math.Abs(w.Score))
		labelWidth = max(labelWidth, lipgloss.Width(ShortAddress(w.WalletID)))
	}

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(f.chartWidth),
		progress.WithoutPercentage(),
	)
	label := f.styles.Label.Width(labelWidth)

	lines := []string{
		f.styles.Title.Render(title),
		f.styles.Subtle.Render(fmt.Sprintf("%-*s  %s", labelWidth, "Wallet Address", "Normalized Score")),
	}
	for _, w := range wallets {
		frac := 0.0
		if maxAbs > 0 {
			frac = math.Abs(w.Score) / maxAbs
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			label.Render(ShortAddress(w.WalletID)),
			"  ",
			bar.ViewAs(frac),
			" ",
			f.score(w.Score, "%.4f"),
		))
	}

	return strings.Join(lines, "\n")
}

// FormatRun renders the run totals in a box.
func (f *Formatter) FormatRun(run *model.RunSummary, dist map[model.RiskCategory]int) string {
	if run == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\n", run.ID)
	fmt.Fprintf(&b, "Sources loaded: %d (skipped %d)\n", run.SourcesLoaded, run.SourcesSkipped)
	fmt.Fprintf(&b, "Transactions: %d (dropped %d)\n", run.Records, run.RecordsSkipped)
	fmt.Fprintf(&b, "Wallets scored: %d\n", run.Wallets)
	fmt.Fprintf(&b, "%s Bot-like wallets: %d", cli.RobotIcon, run.Bots)

	if len(dist) > 0 {
		tiers := make([]string, 0, len(dist))
		for tier := range dist {
			tiers = append(tiers, string(tier))
		}
		sort.Strings(tiers)
		for _, tier := range tiers {
			r := model.RiskCategory(tier)
			fmt.Fprintf(&b, "\n%s: %d", f.styles.Risk(r).Render(tier), dist[r])
		}
	}

	return cli.RenderBox("Wallet scoring complete", b.String())
}

func (f *Formatter) score(v float64, format string) string {
	text := fmt.Sprintf(format, v)
	if v < 0 {
		return f.styles.Negative.Render(text)
	}
	return f.styles.Positive.Render(text)
}

// ShortAddress abbreviates long wallet addresses for narrow columns.
func ShortAddress(addr string) string {
	runes := []rune(addr)
	if len(runes) <= 14 {
		return addr
	}
	return string(runes[:8]) + "…" + string(runes[len(runes)-4:])
}
