// Package report assembles the final wallet ranking and renders or exports it.
package report

import (
	"github.com/Veraticus/walletscore/internal/model"
	"github.com/Veraticus/walletscore/internal/scoring"
)

// Slice sizes used by the standard reports.
const (
	ExportLimit = 1000
	PreviewSize = 10
	ChartSize   = 10
	SummarySize = 5
)

// Ranking is the final ordered wallet table.
type Ranking struct {
	wallets []model.ScoredWallet
}

// Assemble joins the normalized ranking with risk tiers and bot flags.
// normalized must come from scoring.NormalizedPass; its order is kept and
// re-established with the same stable sort.
func Assemble(normalized []model.ScoredWallet, bots scoring.BotFlags) *Ranking {
	wallets := make([]model.ScoredWallet, len(normalized))
	for i, w := range normalized {
		w.RiskCategory = scoring.Classify(w.Score)
		w.IsBot = bots.Has(w.WalletID)
		w.BotLabel = model.BotLabelFor(w.IsBot)
		wallets[i] = w
	}
	scoring.Rank(wallets)
	return &Ranking{wallets: wallets}
}

// NewRanking wraps wallets that are already in rank order, such as a table
// read back from storage.
func NewRanking(wallets []model.ScoredWallet) *Ranking {
	return &Ranking{wallets: wallets}
}

// Len returns the number of ranked wallets.
func (r *Ranking) Len() int {
	return len(r.wallets)
}

// Wallets returns every ranked wallet.
func (r *Ranking) Wallets() []model.ScoredWallet {
	return r.wallets
}

// Top returns the k best-ranked wallets, or all of them when there are fewer.
func (r *Ranking) Top(k int) []model.ScoredWallet {
	if k < 0 {
		k = 0
	}
	if k > len(r.wallets) {
		k = len(r.wallets)
	}
	return r.wallets[:k]
}

// Bottom returns the k worst-ranked wallets in rank order.
func (r *Ranking) Bottom(k int) []model.ScoredWallet {
	if k < 0 {
		k = 0
	}
	if k > len(r.wallets) {
		k = len(r.wallets)
	}
	return r.wallets[len(r.wallets)-k:]
}

// BotCount returns how many ranked wallets are flagged as bots.
func (r *Ranking) BotCount() int {
	n := 0
	for _, w := range r.wallets {
		if w.IsBot {
			n++
		}
	}
	return n
}

// RiskDistribution counts wallets per risk tier.
func (r *Ranking) RiskDistribution() map[model.RiskCategory]int {
	dist := map[model.RiskCategory]int{
		model.LowRisk:    0,
		model.MediumRisk: 0,
		model.HighRisk:   0,
	}
	for _, w := range r.wallets {
		dist[w.RiskCategory]++
	}
	return dist
}
