// Package scoring computes wallet scores, risk tiers and bot flags.
package scoring

import (
	"math"
	"sort"

	"github.com/Veraticus/walletscore/internal/model"
)

// Score weights. Withdrawals are not part of the score.
const (
	DepositWeight   = 0.2
	RepayWeight     = 0.3
	BorrowWeight    = 0.3
	LiquidateWeight = 0.2
)

// Score computes the linear heuristic score for a set of totals.
func Score(t model.Totals) float64 {
	return t.Get(model.Deposit)*DepositWeight +
		t.Get(model.Repay)*RepayWeight -
		t.Get(model.Borrow)*BorrowWeight -
		t.Get(model.Liquidate)*LiquidateWeight
}

// RawPass scores wallets on their accumulated totals and ranks them.
// wallets must be in first-seen order; that order breaks score ties.
func RawPass(wallets []*model.WalletStats) []model.ScoredWallet {
	scored := make([]model.ScoredWallet, len(wallets))
	for i, w := range wallets {
		totals := w.Totals()
		scored[i] = model.ScoredWallet{
			WalletID: w.WalletID,
			Totals:   totals,
			Score:    Score(totals),
			TxCount:  w.TxCount,
		}
	}
	Rank(scored)
	return scored
}

// NormalizedPass min-max scales every total column across the population,
// scores the scaled totals and ranks the result.
func NormalizedPass(wallets []*model.WalletStats) []model.ScoredWallet {
	raw := make([]model.Totals, len(wallets))
	for i, w := range wallets {
		raw[i] = w.Totals()
	}
	normalized := Normalize(raw)

	scored := make([]model.ScoredWallet, len(wallets))
	for i, w := range wallets {
		scored[i] = model.ScoredWallet{
			WalletID: w.WalletID,
			Totals:   normalized[i],
			Score:    Score(normalized[i]),
			TxCount:  w.TxCount,
		}
	}
	Rank(scored)
	return scored
}

// Normalize min-max scales each column independently to [0, 1]:
// (x - min) / (max - min). A column with no spread scales to 0. Non-finite
// inputs are treated as 0 and never reach the output.
func Normalize(rows []model.Totals) []model.Totals {
	out := make([]model.Totals, len(rows))
	if len(rows) == 0 {
		return out
	}

	var lo, hi model.Totals
	lo, hi = finiteRow(rows[0]), finiteRow(rows[0])
	for _, row := range rows[1:] {
		row = finiteRow(row)
		for c := range row {
			if row[c] < lo[c] {
				lo[c] = row[c]
			}
			if row[c] > hi[c] {
				hi[c] = row[c]
			}
		}
	}

	for i, row := range rows {
		row = finiteRow(row)
		for c := range row {
			span := hi[c] - lo[c]
			if span <= 0 || math.IsInf(span, 0) {
				out[i][c] = 0
				continue
			}
			v := (row[c] - lo[c]) / span
			// Guard against rounding pushing a value just outside the range.
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			out[i][c] = v
		}
	}
	return out
}

func finiteRow(row model.Totals) model.Totals {
	for c, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			row[c] = 0
		}
	}
	return row
}

// Rank sorts wallets by score, highest first. The sort is stable so wallets
// with equal scores keep their incoming order.
func Rank(wallets []model.ScoredWallet) {
	sort.SliceStable(wallets, func(i, j int) bool {
		return wallets[i].Score > wallets[j].Score
	})
}
