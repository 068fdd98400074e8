package model

import "github.com/shopspring/decimal"

// Totals holds one value per category, indexed by Category.
type Totals [NumCategories]float64

// Get returns the value for a category.
func (t Totals) Get(c Category) float64 {
	return t[c]
}

// WalletStats accumulates per-category amounts for a single wallet.
type WalletStats struct {
	WalletID string
	Amounts  [NumCategories]decimal.Decimal
	TxCount  int
}

// NewWalletStats returns stats for walletID with every category total at zero.
func NewWalletStats(walletID string) *WalletStats {
	w := &WalletStats{WalletID: walletID}
	for i := range w.Amounts {
		w.Amounts[i] = decimal.Zero
	}
	return w
}

// Add accumulates amount into the category total.
func (w *WalletStats) Add(c Category, amount decimal.Decimal) {
	w.Amounts[c] = w.Amounts[c].Add(amount)
	w.TxCount++
}

// Amount returns the exact accumulated amount for a category.
func (w *WalletStats) Amount(c Category) decimal.Decimal {
	return w.Amounts[c]
}

// Totals converts the accumulated amounts to floating point for scoring.
func (w *WalletStats) Totals() Totals {
	var t Totals
	for i, amount := range w.Amounts {
		t[i] = amount.InexactFloat64()
	}
	return t
}
