package aggregate

import (
	"log/slog"

	"github.com/Veraticus/walletscore/internal/model"
)

// Result is the outcome of an aggregation pass.
type Result struct {
	Book    *Book
	Skipped model.SkipCounts
	Applied int
}

// Aggregator accumulates transaction amounts per wallet and category.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Aggregate folds records into a Book in a single pass. Records that cannot
// be attributed to a wallet and category are counted and skipped.
func (a *Aggregator) Aggregate(records []model.TransactionRecord) *Result {
	result := &Result{
		Book:    NewBook(),
		Skipped: make(model.SkipCounts),
	}

	for _, rec := range records {
		if reason, ok := check(rec); !ok {
			result.Skipped[reason]++
			continue
		}
		result.Book.Wallet(rec.WalletID).Add(rec.Category, rec.Amount)
		result.Applied++
	}

	if n := result.Skipped.Total(); n > 0 {
		a.logger.Warn("Skipped unresolvable transactions", "count", n)
	}
	a.logger.Info("Aggregated wallet statistics",
		"wallets", result.Book.Len(),
		"transactions", result.Applied)

	return result
}

func check(rec model.TransactionRecord) (model.SkipReason, bool) {
	switch {
	case rec.WalletID == "":
		return model.SkipMissingWallet, false
	case !rec.Category.Valid():
		return model.SkipUnknownCategory, false
	case rec.Amount.IsNegative():
		return model.SkipNegativeAmount, false
	}
	return "", true
}
