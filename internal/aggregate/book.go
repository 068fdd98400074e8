// Package aggregate folds normalized transactions into per-wallet totals.
package aggregate

import "github.com/Veraticus/walletscore/internal/model"

// Book maps wallet ids to their stats and remembers the order in which
// wallets were first seen.
type Book struct {
	wallets map[string]*model.WalletStats
	order   []string
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{wallets: make(map[string]*model.WalletStats)}
}

// Wallet returns the stats for id, creating a zeroed entry on first access.
func (b *Book) Wallet(id string) *model.WalletStats {
	if w, ok := b.wallets[id]; ok {
		return w
	}
	w := model.NewWalletStats(id)
	b.wallets[id] = w
	b.order = append(b.order, id)
	return w
}

// Get returns the stats for id without creating them.
func (b *Book) Get(id string) (*model.WalletStats, bool) {
	w, ok := b.wallets[id]
	return w, ok
}

// Len returns the number of wallets.
func (b *Book) Len() int {
	return len(b.order)
}

// Wallets returns all wallet stats in first-seen order.
func (b *Book) Wallets() []*model.WalletStats {
	out := make([]*model.WalletStats, len(b.order))
	for i, id := range b.order {
		out[i] = b.wallets[id]
	}
	return out
}
