package aggregate

import (
	"testing"

	"github.com/Veraticus/walletscore/internal/common"
	"github.com/Veraticus/walletscore/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(wallet string, c model.Category, amount string) model.TransactionRecord {
	return model.TransactionRecord{
		WalletID: wallet,
		Category: c,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	records := []model.TransactionRecord{
		rec("0xbbb", model.Deposit, "10.1"),
		rec("0xaaa", model.Deposit, "100"),
		rec("0xbbb", model.Deposit, "0.2"),
		rec("0xaaa", model.Repay, "50"),
		rec("0xbbb", model.Liquidate, "3"),
		rec("", model.Deposit, "1"),
		{WalletID: "0xccc", Category: model.Category(9), Amount: decimal.NewFromInt(1)},
		rec("0xddd", model.Borrow, "-1"),
	}

	result := NewAggregator(common.DiscardLogger()).Aggregate(records)

	require.Equal(t, 2, result.Book.Len())
	assert.Equal(t, 5, result.Applied)
	assert.Equal(t, 3, result.Skipped.Total())
	assert.Equal(t, 1, result.Skipped[model.SkipMissingWallet])
	assert.Equal(t, 1, result.Skipped[model.SkipUnknownCategory])
	assert.Equal(t, 1, result.Skipped[model.SkipNegativeAmount])

	wallets := result.Book.Wallets()
	assert.Equal(t, "0xbbb", wallets[0].WalletID)
	assert.Equal(t, "0xaaa", wallets[1].WalletID)

	bbb, ok := result.Book.Get("0xbbb")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("10.3").Equal(bbb.Amount(model.Deposit)))
	assert.True(t, decimal.NewFromInt(3).Equal(bbb.Amount(model.Liquidate)))
	assert.True(t, bbb.Amount(model.Borrow).IsZero())
	assert.Equal(t, 3, bbb.TxCount)

	_, ok = result.Book.Get("0xccc")
	assert.False(t, ok)
}

func TestAggregator_Conservation(t *testing.T) {
	wallets := []string{"w1", "w2", "w3"}
	var records []model.TransactionRecord
	expected := map[string]map[model.Category]decimal.Decimal{}

	for i := 0; i < 200; i++ {
		w := wallets[i%len(wallets)]
		c := model.Categories()[i%model.NumCategories]
		amount := decimal.New(int64(i*7+1), -2)
		records = append(records, model.TransactionRecord{WalletID: w, Category: c, Amount: amount})

		if expected[w] == nil {
			expected[w] = map[model.Category]decimal.Decimal{}
		}
		expected[w][c] = expected[w][c].Add(amount)
	}

	result := NewAggregator(common.DiscardLogger()).Aggregate(records)

	for _, w := range wallets {
		stats, ok := result.Book.Get(w)
		require.True(t, ok)
		for _, c := range model.Categories() {
			assert.True(t, expected[w][c].Equal(stats.Amount(c)),
				"wallet %s category %s: want %s got %s", w, c, expected[w][c], stats.Amount(c))
		}
	}
}

func TestBook_WalletInitializesZeroTotals(t *testing.T) {
	book := NewBook()
	w := book.Wallet("0xabc")

	for _, c := range model.Categories() {
		assert.True(t, w.Amount(c).IsZero())
	}
	assert.Same(t, w, book.Wallet("0xabc"))
	assert.Equal(t, 1, book.Len())
}

func TestAggregator_Empty(t *testing.T) {
	result := NewAggregator(common.DiscardLogger()).Aggregate(nil)
	assert.Equal(t, 0, result.Book.Len())
	assert.Empty(t, result.Book.Wallets())
}
