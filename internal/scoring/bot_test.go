package scoring

import (
	"testing"

	"github.com/Veraticus/walletscore/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func repeated(wallet, amount string, n int, categories ...model.Category) []model.TransactionRecord {
	if len(categories) == 0 {
		categories = []model.Category{model.Deposit}
	}
	records := make([]model.TransactionRecord, n)
	for i := range records {
		records[i] = model.TransactionRecord{
			WalletID: wallet,
			Amount:   decimal.RequireFromString(amount),
			Category: categories[i%len(categories)],
		}
	}
	return records
}

func TestDetectBots_Threshold(t *testing.T) {
	var records []model.TransactionRecord
	records = append(records, repeated("ten", "50", 10)...)
	records = append(records, repeated("eleven", "50", 11)...)
	records = append(records, repeated("twelve", "50.0", 12)...)

	flags := DetectBots(records)

	assert.False(t, flags.Has("ten"))
	assert.True(t, flags.Has("eleven"))
	assert.True(t, flags.Has("twelve"))
	assert.Equal(t, 12, flags["twelve"])
	assert.Equal(t, []string{"eleven", "twelve"}, flags.Wallets())
}

func TestDetectBots_IgnoresCategory(t *testing.T) {
	records := repeated("mixed", "7.25", 11, model.Deposit, model.Borrow, model.Repay)
	assert.True(t, DetectBots(records).Has("mixed"))
}

func TestDetectBots_AmountsCompareByValue(t *testing.T) {
	var records []model.TransactionRecord
	records = append(records, repeated("w", "50", 4)...)
	records = append(records, repeated("w", "50.0", 4)...)
	records = append(records, repeated("w", "50.00", 3)...)

	assert.True(t, DetectBots(records).Has("w"))
}

func TestDetectBots_DistinctAmounts(t *testing.T) {
	var records []model.TransactionRecord
	for _, amount := range []string{"1", "2", "3"} {
		records = append(records, repeated("w", amount, 10)...)
	}
	records = append(records, repeated("other", "1", 10)...)

	assert.Empty(t, DetectBots(records))
}

func TestDetectBots_Empty(t *testing.T) {
	assert.Empty(t, DetectBots(nil))
	assert.Empty(t, DetectBots([]model.TransactionRecord{{Amount: decimal.NewFromInt(1)}}))
}
