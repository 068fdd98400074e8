package ingest

import (
	"context"
	"testing"

	"github.com/Veraticus/walletscore/internal/common"
	"github.com/Veraticus/walletscore/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "deposits": [
    {"account": {"id": "0xaaa"}, "amountUSD": "100.50"},
    {"account": {"id": "0xbbb"}, "amountUSD": 20}
  ],
  "borrows": [
    {"account": {"id": "0xaaa"}, "amountUSD": "40"}
  ],
  "repays": [
    {"account": {"id": "0xaaa"}, "amountUSD": "not-a-number"},
    {"account": null, "amountUSD": "5"},
    {"account": {"id": "0xccc"}}
  ],
  "liquidates": "oops",
  "meta": {"chain": "polygon"}
}`

func newTestNormalizer() *Normalizer {
	return NewNormalizer(common.DiscardLogger())
}

func TestNormalizer_KeyedDocument(t *testing.T) {
	src := NewMemorySource("compound.json", ShapeKeyedDocument, []byte(sampleDocument))

	result, err := newTestNormalizer().Normalize(context.Background(), []Source{src})
	require.NoError(t, err)

	require.Len(t, result.Records, 3)
	assert.Equal(t, "0xaaa", result.Records[0].WalletID)
	assert.Equal(t, model.Deposit, result.Records[0].Category)
	assert.Equal(t, "compound.json", result.Records[0].Source)
	assert.True(t, decimal.RequireFromString("100.5").Equal(result.Records[0].Amount))
	assert.Equal(t, model.Deposit, result.Records[1].Category)
	assert.True(t, decimal.NewFromInt(20).Equal(result.Records[1].Amount))
	assert.Equal(t, model.Borrow, result.Records[2].Category)

	assert.Equal(t, 1, result.Skipped[model.SkipInvalidAmount])
	assert.Equal(t, 1, result.Skipped[model.SkipMissingWallet])
	assert.Equal(t, 1, result.Skipped[model.SkipMissingAmount])
	assert.Equal(t, 1, result.LoadedSources())
}

func TestNormalizer_Table(t *testing.T) {
	csvData := "wallet_address,amountUSD,transaction_type\n" +
		"0xaaa,10,deposits\n" +
		"0xbbb,2.5,Repay\n" +
		"0xccc,7,flashloans\n" +
		",1,deposits\n" +
		"0xddd,-3,borrows\n" +
		"\"{'id': '0xeee'}\",4,withdraws\n"

	src := NewMemorySource("rows.csv", ShapeTable, []byte(csvData))

	result, err := newTestNormalizer().Normalize(context.Background(), []Source{src})
	require.NoError(t, err)

	require.Len(t, result.Records, 3)
	assert.Equal(t, "0xaaa", result.Records[0].WalletID)
	assert.Equal(t, model.Deposit, result.Records[0].Category)
	assert.Equal(t, model.Repay, result.Records[1].Category)
	assert.Equal(t, "0xeee", result.Records[2].WalletID)
	assert.Equal(t, model.Withdraw, result.Records[2].Category)

	assert.Equal(t, 1, result.Skipped[model.SkipUnknownCategory])
	assert.Equal(t, 1, result.Skipped[model.SkipMissingWallet])
	assert.Equal(t, 1, result.Skipped[model.SkipNegativeAmount])
}

func TestNormalizer_TableCategoryFromName(t *testing.T) {
	src := NewMemorySource("borrows.csv", ShapeTable, []byte("account_id,amount\n0xaaa,15\n"))

	result, err := newTestNormalizer().Normalize(context.Background(), []Source{src})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, model.Borrow, result.Records[0].Category)
}

func TestNormalizer_SkipsBadSources(t *testing.T) {
	sources := []Source{
		NewMemorySource("list.json", ShapeKeyedDocument, []byte(`[1, 2, 3]`)),
		NewMemorySource("broken.json", ShapeKeyedDocument, []byte(`{"deposits": [`)),
		NewMemorySource("notes.txt", ShapeUnknown, []byte("hello")),
		NewMemorySource("nocols.csv", ShapeTable, []byte("foo,bar\n1,2\n")),
		NewMemorySource("empty.json", ShapeKeyedDocument, []byte(`{"pools": []}`)),
		NewMemorySource("good.json", ShapeKeyedDocument,
			[]byte(`{"deposits": [{"account": {"id": "0xaaa"}, "amountUSD": "1"}]}`)),
	}

	var seen []string
	n := NewNormalizer(common.DiscardLogger(), WithSourceHook(func(r SourceReport) {
		seen = append(seen, r.Name)
	}))

	result, err := n.Normalize(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	require.Len(t, result.Sources, len(sources))

	assert.ErrorIs(t, result.Sources[0].Err, common.ErrUnsupportedSource)
	assert.ErrorIs(t, result.Sources[1].Err, common.ErrMalformedSource)
	assert.ErrorIs(t, result.Sources[2].Err, common.ErrUnsupportedSource)
	assert.ErrorIs(t, result.Sources[3].Err, common.ErrUnsupportedSource)
	assert.NoError(t, result.Sources[4].Err)
	assert.False(t, result.Sources[4].Loaded())
	assert.True(t, result.Sources[5].Loaded())
	assert.Equal(t, []string{"list.json", "broken.json", "notes.txt", "nocols.csv", "empty.json", "good.json"}, seen)
}

func TestNormalizer_NoData(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
	}{
		{name: "no sources", sources: nil},
		{
			name: "only unusable sources",
			sources: []Source{
				NewMemorySource("a.json", ShapeKeyedDocument, []byte(`"text"`)),
				NewMemorySource("b.json", ShapeKeyedDocument, []byte(`{"deposits": [{"amountUSD": "1"}]}`)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newTestNormalizer().Normalize(context.Background(), tt.sources)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrNoData)
			require.NotNil(t, result)
			assert.Empty(t, result.Records)
		})
	}
}

func TestNormalizer_ConcatenatesInOrder(t *testing.T) {
	first := NewMemorySource("first.csv", ShapeTable, []byte("wallet_id,amount,category\nw1,1,deposit\n"))
	second := NewMemorySource("second.csv", ShapeTable, []byte("wallet_id,amount,category\nw1,1,deposit\n"))

	result, err := newTestNormalizer().Normalize(context.Background(), []Source{first, second})
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "first.csv", result.Records[0].Source)
	assert.Equal(t, "second.csv", result.Records[1].Source)
}

func TestNormalizer_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewMemorySource("good.csv", ShapeTable, []byte("wallet_id,amount,category\nw1,1,deposit\n"))
	_, err := newTestNormalizer().Normalize(ctx, []Source{src})
	assert.ErrorIs(t, err, context.Canceled)
}
