package report

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Veraticus/walletscore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWallets() []model.ScoredWallet {
	return []model.ScoredWallet{
		{
			WalletID:     "0x1111111111111111111111111111111111111111",
			Totals:       model.Totals{1, 0, 0, 1, 0},
			Score:        0.5,
			RiskCategory: model.MediumRisk,
			BotLabel:     model.LabelHuman,
		},
		{
			WalletID:     "0x2222222222222222222222222222222222222222",
			Totals:       model.Totals{0, 0, 1, 0, 1},
			Score:        -0.5,
			RiskCategory: model.HighRisk,
			IsBot:        true,
			BotLabel:     model.LabelBot,
		},
	}
}

func TestFormatter_RankingPreview(t *testing.T) {
	out := NewFormatter().FormatRankingPreview(sampleWallets())

	assert.Contains(t, out, "Top 2 wallets by normalized score")
	assert.Contains(t, out, "0x1111111111111111111111111111111111111111")
	assert.Contains(t, out, "0.5000")
	assert.Contains(t, out, "-0.5000")
	assert.Contains(t, out, "Medium Risk")
	assert.Contains(t, out, "High Risk")
}

func TestFormatter_RawPreview(t *testing.T) {
	wallets := []model.ScoredWallet{{WalletID: "0xabc", Totals: model.Totals{100, 0, 0, 50, 0}, Score: 35}}
	out := NewFormatter().FormatRawPreview(wallets)

	assert.Contains(t, out, "Top 1 wallets by raw score")
	assert.Contains(t, out, "Deposit")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "35.00")
}

func TestFormatter_Summary(t *testing.T) {
	wallets := sampleWallets()
	out := NewFormatter().FormatSummary(wallets[:1], wallets[1:])

	assert.Contains(t, out, "Top 1 wallets")
	assert.Contains(t, out, "Bottom 1 wallets")
	assert.Contains(t, out, "bot_risk")
	assert.Contains(t, out, "Bot")
	assert.Contains(t, out, "Human")
}

func TestFormatter_Chart(t *testing.T) {
	out := NewFormatter().FormatChart(sampleWallets())

	assert.Contains(t, out, "Wallet Address")
	assert.Contains(t, out, "Normalized Score")
	assert.Contains(t, out, ShortAddress("0x1111111111111111111111111111111111111111"))
	assert.Contains(t, out, ShortAddress("0x2222222222222222222222222222222222222222"))
	assert.Equal(t, 1, strings.Count(out, "-0.5000"))
}

func TestFormatter_Empty(t *testing.T) {
	f := NewFormatter()
	assert.Contains(t, f.FormatChart(nil), "No wallets to show")
	assert.Contains(t, f.FormatRankingPreview(nil), "No wallets to show")
	assert.Contains(t, f.FormatRawPreview(nil), "No wallets to show")
	assert.Empty(t, f.FormatRun(nil, nil))
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0xabc", ShortAddress("0xabc"))
	assert.Equal(t, "0x123456…cdef", ShortAddress("0x1234567890abcdef1234567890abcdef"))
	assert.Equal(t, "ウォレット番号一…七八九十", ShortAddress("ウォレット番号一二三四五六七八九十"))
	assert.True(t, utf8.ValidString(ShortAddress("ééééééééééééééééééé")))
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf).WithRiskDistribution(map[model.RiskCategory]int{model.HighRisk: 2})
	wallets := sampleWallets()

	require.NoError(t, console.RawPreview(wallets))
	require.NoError(t, console.RankingPreview(wallets))
	require.NoError(t, console.Summary(wallets[:1], wallets[1:]))
	require.NoError(t, console.Chart(wallets))
	require.NoError(t, console.Run(&model.RunSummary{ID: "run-42", Wallets: 2, Bots: 1}))

	out := buf.String()
	assert.Contains(t, out, "run-42")
	assert.Contains(t, out, "Wallets scored: 2")
	assert.Contains(t, out, "High Risk")
}
