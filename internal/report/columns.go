package report

import (
	"strconv"

	"github.com/Veraticus/walletscore/internal/model"
)

// ExportHeader returns the column names of the persisted wallet table.
func ExportHeader() []string {
	header := []string{"wallet_address"}
	for _, c := range model.Categories() {
		header = append(header, c.Column())
	}
	return append(header, "score", "risk_category", "is_bot", "bot_risk")
}

// ExportRow renders a wallet as export cells matching ExportHeader.
func ExportRow(w model.ScoredWallet) []string {
	row := []string{w.WalletID}
	for _, c := range model.Categories() {
		row = append(row, formatFloat(w.Totals.Get(c)))
	}
	return append(row,
		formatFloat(w.Score),
		string(w.RiskCategory),
		strconv.FormatBool(w.IsBot),
		string(w.BotLabel),
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
