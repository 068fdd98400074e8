package model

// RiskCategory is the risk tier assigned from a normalized score.
type RiskCategory string

// Risk tiers.
const (
	LowRisk    RiskCategory = "Low Risk"
	MediumRisk RiskCategory = "Medium Risk"
	HighRisk   RiskCategory = "High Risk"
)

// BotLabel is the display label derived from the bot flag.
type BotLabel string

// Bot labels.
const (
	LabelBot   BotLabel = "Bot"
	LabelHuman BotLabel = "Human"
)

// BotLabelFor returns the label for a bot flag.
func BotLabelFor(isBot bool) BotLabel {
	if isBot {
		return LabelBot
	}
	return LabelHuman
}

// ScoredWallet is a wallet with its score and derived labels.
// Totals are raw or normalized depending on the scoring pass that produced it.
type ScoredWallet struct {
	WalletID     string
	RiskCategory RiskCategory
	BotLabel     BotLabel
	Totals       Totals
	Score        float64
	TxCount      int
	IsBot        bool
}
