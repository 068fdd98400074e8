package scoring

import "github.com/Veraticus/walletscore/internal/model"

// Risk tier cutoffs for normalized scores. Both are strict lower bounds.
const (
	LowRiskThreshold    = 0.7
	MediumRiskThreshold = 0.4
)

// Classify maps a normalized score to its risk tier.
func Classify(score float64) model.RiskCategory {
	switch {
	case score > LowRiskThreshold:
		return model.LowRisk
	case score > MediumRiskThreshold:
		return model.MediumRisk
	default:
		return model.HighRisk
	}
}
