// Package model defines the core domain models used throughout the application.
package model

import (
	"github.com/shopspring/decimal"
)

// TransactionRecord is a single normalized lending-protocol transaction.
// Records are only constructed once every field has been resolved.
type TransactionRecord struct {
	Amount   decimal.Decimal // Non-negative, in the source's common currency unit (USD)
	WalletID string
	Source   string // Name of the data source the record came from
	Category Category
}

// SkipReason explains why a raw record was dropped during ingestion or aggregation.
type SkipReason string

// Skip reasons.
const (
	SkipMissingWallet   SkipReason = "missing_wallet"
	SkipMissingAmount   SkipReason = "missing_amount"
	SkipInvalidAmount   SkipReason = "invalid_amount"
	SkipNegativeAmount  SkipReason = "negative_amount"
	SkipMissingCategory SkipReason = "missing_category"
	SkipUnknownCategory SkipReason = "unknown_category"
	SkipMalformed       SkipReason = "malformed_record"
)

// SkipCounts tallies dropped records by reason.
type SkipCounts map[SkipReason]int

// Total returns the number of dropped records across all reasons.
func (s SkipCounts) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Merge adds the counts from other into s.
func (s SkipCounts) Merge(other SkipCounts) {
	for reason, n := range other {
		s[reason] += n
	}
}
