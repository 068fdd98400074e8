package ingest

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Veraticus/walletscore/internal/model"
	"github.com/shopspring/decimal"
)

// Field aliases accepted for each required value. Document keys are matched
// exactly, table headers case-insensitively.
var (
	walletFields   = []string{"account", "wallet_address", "wallet_id", "account_id", "wallet"}
	amountFields   = []string{"amountUSD", "amount_usd", "amount"}
	categoryFields = []string{"transaction_type", "type", "category"}
)

// Amount bounds. Values outside them are rejected as invalid so every
// accepted amount converts to a finite float64 and stays cheap to rescale.
const (
	maxAmountIntegerDigits = 40
	maxAmountScale         = 64
	maxAmountDigits        = 128
)

// rawRecord is a transaction whose fields have been located but not yet
// validated.
type rawRecord struct {
	wallet   string
	amount   string
	category string
}

// resolve validates a raw record and converts it to a TransactionRecord.
func resolve(raw rawRecord, source string) (model.TransactionRecord, model.SkipReason, bool) {
	wallet := strings.TrimSpace(raw.wallet)
	if wallet == "" {
		return model.TransactionRecord{}, model.SkipMissingWallet, false
	}

	amountText := strings.TrimSpace(raw.amount)
	if amountText == "" {
		return model.TransactionRecord{}, model.SkipMissingAmount, false
	}

	if strings.TrimSpace(raw.category) == "" {
		return model.TransactionRecord{}, model.SkipMissingCategory, false
	}
	category, ok := model.ParseCategory(raw.category)
	if !ok {
		return model.TransactionRecord{}, model.SkipUnknownCategory, false
	}

	amount, err := decimal.NewFromString(amountText)
	if err != nil || !amountInRange(amount) {
		return model.TransactionRecord{}, model.SkipInvalidAmount, false
	}
	if amount.IsNegative() {
		return model.TransactionRecord{}, model.SkipNegativeAmount, false
	}

	return model.TransactionRecord{
		WalletID: wallet,
		Amount:   amount,
		Category: category,
		Source:   source,
	}, "", true
}

// amountInRange reports whether d is small enough in magnitude and precision
// to score. It only inspects the exponent and coefficient length.
func amountInRange(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp > maxAmountIntegerDigits || exp < -maxAmountScale {
		return false
	}
	digits := int64(d.NumDigits())
	if digits > maxAmountDigits {
		return false
	}
	return d.IsZero() || digits+exp <= maxAmountIntegerDigits
}

// jsonScalar renders a JSON string or number as text. Objects, arrays and
// null yield false.
func jsonScalar(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[':
		return "", false
	default:
		return string(raw), true
	}
}

// walletFromJSON resolves a wallet reference that is either a nested account
// object carrying an "id" or a bare identifier.
func walletFromJSON(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var account map[string]json.RawMessage
		if err := json.Unmarshal(raw, &account); err != nil {
			return ""
		}
		id, _ := jsonScalar(account["id"])
		return id
	}

	id, _ := jsonScalar(raw)
	return id
}

// walletFromCell resolves a table cell that holds either a plain wallet id or
// a serialized account object. Python-style dict literals with single quotes
// are accepted as well since exported data frames write them that way.
func walletFromCell(cell string) string {
	cell = strings.TrimSpace(cell)
	if !strings.HasPrefix(cell, "{") {
		return cell
	}

	if id := walletFromJSON(json.RawMessage(cell)); id != "" {
		return id
	}
	return walletFromJSON(json.RawMessage(strings.ReplaceAll(cell, "'", `"`)))
}

// lookupJSON returns the first present field among names.
func lookupJSON(obj map[string]json.RawMessage, names []string) (json.RawMessage, bool) {
	for _, name := range names {
		if v, ok := obj[name]; ok {
			return v, true
		}
	}
	return nil, false
}
