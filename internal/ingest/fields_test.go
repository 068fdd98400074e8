package ingest

import (
	"encoding/json"
	"testing"

	"github.com/Veraticus/walletscore/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		raw    rawRecord
		reason model.SkipReason
		ok     bool
	}{
		{name: "valid", raw: rawRecord{wallet: "w", amount: "1.5", category: "repays"}, ok: true},
		{name: "scientific amount", raw: rawRecord{wallet: "w", amount: "1e3", category: "deposit"}, ok: true},
		{name: "missing wallet", raw: rawRecord{wallet: "  ", amount: "1", category: "deposit"}, reason: model.SkipMissingWallet},
		{name: "missing amount", raw: rawRecord{wallet: "w", category: "deposit"}, reason: model.SkipMissingAmount},
		{name: "missing category", raw: rawRecord{wallet: "w", amount: "1"}, reason: model.SkipMissingCategory},
		{name: "unknown category", raw: rawRecord{wallet: "w", amount: "1", category: "swaps"}, reason: model.SkipUnknownCategory},
		{name: "invalid amount", raw: rawRecord{wallet: "w", amount: "NaN", category: "deposit"}, reason: model.SkipInvalidAmount},
		{name: "overflowing amount", raw: rawRecord{wallet: "w", amount: "1e400", category: "deposit"}, reason: model.SkipInvalidAmount},
		{name: "huge exponent", raw: rawRecord{wallet: "w", amount: "1e50000000", category: "deposit"}, reason: model.SkipInvalidAmount},
		{name: "tiny exponent", raw: rawRecord{wallet: "w", amount: "1e-50000000", category: "deposit"}, reason: model.SkipInvalidAmount},
		{name: "too many integer digits", raw: rawRecord{wallet: "w", amount: "12345678901234567890123456789012345678901", category: "deposit"}, reason: model.SkipInvalidAmount},
		{name: "large but bounded", raw: rawRecord{wallet: "w", amount: "1234567890123456789012345678901234567890", category: "deposit"}, ok: true},
		{name: "wei precision", raw: rawRecord{wallet: "w", amount: "0.000000000000000001", category: "deposit"}, ok: true},
		{name: "zero with exponent", raw: rawRecord{wallet: "w", amount: "0e10", category: "deposit"}, ok: true},
		{name: "negative amount", raw: rawRecord{wallet: "w", amount: "-2", category: "deposit"}, reason: model.SkipNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, reason, ok := resolve(tt.raw, "test")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestWalletFromJSON(t *testing.T) {
	assert.Equal(t, "0xabc", walletFromJSON(json.RawMessage(`{"id": "0xabc"}`)))
	assert.Equal(t, "0xabc", walletFromJSON(json.RawMessage(`"0xabc"`)))
	assert.Equal(t, "", walletFromJSON(json.RawMessage(`{"address": "0xabc"}`)))
	assert.Equal(t, "", walletFromJSON(json.RawMessage(`null`)))
	assert.Equal(t, "", walletFromJSON(json.RawMessage(`[1]`)))
}

func TestWalletFromCell(t *testing.T) {
	assert.Equal(t, "0xabc", walletFromCell(" 0xabc "))
	assert.Equal(t, "0xabc", walletFromCell(`{"id": "0xabc"}`))
	assert.Equal(t, "0xabc", walletFromCell(`{'id': '0xabc'}`))
	assert.Equal(t, "", walletFromCell(`{broken`))
}
