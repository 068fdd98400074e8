package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/Veraticus/walletscore/internal/common"
	"github.com/Veraticus/walletscore/internal/model"
)

// readKeyedDocument normalizes a JSON object of the form
//
//	{"deposits": [{"account": {"id": "0x.."}, "amountUSD": "12.5"}, ...], "borrows": [...]}
//
// Keys other than the five category keys are ignored.
func (n *Normalizer) readKeyedDocument(r io.Reader, name string) ([]model.TransactionRecord, model.SkipCounts, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", common.ErrMalformedSource, name, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil, fmt.Errorf("%w: %s: document is not an object", common.ErrUnsupportedSource, name)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", common.ErrMalformedSource, name, err)
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	n.logger.Debug("Document keys", "source", name, "keys", keys)

	var records []model.TransactionRecord
	skipped := make(model.SkipCounts)

	for _, category := range model.Categories() {
		value, ok := doc[category.Key()]
		if !ok {
			continue
		}

		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err != nil {
			n.logger.Warn("Category value is not an array",
				"source", name,
				"key", category.Key(),
				"error", err)
			continue
		}

		for i, item := range items {
			var txn map[string]json.RawMessage
			if err := json.Unmarshal(item, &txn); err != nil || txn == nil {
				skipped[model.SkipMalformed]++
				n.logger.Debug("Skipping malformed transaction",
					"source", name,
					"key", category.Key(),
					"index", i)
				continue
			}

			pending := rawRecord{category: category.Key()}
			if account, found := lookupJSON(txn, walletFields); found {
				pending.wallet = walletFromJSON(account)
			}
			if amount, found := lookupJSON(txn, amountFields); found {
				pending.amount, _ = jsonScalar(amount)
			}

			record, reason, ok := resolve(pending, name)
			if !ok {
				skipped[reason]++
				n.logger.Debug("Skipping transaction",
					"source", name,
					"key", category.Key(),
					"index", i,
					"reason", reason)
				continue
			}
			records = append(records, record)
		}
	}

	return records, skipped, nil
}
