// Package testutil provides fixtures for building raw lending-protocol data in
// tests.
//
// Example:
//
//	doc := testutil.NewDocument().
//		Add(model.Deposit, "0xaaa", "100").
//		Repeat(model.Deposit, "0xbot", "50.0", 12)
//
//	dir := testutil.WriteDataDir(t, map[string][]byte{
//		"compound.json": doc.JSON(),
//		"rows.csv":      doc.CSV(),
//	})
package testutil

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/walletscore/internal/model"
)

// Entry is one raw transaction in a fixture document.
type Entry struct {
	Wallet   string
	Amount   string
	Category model.Category
}

// Document collects raw transactions and renders them in either source shape.
type Document struct {
	entries []Entry
}

// NewDocument creates an empty fixture document.
func NewDocument() *Document {
	return &Document{}
}

// Add appends one transaction.
func (d *Document) Add(category model.Category, wallet, amount string) *Document {
	d.entries = append(d.entries, Entry{Category: category, Wallet: wallet, Amount: amount})
	return d
}

// Repeat appends n identical transactions.
func (d *Document) Repeat(category model.Category, wallet, amount string, n int) *Document {
	for i := 0; i < n; i++ {
		d.Add(category, wallet, amount)
	}
	return d
}

// Entries returns the transactions in insertion order.
func (d *Document) Entries() []Entry {
	return d.entries
}

// JSON renders the keyed-document shape: one array per category key, each
// element carrying account.id and amountUSD.
func (d *Document) JSON() []byte {
	type account struct {
		ID string `json:"id"`
	}
	type item struct {
		Account   account `json:"account"`
		AmountUSD string  `json:"amountUSD"`
	}

	doc := make(map[string][]item)
	for _, e := range d.entries {
		key := e.Category.Key()
		doc[key] = append(doc[key], item{Account: account{ID: e.Wallet}, AmountUSD: e.Amount})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return data
}

// CSV renders the table shape with wallet_address, amountUSD and
// transaction_type columns.
func (d *Document) CSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"wallet_address", "amountUSD", "transaction_type"})
	for _, e := range d.entries {
		_ = w.Write([]string{e.Wallet, e.Amount, e.Category.Key()})
	}
	w.Flush()
	return buf.Bytes()
}

// WriteDataDir writes files into a fresh temporary directory and returns it.
func WriteDataDir(t *testing.T, files map[string][]byte) string {
	t.Helper()

	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0600); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}
