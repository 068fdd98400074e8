package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Veraticus/walletscore/internal/common"
	"github.com/Veraticus/walletscore/internal/model"
)

// tableColumns holds the header positions of the fields a row needs.
// A category index of -1 means the category is implied by the source name.
type tableColumns struct {
	implied  string
	wallet   int
	amount   int
	category int
}

func findColumn(header []string, names []string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}

func resolveColumns(header []string, name string) (tableColumns, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	cols := tableColumns{
		wallet:   findColumn(header, walletFields),
		amount:   findColumn(header, amountFields),
		category: findColumn(header, categoryFields),
	}

	var missing []string
	if cols.wallet < 0 {
		missing = append(missing, "wallet")
	}
	if cols.amount < 0 {
		missing = append(missing, "amount")
	}
	if cols.category < 0 {
		// deposits.csv, borrows.csv, ... carry their category in the file name.
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if _, ok := model.ParseCategory(stem); ok {
			cols.implied = stem
		} else {
			missing = append(missing, "category")
		}
	}

	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: %s: missing columns %s",
			common.ErrUnsupportedSource, name, strings.Join(missing, ", "))
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// readTable normalizes a CSV file with a header row.
func (n *Normalizer) readTable(r io.Reader, name string) ([]model.TransactionRecord, model.SkipCounts, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%w: %s: empty table", common.ErrUnsupportedSource, name)
		}
		return nil, nil, fmt.Errorf("%w: %s: %v", common.ErrMalformedSource, name, err)
	}

	cols, err := resolveColumns(header, name)
	if err != nil {
		return nil, nil, err
	}

	var records []model.TransactionRecord
	skipped := make(model.SkipCounts)
	line := 1

	for {
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		line++
		if readErr != nil {
			var parseErr *csv.ParseError
			if errors.As(readErr, &parseErr) {
				skipped[model.SkipMalformed]++
				n.logger.Debug("Skipping malformed row", "source", name, "line", line, "error", readErr)
				continue
			}
			return nil, nil, fmt.Errorf("failed to read %s: %w", name, readErr)
		}

		raw := rawRecord{
			wallet:   walletFromCell(cell(row, cols.wallet)),
			amount:   cell(row, cols.amount),
			category: cols.implied,
		}
		if cols.category >= 0 {
			raw.category = cell(row, cols.category)
		}

		record, reason, ok := resolve(raw, name)
		if !ok {
			skipped[reason]++
			n.logger.Debug("Skipping row", "source", name, "line", line, "reason", reason)
			continue
		}
		records = append(records, record)
	}

	return records, skipped, nil
}
