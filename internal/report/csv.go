package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/walletscore/internal/common"
	"github.com/Veraticus/walletscore/internal/model"
)

const exportFileMode = 0o644

// CSVExporter writes the ranked table to a CSV file.
type CSVExporter struct {
	logger *slog.Logger
	path   string
}

// NewCSVExporter creates an exporter writing to path.
func NewCSVExporter(path string, logger *slog.Logger) *CSVExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVExporter{path: path, logger: logger}
}

// Path returns the destination file.
func (e *CSVExporter) Path() string {
	return e.path
}

// Export writes wallets to the CSV file. The file is written to a temporary
// name first and renamed into place, so a failed export leaves no partial file.
func (e *CSVExporter) Export(ctx context.Context, run *model.RunSummary, wallets []model.ScoredWallet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(e.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("%w: failed to create export directory: %v", common.ErrExportFailed, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(e.path)+".*")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", common.ErrExportFailed, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(ExportHeader()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", common.ErrExportFailed, err)
	}
	for _, wallet := range wallets {
		if err := w.Write(ExportRow(wallet)); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("%w: %v", common.ErrExportFailed, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", common.ErrExportFailed, err)
	}
	if err := tmp.Chmod(exportFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", common.ErrExportFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrExportFailed, err)
	}

	if err := os.Rename(tmpPath, e.path); err != nil {
		return fmt.Errorf("%w: %v", common.ErrExportFailed, err)
	}

	attrs := []any{"path", e.path, "rows", len(wallets)}
	if run != nil {
		attrs = append(attrs, "run_id", run.ID)
	}
	e.logger.Info("Exported ranked wallets", attrs...)
	return nil
}
