package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/walletscore/internal/model"
	"github.com/Veraticus/walletscore/internal/service"
)

var _ service.RankingStore = (*SQLiteStorage)(nil)

// Export stores the run and its ranked wallets in a single transaction.
// Rank is the 1-based position of the wallet in the slice.
func (s *SQLiteStorage) Export(ctx context.Context, run *model.RunSummary, wallets []model.ScoredWallet) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}
	if err := validateWallets(wallets); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO scoring_runs (id, started_at, sources_loaded, sources_skipped, records, records_skipped, wallets, bots)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.SourcesLoaded, run.SourcesSkipped,
		run.Records, run.RecordsSkipped, run.Wallets, run.Bots)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ranked_wallets (
			run_id, rank, wallet_address,
			total_deposit, total_withdraw, total_borrow, total_repay, total_liquidate,
			score, risk_category, is_bot, bot_risk
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, w := range wallets {
		_, err = stmt.ExecContext(ctx,
			run.ID, i+1, w.WalletID,
			w.Totals.Get(model.Deposit), w.Totals.Get(model.Withdraw), w.Totals.Get(model.Borrow),
			w.Totals.Get(model.Repay), w.Totals.Get(model.Liquidate),
			w.Score, string(w.RiskCategory), w.IsBot, string(w.BotLabel))
		if err != nil {
			return fmt.Errorf("failed to save wallet %s: %w", w.WalletID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}

	s.logger.Info("Stored ranked wallets",
		"db", s.dbPath,
		"run_id", run.ID,
		"rows", len(wallets))
	return nil
}

// GetRun returns the stored metadata for a run.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.RunSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var run model.RunSummary
	var startedAt time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, sources_loaded, sources_skipped, records, records_skipped, wallets, bots
		FROM scoring_runs WHERE id = ?`, id).Scan(
		&run.ID, &startedAt, &run.SourcesLoaded, &run.SourcesSkipped,
		&run.Records, &run.RecordsSkipped, &run.Wallets, &run.Bots)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.StartedAt = startedAt
	return &run, nil
}

// LatestRunID returns the id of the most recently started run.
func (s *SQLiteStorage) LatestRunID(ctx context.Context) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM scoring_runs ORDER BY started_at DESC, created_at DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: no runs stored", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get latest run: %w", err)
	}
	return id, nil
}

// GetRankedWallets returns a run's wallets in rank order.
func (s *SQLiteStorage) GetRankedWallets(ctx context.Context, runID string) ([]model.ScoredWallet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(runID, "runID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT wallet_address,
			total_deposit, total_withdraw, total_borrow, total_repay, total_liquidate,
			score, risk_category, is_bot, bot_risk
		FROM ranked_wallets
		WHERE run_id = ?
		ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranked wallets: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("Failed to close rows", "error", closeErr)
		}
	}()

	var wallets []model.ScoredWallet
	for rows.Next() {
		var w model.ScoredWallet
		var risk, label string
		if err := rows.Scan(&w.WalletID,
			&w.Totals[model.Deposit], &w.Totals[model.Withdraw], &w.Totals[model.Borrow],
			&w.Totals[model.Repay], &w.Totals[model.Liquidate],
			&w.Score, &risk, &w.IsBot, &label); err != nil {
			return nil, fmt.Errorf("failed to scan ranked wallet: %w", err)
		}
		w.RiskCategory = model.RiskCategory(risk)
		w.BotLabel = model.BotLabel(label)
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ranked wallets: %w", err)
	}

	return wallets, nil
}
