package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/walletscore/internal/cli"
	"github.com/Veraticus/walletscore/internal/common"
	"github.com/Veraticus/walletscore/internal/config"
	"github.com/Veraticus/walletscore/internal/report"
	"github.com/Veraticus/walletscore/internal/storage"
)

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show a stored scoring run",
		Long: `Print a ranked wallet table stored by "score --sqlite".

Without a run id the most recent run is shown.

Examples:
  walletscore show --sqlite scores.db
  walletscore show --sqlite scores.db 3f2a9c1e-...`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}

	cmd.Flags().String("sqlite", "", "SQLite database to read (default: export.sqlite from config)")
	cmd.Flags().Bool("no-chart", false, "Skip the score chart")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(nil)
	if err != nil {
		return common.NewUserError("Invalid configuration", err)
	}
	if dbPath, _ := cmd.Flags().GetString("sqlite"); dbPath != "" {
		cfg.SQLitePath = config.ExpandPath(dbPath)
	}
	if noChart, _ := cmd.Flags().GetBool("no-chart"); noChart {
		cfg.ShowChart = false
	}

	runID := ""
	if len(args) > 0 {
		runID = args[0]
	}

	return showRun(cmd.Context(), cfg, runID, cmd.OutOrStdout(), slog.Default())
}

// showRun prints a stored run. An empty runID selects the latest run.
func showRun(ctx context.Context, cfg *config.Config, runID string, out io.Writer, logger *slog.Logger) error {
	if cfg.SQLitePath == "" {
		return common.NewUserError("No database given; pass --sqlite or set export.sqlite", common.ErrMissingConfig)
	}
	if _, err := os.Stat(cfg.SQLitePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return common.NewUserError("Database not found: "+cfg.SQLitePath, err)
		}
		return fmt.Errorf("failed to stat database: %w", err)
	}

	store, err := storage.NewSQLiteStorage(cfg.SQLitePath, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "Failed to close database", common.Fields{"path": cfg.SQLitePath})
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if runID == "" {
		runID, err = store.LatestRunID(ctx)
		if errors.Is(err, storage.ErrNotFound) {
			_, writeErr := fmt.Fprintln(out, cli.FormatWarning("No stored runs in "+cfg.SQLitePath))
			return writeErr
		}
		if err != nil {
			return err
		}
	}

	run, err := store.GetRun(ctx, runID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return common.NewUserError("Unknown run "+runID, err)
		}
		return err
	}
	wallets, err := store.GetRankedWallets(ctx, runID)
	if err != nil {
		return err
	}

	ranking := report.NewRanking(wallets)
	console := report.NewConsole(out).WithRiskDistribution(ranking.RiskDistribution())

	if _, err := fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Run %s (%s)",
		run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05")))); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := console.RankingPreview(ranking.Top(cfg.PreviewSize)); err != nil {
		return err
	}
	if err := console.Summary(ranking.Top(cfg.SummarySize), ranking.Bottom(cfg.SummarySize)); err != nil {
		return err
	}
	if cfg.ShowChart {
		if err := console.Chart(ranking.Top(cfg.ChartSize)); err != nil {
			return err
		}
	}
	return console.Run(run)
}
