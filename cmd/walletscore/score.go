package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/walletscore/internal/cli"
	"github.com/Veraticus/walletscore/internal/common"
	"github.com/Veraticus/walletscore/internal/config"
	"github.com/Veraticus/walletscore/internal/engine"
	"github.com/Veraticus/walletscore/internal/ingest"
	"github.com/Veraticus/walletscore/internal/report"
	"github.com/Veraticus/walletscore/internal/service"
	"github.com/Veraticus/walletscore/internal/storage"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score and rank wallets",
		Long: `Load transaction files from the data directory, score every wallet and
export the ranked table.

The largest files are loaded first. JSON files hold one array per category
(deposits, withdraws, borrows, repays, liquidates); CSV files carry one
transaction per row.

Examples:
  walletscore score                          # Score the 3 largest files in ./data
  walletscore score --data-dir dumps -n 0    # Score every file in ./dumps
  walletscore score --sqlite scores.db       # Also store the table in SQLite
  walletscore score --top 100 -o top100.csv  # Export only the best 100 wallets`,
		RunE: runScore,
	}

	// Flags
	cmd.Flags().StringP("data-dir", "d", config.DefaultDataDir, "Directory holding transaction files")
	cmd.Flags().IntP("max-files", "n", config.DefaultMaxFiles, "Load only the N largest files (0 = all)")
	cmd.Flags().StringP("output", "o", config.DefaultExportPath, "CSV export path")
	cmd.Flags().Int("top", config.DefaultExportLimit, "Number of ranked wallets to export")
	cmd.Flags().String("sqlite", "", "Also write the ranked table to this SQLite database")
	cmd.Flags().Bool("no-chart", false, "Skip the score chart")
	cmd.Flags().Bool("no-progress", false, "Hide the loading progress bar")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag(config.KeyDataDir, cmd.Flags().Lookup("data-dir"))
	_ = viper.BindPFlag(config.KeyMaxFiles, cmd.Flags().Lookup("max-files"))
	_ = viper.BindPFlag(config.KeyExportPath, cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag(config.KeyExportLimit, cmd.Flags().Lookup("top"))
	_ = viper.BindPFlag(config.KeySQLitePath, cmd.Flags().Lookup("sqlite"))

	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(nil)
	if err != nil {
		return common.NewUserError("Invalid configuration", err)
	}
	if noChart, _ := cmd.Flags().GetBool("no-chart"); noChart {
		cfg.ShowChart = false
	}
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); noProgress {
		cfg.ShowProgress = false
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context())

	err = scoreWallets(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), slog.Default())
	if handler.WasInterrupted() {
		return nil
	}
	return err
}

// scoreWallets runs the pipeline against cfg.DataDir, prints the console
// report to out and writes the configured exports.
func scoreWallets(ctx context.Context, cfg *config.Config, out, errOut io.Writer, logger *slog.Logger) error {
	sources, err := ingest.DiscoverFiles(cfg.DataDir, cfg.MaxFiles)
	if err != nil {
		if common.IsNoData(err) {
			return warnNoData(out, logger, cfg.DataDir, err)
		}
		return fmt.Errorf("failed to discover data files: %w", err)
	}

	var opts []engine.Option
	var progress *cli.SourceProgress
	if cfg.ShowProgress {
		progress = cli.NewSourceProgress(errOut, len(sources))
		opts = append(opts, engine.WithSourceHook(func(r ingest.SourceReport) {
			progress.Advance(r.Name)
		}))
	}

	result, err := engine.New(logger, opts...).Run(ctx, sources)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		if common.IsNoData(err) {
			return warnNoData(out, logger, cfg.DataDir, err)
		}
		return err
	}

	if err := printReport(ctx, cfg, report.NewConsole(out).WithRiskDistribution(result.Ranking.RiskDistribution()), result); err != nil {
		return err
	}

	exported := result.Ranking.Top(cfg.ExportLimit)
	exporters, closeAll, err := openExporters(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeAll()

	for _, exporter := range exporters {
		if err := exporter.Export(ctx, result.Run, exported); err != nil {
			return fmt.Errorf("failed to export rankings: %w", err)
		}
	}

	common.LogInfo("Exported rankings", common.Fields{
		"run_id": result.Run.ID,
		"path":   cfg.ExportPath,
		"rows":   len(exported),
	})

	if _, err := fmt.Fprintln(out, cli.FormatSuccess(
		fmt.Sprintf("Exported %d wallets to %s", len(exported), cfg.ExportPath))); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if cfg.SQLitePath != "" {
		if _, err := fmt.Fprintln(out, cli.FormatInfo(
			fmt.Sprintf("%s Stored run %s in %s", cli.FolderIcon, result.Run.ID, cfg.SQLitePath))); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func printReport(ctx context.Context, cfg *config.Config, sink service.ReportSink, result *engine.Result) error {
	ranking := result.Ranking

	steps := []func() error{
		func() error { return sink.RawPreview(topOf(result.Raw, cfg.PreviewSize)) },
		func() error { return sink.RankingPreview(ranking.Top(cfg.PreviewSize)) },
		func() error { return sink.Summary(ranking.Top(cfg.SummarySize), ranking.Bottom(cfg.SummarySize)) },
	}
	if cfg.ShowChart {
		steps = append(steps, func() error { return sink.Chart(ranking.Top(cfg.ChartSize)) })
	}
	steps = append(steps, func() error { return sink.Run(result.Run) })

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// openExporters returns the CSV exporter plus the SQLite store when one is
// configured. The returned func closes anything that was opened.
func openExporters(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]service.RankingExporter, func(), error) {
	exporters := []service.RankingExporter{report.NewCSVExporter(cfg.ExportPath, logger)}
	if cfg.SQLitePath == "" {
		return exporters, func() {}, nil
	}

	store, err := storage.NewSQLiteStorage(cfg.SQLitePath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	closeStore := func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "Failed to close database", common.Fields{"path": cfg.SQLitePath})
		}
	}

	if err := store.Migrate(ctx); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return append(exporters, store), closeStore, nil
}

func warnNoData(out io.Writer, logger *slog.Logger, dir string, cause error) error {
	msg := cli.FormatWarning("No transaction data found") + "\n" +
		cli.FormatInfo(fmt.Sprintf("Add .json or .csv files to %s and run again. No export was written.", dir))

	logger.Warn("Nothing to score", "data_dir", dir, "reason", cause)

	if _, err := fmt.Fprintln(out, msg); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func topOf[T any](items []T, k int) []T {
	if k < 0 {
		k = 0
	}
	if k > len(items) {
		k = len(items)
	}
	return items[:k]
}
