// Package main contains the walletscore CLI commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/walletscore/internal/cli"
	"github.com/Veraticus/walletscore/internal/common"
	"github.com/Veraticus/walletscore/internal/config"
)

var (
	cfgFile string
	envFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "walletscore",
		Short: "💰 Wallet credit and risk scoring",
		Long: `walletscore: scores lending-protocol wallets from their on-chain history.

It loads deposits, withdrawals, borrows, repayments and liquidations,
ranks every wallet by a normalized credit score, assigns a risk tier,
flags bot-like wallets and exports the ranked table.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/walletscore/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment is read")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(cliErrorMessage(err)))
		os.Exit(1)
	}
}

func cliErrorMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.Error()
	}
	return "Error: " + err.Error()
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Values from the dotenv file never override the real environment.
	if envFile != "" {
		if err := godotenv.Load(config.ExpandPath(envFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/walletscore", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables: WALLETSCORE_DATA_DIR sets data.dir
	viper.SetEnvPrefix("WALLETSCORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	config.SetDefaults(viper.GetViper())

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, viper.GetString(config.KeyLogFormat))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "walletscore %s\n", version)
		},
	}
}
