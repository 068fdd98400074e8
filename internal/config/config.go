package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/walletscore/internal/common"
)

// Configuration keys.
const (
	KeyDataDir     = "data.dir"
	KeyMaxFiles    = "data.max_files"
	KeyExportPath  = "export.path"
	KeyExportLimit = "export.limit"
	KeySQLitePath  = "export.sqlite"
	KeyPreviewSize = "report.preview_size"
	KeySummarySize = "report.summary_size"
	KeyChartSize   = "report.chart_size"
	KeyChart       = "report.chart"
	KeyProgress    = "report.progress"
	KeyLogLevel    = "logging.level"
	KeyLogFormat   = "logging.format"
)

// Defaults.
const (
	DefaultDataDir     = "data"
	DefaultMaxFiles    = 3
	DefaultExportPath  = "top_1000_wallets.csv"
	DefaultExportLimit = 1000
	DefaultPreviewSize = 10
	DefaultSummarySize = 5
	DefaultChartSize   = 10
)

// Config is the validated runtime configuration for a scoring run.
type Config struct {
	DataDir      string
	ExportPath   string
	SQLitePath   string
	MaxFiles     int
	ExportLimit  int
	PreviewSize  int
	SummarySize  int
	ChartSize    int
	ShowChart    bool
	ShowProgress bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataDir, DefaultDataDir)
	v.SetDefault(KeyMaxFiles, DefaultMaxFiles)
	v.SetDefault(KeyExportPath, DefaultExportPath)
	v.SetDefault(KeyExportLimit, DefaultExportLimit)
	v.SetDefault(KeySQLitePath, "")
	v.SetDefault(KeyPreviewSize, DefaultPreviewSize)
	v.SetDefault(KeySummarySize, DefaultSummarySize)
	v.SetDefault(KeyChartSize, DefaultChartSize)
	v.SetDefault(KeyChart, true)
	v.SetDefault(KeyProgress, true)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load reads the scoring configuration from v, falling back to the global
// viper instance when v is nil. Paths have ~ and environment variables expanded.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)

	cfg := &Config{
		DataDir:      ExpandPath(strings.TrimSpace(v.GetString(KeyDataDir))),
		ExportPath:   ExpandPath(strings.TrimSpace(v.GetString(KeyExportPath))),
		SQLitePath:   ExpandPath(strings.TrimSpace(v.GetString(KeySQLitePath))),
		MaxFiles:     v.GetInt(KeyMaxFiles),
		ExportLimit:  v.GetInt(KeyExportLimit),
		PreviewSize:  v.GetInt(KeyPreviewSize),
		SummarySize:  v.GetInt(KeySummarySize),
		ChartSize:    v.GetInt(KeyChartSize),
		ShowChart:    v.GetBool(KeyChart),
		ShowProgress: v.GetBool(KeyProgress),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	switch {
	case c.DataDir == "":
		return fmt.Errorf("%w: %s must not be empty", common.ErrMissingConfig, KeyDataDir)
	case c.ExportPath == "":
		return fmt.Errorf("%w: %s must not be empty", common.ErrMissingConfig, KeyExportPath)
	case c.MaxFiles < 0:
		return fmt.Errorf("%w: %s must be 0 or greater, got %d", common.ErrInvalidConfig, KeyMaxFiles, c.MaxFiles)
	case c.ExportLimit <= 0:
		return fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeyExportLimit, c.ExportLimit)
	case c.PreviewSize <= 0:
		return fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeyPreviewSize, c.PreviewSize)
	case c.SummarySize <= 0:
		return fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeySummarySize, c.SummarySize)
	case c.ChartSize <= 0:
		return fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeyChartSize, c.ChartSize)
	}
	return nil
}
