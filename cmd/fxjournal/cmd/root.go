package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rustyeddy/fxjournal/config"
	"github.com/rustyeddy/fxjournal/journal"
)

var rootCmd = &cobra.Command{
	Use:   "fxjournal",
	Short: "A forex trading journal with derived-metric repair",
	Long: `fxjournal is a trading journal for FX accounts written in Go.

It provides tools for:
  - Recording and closing trades with pip, R-multiple and risk metrics
  - Importing MT4/MT5 account statements (CSV or zipped)
  - Reconciling account balances against closed trade P&L
  - Repairing missing derived metrics on historical trades
  - Performance analytics and risk reports
  - Risk-based position sizing and pre-trade policy checks`,
}

var (
	cfgPath string
	dbPath  string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
}

// loadConfig resolves configuration in flag > env > file > default order.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Journal.DBPath = dbPath
	}
	return cfg, nil
}

// openStore opens the journal database named by the resolved config.
func openStore() (*journal.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := journal.Open(cfg.Journal.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	return s, cfg, nil
}

// newLogger builds a console zap logger at the configured level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}
