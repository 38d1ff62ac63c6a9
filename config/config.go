package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/fxjournal/market"
	"github.com/rustyeddy/fxjournal/risk"
)

// Config is the complete journal configuration.
type Config struct {
	Journal     JournalConfig     `json:"journal" yaml:"journal"`
	Preferences PreferencesConfig `json:"preferences" yaml:"preferences"`
	Logging     LoggingConfig     `json:"logging" yaml:"logging"`
}

// JournalConfig contains storage parameters.
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PreferencesConfig contains the trader's defaults and self-imposed limits.
type PreferencesConfig struct {
	DefaultPair      string  `json:"default_pair" yaml:"default_pair"`
	DefaultRiskPct   float64 `json:"default_risk_pct" yaml:"default_risk_pct"`
	MaxRiskPct       float64 `json:"max_risk_pct" yaml:"max_risk_pct"`
	MaxDailyLossPct  float64 `json:"max_daily_loss_pct" yaml:"max_daily_loss_pct"`
	MaxWeeklyLossPct float64 `json:"max_weekly_loss_pct" yaml:"max_weekly_loss_pct"`
	MaxOpenTrades    int     `json:"max_open_trades" yaml:"max_open_trades"`
	MinRR            float64 `json:"min_rr" yaml:"min_rr"`
}

// LoggingConfig contains log output parameters.
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	p := risk.DefaultPolicy()
	return &Config{
		Journal: JournalConfig{DBPath: "fxjournal.db"},
		Preferences: PreferencesConfig{
			DefaultPair:      "EURUSD",
			DefaultRiskPct:   p.DefaultRiskPct,
			MaxRiskPct:       p.MaxRiskPct,
			MaxDailyLossPct:  p.MaxDailyLossPct,
			MaxWeeklyLossPct: p.MaxWeeklyLossPct,
			MaxOpenTrades:    p.MaxOpenTrades,
			MinRR:            p.MinRR,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Policy converts the configured preferences into a risk policy.
func (c *Config) Policy() risk.Policy {
	return risk.Policy{
		DefaultRiskPct:   c.Preferences.DefaultRiskPct,
		MaxRiskPct:       c.Preferences.MaxRiskPct,
		MaxDailyLossPct:  c.Preferences.MaxDailyLossPct,
		MaxWeeklyLossPct: c.Preferences.MaxWeeklyLossPct,
		MaxOpenTrades:    c.Preferences.MaxOpenTrades,
		MinRR:            c.Preferences.MinRR,
	}
}

// LoadFromFile loads configuration from a file (JSON or YAML based on
// content), applies env overrides, then validates.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load returns the file config when path is non-empty, otherwise the
// defaults with env overrides applied. A .env file in the working directory
// is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path != "" {
		return LoadFromFile(path)
	}

	cfg := Default()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	c.Journal.DBPath = getEnv("FXJOURNAL_DB", c.Journal.DBPath)
	c.Logging.Level = getEnv("FXJOURNAL_LOG_LEVEL", c.Logging.Level)
	c.Preferences.DefaultPair = getEnv("FXJOURNAL_DEFAULT_PAIR", c.Preferences.DefaultPair)
	c.Preferences.DefaultRiskPct = getEnvAsFloat("FXJOURNAL_DEFAULT_RISK_PCT", c.Preferences.DefaultRiskPct)
	c.Preferences.MaxRiskPct = getEnvAsFloat("FXJOURNAL_MAX_RISK_PCT", c.Preferences.MaxRiskPct)
	c.Preferences.MaxOpenTrades = getEnvAsInt("FXJOURNAL_MAX_OPEN_TRADES", c.Preferences.MaxOpenTrades)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if c.Preferences.DefaultRiskPct <= 0 || c.Preferences.DefaultRiskPct > 1 {
		return fmt.Errorf("preferences.default_risk_pct must be between 0 and 1")
	}
	if c.Preferences.MaxRiskPct < c.Preferences.DefaultRiskPct || c.Preferences.MaxRiskPct > 1 {
		return fmt.Errorf("preferences.max_risk_pct must be between default_risk_pct and 1")
	}
	if c.Preferences.MaxOpenTrades <= 0 {
		return fmt.Errorf("preferences.max_open_trades must be positive")
	}
	if c.Preferences.MinRR < 0 {
		return fmt.Errorf("preferences.min_rr must not be negative")
	}
	// Any plausible pair is allowed; trades on pairs outside the metadata
	// table use the textual pip convention, and the default must not be
	// stricter than what the journal records.
	if c.Preferences.DefaultPair != "" && !market.ValidSymbol(c.Preferences.DefaultPair) {
		return fmt.Errorf("preferences.default_pair %q is not a currency pair", c.Preferences.DefaultPair)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
