package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "fxjournal.db", cfg.Journal.DBPath)
	assert.Equal(t, "EURUSD", cfg.Preferences.DefaultPair)
	assert.InDelta(t, 0.005, cfg.Preferences.DefaultRiskPct, 1e-12)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
journal:
  db_path: /tmp/journal.db
preferences:
  default_pair: USDJPY
  default_risk_pct: 0.01
  max_risk_pct: 0.02
  max_open_trades: 5
  min_rr: 2.0
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/journal.db", cfg.Journal.DBPath)
	assert.Equal(t, "USDJPY", cfg.Preferences.DefaultPair)
	assert.InDelta(t, 0.01, cfg.Preferences.DefaultRiskPct, 1e-12)
	assert.Equal(t, 5, cfg.Preferences.MaxOpenTrades)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  "journal": {"db_path": "journal.db"},
  "preferences": {
    "default_pair": "GBPUSD",
    "default_risk_pct": 0.0075,
    "max_risk_pct": 0.015,
    "max_open_trades": 2,
    "min_rr": 1.0
  },
  "logging": {"level": "warn"}
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "GBPUSD", cfg.Preferences.DefaultPair)
	assert.InDelta(t, 0.015, cfg.Preferences.MaxRiskPct, 1e-12)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
preferences:
  default_risk_pct: 5.0
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_risk_pct")
}

func TestLoadFromFile_PairOutsideInstrumentTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
preferences:
  default_pair: GBPJPY
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	// Pairs without metadata are still tradable via the pip fallback, so the
	// default may name them too.
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GBPJPY", cfg.Preferences.DefaultPair)
}

func TestLoadFromFile_MalformedPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
preferences:
  default_pair: "12345"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a currency pair")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FXJOURNAL_DB", "/var/lib/override.db")
	t.Setenv("FXJOURNAL_MAX_OPEN_TRADES", "7")
	t.Setenv("FXJOURNAL_LOG_LEVEL", "error")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/override.db", cfg.Journal.DBPath)
	assert.Equal(t, 7, cfg.Preferences.MaxOpenTrades)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	cfg := Default()
	cfg.Preferences.MinRR = 2.5
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, loaded.Preferences.MinRR, 1e-12)
}

func TestPolicyBridge(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Preferences.MaxRiskPct = 0.02
	cfg.Preferences.MinRR = 3.0

	p := cfg.Policy()
	assert.InDelta(t, 0.02, p.MaxRiskPct, 1e-12)
	assert.InDelta(t, 3.0, p.MinRR, 1e-12)
	assert.Equal(t, cfg.Preferences.MaxOpenTrades, p.MaxOpenTrades)
}
