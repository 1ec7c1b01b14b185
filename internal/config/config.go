// Package config loads the backtester configuration from a YAML file and
// applies environment variable overrides.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the backtester.
type Config struct {
	Storage  Storage  `yaml:"storage"`
	Alpaca   Alpaca   `yaml:"alpaca"`
	Logging  Logging  `yaml:"logging"`
	Backtest Backtest `yaml:"backtest"`
}

// Storage holds paths for data persistence: the Parquet bar cache and the
// SQLite run-history database.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
	OutputDir  string `yaml:"output_dir"`
}

// Alpaca holds credentials and endpoint for the Alpaca market-data API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Backtest holds the default run parameters. CLI flags use these as their
// defaults; a flag given on the command line wins.
type Backtest struct {
	Ticker string  `yaml:"ticker"`
	Start  string  `yaml:"start"`
	End    string  `yaml:"end"`
	FeeBps float64 `yaml:"fee_bps"`

	// Momentum filter.
	Lookback int `yaml:"lookback"`

	// Normal streak thresholds (used when momentum <= 0 and not in crash mode).
	DownDays int `yaml:"down_days"`
	UpDays   int `yaml:"up_days"`

	// Crash trigger: 5-day drop threshold, hold window, and faster streaks.
	CrashWeekDrop float64 `yaml:"crash_week_drop"`
	CrashHoldDays int     `yaml:"crash_hold_days"`
	CrashDownDays int     `yaml:"crash_down_days"`
	CrashUpDays   int     `yaml:"crash_up_days"`

	// Leverage applied when long in the momentum-down regime.
	DownLeverage         float64 `yaml:"down_leverage"`
	AllowLeverageInCrash bool    `yaml:"allow_leverage_in_crash"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Default returns the built-in configuration used when no config file is
// present.
func Default() *Config {
	return &Config{
		Storage: Storage{
			DataDir:    "data",
			SQLitePath: "data/regimebt.db",
			OutputDir:  "outputs",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Backtest: Backtest{
			Ticker:        "SPY",
			Start:         "2005-01-01",
			End:           "2024-12-31",
			FeeBps:        2.0,
			Lookback:      50,
			DownDays:      2,
			UpDays:        1,
			CrashWeekDrop: 0.08,
			CrashHoldDays: 5,
			CrashDownDays: 1,
			CrashUpDays:   1,
			DownLeverage:  1.3,
		},
	}
}

// Load reads the YAML configuration file at the given path on top of the
// built-in defaults, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to the defaults (plus env
// overrides) when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	cfg = Default()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Storage.OutputDir = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	// Canonical Alpaca SDK env vars take priority over our own.
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
