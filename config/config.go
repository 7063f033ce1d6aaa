package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full trader configuration.
type Config struct {
	Trader  TraderConfig  `yaml:"trader"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// TraderConfig controls the scanning loop and the engine call arguments.
type TraderConfig struct {
	PollIntervalMs int     `yaml:"poll_interval_ms"`
	MinEdge        float64 `yaml:"min_edge"`
	OrderSize      float64 `yaml:"order_size"`
	MaxWaitMs      int     `yaml:"max_wait_ms"`
	TopN           int     `yaml:"top_n"`
	MinVolume      float64 `yaml:"min_volume"`
	ExitFeeBuffer  float64 `yaml:"exit_fee_buffer"`
}

// APIConfig holds the API base URLs.
type APIConfig struct {
	CLOBBase  string `yaml:"clob_base"`
	GammaBase string `yaml:"gamma_base"`
}

// StorageConfig controls where the portfolio blob is persisted.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path, or ":memory:"
}

// LogConfig controls log format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML file and the .env file if present. Env values override
// the YAML for the keys they cover.
func Load(path string) (*Config, error) {
	// Load .env if present (missing file is not an error)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// PollInterval returns the scan interval as a time.Duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Trader.PollIntervalMs) * time.Millisecond
}

// MaxWait returns the hedge wait limit as a time.Duration.
func (c *Config) MaxWait() time.Duration {
	return time.Duration(c.Trader.MaxWaitMs) * time.Millisecond
}

// applyEnvOverrides overrides values from environment variables when set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("CLOB_BASE"); v != "" {
		cfg.API.CLOBBase = v
	}
	if v := os.Getenv("GAMMA_BASE"); v != "" {
		cfg.API.GammaBase = v
	}
}

// setDefaults fills required values with the defaults the app shipped with.
func setDefaults(cfg *Config) {
	if cfg.Trader.PollIntervalMs <= 0 {
		cfg.Trader.PollIntervalMs = 3000
	}
	if cfg.Trader.MinEdge <= 0 {
		cfg.Trader.MinEdge = 0.02
	}
	if cfg.Trader.OrderSize <= 0 {
		cfg.Trader.OrderSize = 10
	}
	if cfg.Trader.MaxWaitMs <= 0 {
		cfg.Trader.MaxWaitMs = 2000
	}
	if cfg.Trader.TopN <= 0 {
		cfg.Trader.TopN = 50
	}
	if cfg.Trader.MinVolume <= 0 {
		cfg.Trader.MinVolume = 10000
	}
	if cfg.Trader.ExitFeeBuffer <= 0 {
		cfg.Trader.ExitFeeBuffer = 0.02
	}
	if cfg.API.CLOBBase == "" {
		cfg.API.CLOBBase = "https://clob.polymarket.com"
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "polypaper.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
