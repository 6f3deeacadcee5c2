// Package daemon manages the Curie runtime lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all runtime configuration.
type Config struct {
	Node      NodeConfig      `toml:"node"`
	API       APIConfig       `toml:"api"`
	Rewards   RewardsConfig   `toml:"rewards"`
	Ledger    LedgerConfig    `toml:"ledger"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// NodeConfig identifies this node.
type NodeConfig struct {
	ID string `toml:"id"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// RewardsConfig controls tokenomics parameters.
type RewardsConfig struct {
	BaseReward   float64 `toml:"base_reward"`
	CurrentEpoch int     `toml:"current_epoch"`
	LaunchDate   string  `toml:"launch_date"` // YYYY-MM-DD
}

// LedgerConfig controls recognition ledger and history storage.
type LedgerConfig struct {
	Dir string `toml:"dir"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8460,
		},
		Rewards: RewardsConfig{
			BaseReward:   100.0,
			CurrentEpoch: 1,
			LaunchDate:   "2024-01-01",
		},
		Ledger: LedgerConfig{
			Dir: curieHome(),
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LaunchTime parses the configured launch date (midnight UTC).
func (c Config) LaunchTime() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Rewards.LaunchDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse launch_date %q: %w", c.Rewards.LaunchDate, err)
	}
	return t.UTC(), nil
}

// LoadConfig reads config from ~/.curie/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(curieHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Ledger.Dir == "" {
		cfg.Ledger.Dir = curieHome()
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.curie/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(curieHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// curieHome returns the Curie data directory.
func curieHome() string {
	if env := os.Getenv("CURIE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".curie")
}

// CurieHome is exported for use by other packages.
func CurieHome() string {
	return curieHome()
}
