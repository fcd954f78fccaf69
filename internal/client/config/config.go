package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the lost and found CLI.
//
// Fields:
//   - ServerURL: base URL of the REST backend, without a trailing slash.
//   - RequestTimeout: deadline applied to every backend call.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - DatabasePath: SQLite file holding the session and notification state.
//   - LogLevel: debug, info, warn or error.
//   - PingPath: path probed by the reachability watcher.
type Config struct {
	ServerURL           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	DatabasePath        string
	LogLevel            string
	PingPath            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.DatabasePath = "lostfound.db"
	c.LogLevel = "info"
	c.PingPath = "/categories"
}

// LoadConfig constructs a Config from defaults, then overlays the JSON file
// (if -c/-config is given), environment variables and finally command-line
// flags. args are the program arguments without the binary name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the client cannot run with.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server url is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	return nil
}
