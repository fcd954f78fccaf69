package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config for environment overrides. Unset variables leave
// the pointers nil so earlier sources are kept.
type envConfig struct {
	ServerURL           *string        `env:"LF_SERVER_URL"`
	RequestTimeout      *time.Duration `env:"LF_REQUEST_TIMEOUT"`
	OnlineCheckInterval *time.Duration `env:"LF_ONLINE_CHECK_INTERVAL"`
	DatabasePath        *string        `env:"LF_DB_PATH"`
	LogLevel            *string        `env:"LF_LOG_LEVEL"`
	PingPath            *string        `env:"LF_PING_PATH"`
}

func parseEnv(cfg *Config) error {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return err
	}

	if ec.ServerURL != nil {
		cfg.ServerURL = *ec.ServerURL
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = *ec.OnlineCheckInterval
	}
	if ec.DatabasePath != nil {
		cfg.DatabasePath = *ec.DatabasePath
	}
	if ec.LogLevel != nil {
		cfg.LogLevel = *ec.LogLevel
	}
	if ec.PingPath != nil {
		cfg.PingPath = *ec.PingPath
	}
	return nil
}
