// Package config loads runtime configuration for the lost and found CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config (see parseJson).
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags).
//
// Later sources override earlier ones.
//
// # JSON schema
//
// Intervals use timex.Duration, so they may be strings like "10s" or integer
// nanoseconds:
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s",
//	  "database_path": "lostfound.db",
//	  "log_level": "info",
//	  "ping_path": "/categories"
//	}
//
// # Environment
//
//	LF_SERVER_URL, LF_REQUEST_TIMEOUT, LF_ONLINE_CHECK_INTERVAL,
//	LF_DB_PATH, LF_LOG_LEVEL, LF_PING_PATH
package config
