package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name      string
		args      []string
		expected  func() *Config
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://10.0.0.1:9090/", "-t", "3", "-i", "10", "-d", "x.db", "-l", "debug"},
			expected: func() *Config {
				c := defaults()
				c.ServerURL = "http://10.0.0.1:9090"
				c.RequestTimeout = 3 * time.Second
				c.OnlineCheckInterval = 10 * time.Second
				c.DatabasePath = "x.db"
				c.LogLevel = "debug"
				return c
			},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"-c", "conf.json", "-x", "1"},
			expected: defaults,
		},
		{
			name:      "non numeric timeout",
			args:      []string{"-t", "abc"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(cfg, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected(), cfg))
		})
	}
}

func TestParseFlags_KeepsSubSecondDurationsWhenUnset(t *testing.T) {
	cfg := &Config{RequestTimeout: 1500 * time.Millisecond, OnlineCheckInterval: 250 * time.Millisecond}
	require.NoError(t, parseFlags(cfg, []string{"-a", "http://h"}))

	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.OnlineCheckInterval)
}
