package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultMaxLen, cfg.Growth.MaxLen)
	assert.True(t, cfg.Growth.OnlySigned)
	assert.Equal(t, "dfs", cfg.Growth.Algorithm)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Config)
		want   string
	}{
		"algorithm": {func(c *Config) { c.Growth.Algorithm = "astar" }, "growth.algorithm must be one of: dfs bfs"},
		"max len":   {func(c *Config) { c.Growth.MaxLen = 50 }, "growth.maxlen must be at most 20"},
		"depth":     {func(c *Config) { c.Growth.Depth = 0 }, "growth.depth must be at least 1"},
		"delimiter": {func(c *Config) { c.Resource.Delimiter = "||" }, "resource.delimiter must be exactly 1"},
		"level":     {func(c *Config) { c.Log.Level = "trace" }, "log.level must be one of"},
		"endpoint":  {func(c *Config) { c.Telemetry.Endpoint = "not a host" }, "telemetry.endpoint must be host:port or a URL"},
		"key":       {func(c *Config) { c.History.Store = "/tmp/neko"; c.History.Key = "" }, "history.key is required"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalid)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestEndpointForms(t *testing.T) {
	for _, endpoint := range []string{"", "collector:4318", "http://collector:4318", "https://otel.example.org/v1/traces"} {
		cfg := Default()
		cfg.Telemetry.Endpoint = endpoint
		assert.NoError(t, cfg.Validate(), endpoint)
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogConfig{Level: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{}.SlogLevel())
	assert.Equal(t, slog.LevelError, LogConfig{Level: "error"}.SlogLevel())
}
