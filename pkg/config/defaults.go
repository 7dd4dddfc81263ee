// Package config defines the typed run configuration, its defaults and its
// validation rules.
package config

import (
	"log/slog"
	"strings"
)

// Config is the full run configuration. Field names follow the keys of
// ~/.neko.yaml.
type Config struct {
	Resource  ResourceConfig  `mapstructure:"resource"`
	Growth    GrowthConfig    `mapstructure:"growth"`
	History   HistoryConfig   `mapstructure:"history"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

type ResourceConfig struct {
	// Path is the interaction table, tab- or comma-separated.
	Path      string `mapstructure:"path"`
	Delimiter string `mapstructure:"delimiter" validate:"omitempty,len=1"`
	// Aggregate collapses duplicate rows per pair by majority vote.
	Aggregate bool `mapstructure:"aggregate"`
	// RulesFile holds CEL filter rules applied before indexing.
	RulesFile string `mapstructure:"rules_file"`
	// TranslationFile maps gene symbols to canonical ids.
	TranslationFile  string `mapstructure:"translation_file"`
	RejectUnresolved bool   `mapstructure:"reject_unresolved"`
	PhenotypeMarkers string `mapstructure:"phenotype_markers"`
}

type GrowthConfig struct {
	// MaxLen is the path-search ceiling in edges.
	MaxLen          int    `mapstructure:"max_len" validate:"gte=0,lte=20"`
	OnlySigned      bool   `mapstructure:"only_signed"`
	Consensus       bool   `mapstructure:"consensus"`
	Loops           bool   `mapstructure:"loops"`
	Minimal         bool   `mapstructure:"minimal"`
	Algorithm       string `mapstructure:"algorithm" validate:"oneof=dfs bfs"`
	ConnectWithBias bool   `mapstructure:"connect_with_bias"`
	// Depth and Rank drive upstream cascades.
	Depth int `mapstructure:"depth" validate:"gte=1,lte=10"`
	Rank  int `mapstructure:"rank" validate:"gte=1"`
}

type HistoryConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	MaxStates int  `mapstructure:"max_states" validate:"gte=0"`
	// Store is a directory or an s3://bucket/prefix URL.
	Store string `mapstructure:"store"`
	Key   string `mapstructure:"key" validate:"required_with=Store"`
}

type TelemetryConfig struct {
	// Endpoint is an OTLP/HTTP collector host:port or URL. Empty disables
	// export.
	Endpoint    string `mapstructure:"endpoint" validate:"omitempty,hostname_port|url"`
	ServiceName string `mapstructure:"service_name" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// Defaults.
const (
	DefaultMaxLen      = 2
	DefaultServiceName = "neko"
	DefaultHistoryKey  = "history.json"
)

// Default returns a configuration with sensible default values.
func Default() Config {
	return Config{
		Resource: ResourceConfig{
			Delimiter: "\t",
		},
		Growth: GrowthConfig{
			MaxLen:     DefaultMaxLen,
			OnlySigned: true,
			Consensus:  false,
			Algorithm:  "dfs",
			Depth:      1,
			Rank:       1,
		},
		History: HistoryConfig{
			Enabled:   true,
			MaxStates: 0,
			Key:       DefaultHistoryKey,
		},
		Telemetry: TelemetryConfig{
			ServiceName: DefaultServiceName,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SlogLevel maps Level to a slog level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
