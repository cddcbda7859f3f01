package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/rzbill/logtap/pkg/tap"
)

// Channels holds the per-channel enable flags.
type Channels struct {
	Log   bool `json:"log" toml:"log"`
	Info  bool `json:"info" toml:"info"`
	Warn  bool `json:"warn" toml:"warn"`
	Error bool `json:"error" toml:"error"`
}

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Channels      Channels `json:"channels" toml:"channels"`
	MaxLogSize    int      `json:"maxLogSize" toml:"max_log_size"`
	LogExpiryDays int      `json:"logExpiryDays" toml:"log_expiry_days"`
	Debug         bool     `json:"debug" toml:"debug"`
	Attribution   string   `json:"attribution" toml:"attribution"`

	// Inspection server and process logging, used by the demo binary.
	HTTPAddr  string `json:"httpAddr" toml:"http_addr"`
	LogLevel  string `json:"logLevel" toml:"log_level"`
	LogFormat string `json:"logFormat" toml:"log_format"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Channels:      Channels{Log: true, Info: true, Warn: true, Error: true},
		MaxLogSize:    100,
		LogExpiryDays: 7,
		Attribution:   string(tap.AttributionArgs),
		HTTPAddr:      ":8080",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load reads configuration from a JSON or TOML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}
	return cfg, nil
}

// TapOptions converts the file shape into tap options.
func (c Config) TapOptions() tap.Options {
	return tap.Options{
		Log:           c.Channels.Log,
		Info:          c.Channels.Info,
		Warn:          c.Channels.Warn,
		Error:         c.Channels.Error,
		MaxLogSize:    c.MaxLogSize,
		LogExpiryDays: c.LogExpiryDays,
		Debug:         c.Debug,
		Attribution:   tap.Strategy(c.Attribution),
	}
}

// TapPatch expresses the full config as a patch, used when a watched file
// changes and the new values are pushed into a running tap.
func (c Config) TapPatch() tap.OptionsPatch {
	strategy := tap.Strategy(c.Attribution)
	return tap.OptionsPatch{
		Log:           &c.Channels.Log,
		Info:          &c.Channels.Info,
		Warn:          &c.Channels.Warn,
		Error:         &c.Channels.Error,
		MaxLogSize:    &c.MaxLogSize,
		LogExpiryDays: &c.LogExpiryDays,
		Debug:         &c.Debug,
		Attribution:   &strategy,
	}
}
