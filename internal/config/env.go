package config

import (
	"os"
	"strconv"
)

// FromEnv overlays LOGTAP_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("LOGTAP_CHANNEL_LOG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Channels.Log = b
		}
	}
	if v := os.Getenv("LOGTAP_CHANNEL_INFO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Channels.Info = b
		}
	}
	if v := os.Getenv("LOGTAP_CHANNEL_WARN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Channels.Warn = b
		}
	}
	if v := os.Getenv("LOGTAP_CHANNEL_ERROR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Channels.Error = b
		}
	}
	if v := os.Getenv("LOGTAP_MAX_LOG_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxLogSize = n
		}
	}
	if v := os.Getenv("LOGTAP_LOG_EXPIRY_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LogExpiryDays = n
		}
	}
	if v := os.Getenv("LOGTAP_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if v := os.Getenv("LOGTAP_ATTRIBUTION"); v != "" {
		cfg.Attribution = v
	}
	if v := os.Getenv("LOGTAP_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("LOGTAP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOGTAP_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
