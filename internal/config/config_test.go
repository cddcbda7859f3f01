package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if !cfg.Channels.Log || !cfg.Channels.Info || !cfg.Channels.Warn || !cfg.Channels.Error {
		t.Fatalf("all channels should default on: %+v", cfg.Channels)
	}
	if cfg.MaxLogSize != 100 || cfg.LogExpiryDays != 7 || cfg.Debug {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.TapOptions().Validate(); err != nil {
		t.Fatalf("defaults must produce valid tap options: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("want defaults, got %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "logtap.json", `{
		"channels": {"log": true, "info": false, "warn": true, "error": true},
		"maxLogSize": 25,
		"debug": true
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Channels.Info || cfg.MaxLogSize != 25 || !cfg.Debug {
		t.Fatalf("json not applied: %+v", cfg)
	}
	// untouched keys keep defaults
	if cfg.LogExpiryDays != 7 {
		t.Fatalf("defaults clobbered: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "logtap.toml", `
max_log_size = 5
log_expiry_days = 1
attribution = "stack"

[channels]
log = true
info = true
warn = false
error = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxLogSize != 5 || cfg.LogExpiryDays != 1 || cfg.Channels.Warn {
		t.Fatalf("toml not applied: %+v", cfg)
	}
	if cfg.Attribution != "stack" {
		t.Fatalf("attribution not applied: %+v", cfg)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := writeFile(t, "bad.json", `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFromEnvOverlay(t *testing.T) {
	t.Setenv("LOGTAP_CHANNEL_WARN", "false")
	t.Setenv("LOGTAP_MAX_LOG_SIZE", "3")
	t.Setenv("LOGTAP_DEBUG", "1")
	t.Setenv("LOGTAP_HTTP_ADDR", ":9090")

	cfg := Default()
	FromEnv(&cfg)
	if cfg.Channels.Warn || cfg.MaxLogSize != 3 || !cfg.Debug || cfg.HTTPAddr != ":9090" {
		t.Fatalf("env overlay not applied: %+v", cfg)
	}
}

func TestTapPatchCarriesEveryField(t *testing.T) {
	cfg := Default()
	cfg.Channels.Info = false
	cfg.MaxLogSize = 9

	opts := Default().TapOptions()
	cfg.TapPatch().Apply(&opts)
	if opts.Info || opts.MaxLogSize != 9 {
		t.Fatalf("patch incomplete: %+v", opts)
	}
}
