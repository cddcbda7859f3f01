// Package config provides loading and environment overlay for the logtap
// demo binary. It exposes a Default() baseline, file loading for JSON and
// TOML by extension, an LOGTAP_* env overlay, and a file watcher that pushes
// option changes into a running tap.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/logtap.toml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	tp, _ := tap.New(host, cfg.TapOptions())
package config
