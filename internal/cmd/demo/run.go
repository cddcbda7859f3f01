package demorun

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	cfgpkg "github.com/rzbill/logtap/internal/config"
	httpserver "github.com/rzbill/logtap/internal/server/http"
	"github.com/rzbill/logtap/pkg/console"
	logpkg "github.com/rzbill/logtap/pkg/log"
	"github.com/rzbill/logtap/pkg/tap"
)

// Options controls the demo process.
type Options struct {
	ConfigPath   string
	HTTPAddr     string
	LogLevel     string
	LogFormat    string
	EmitInterval time.Duration
	Config       cfgpkg.Config
}

// Run wraps a live console with a tap, serves the inspection API, and
// emits sample traffic until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Be robust to callers that don't pass a signal-aware context.
	// We layer a local signal context over the provided one.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := opts.Config
	// Flag overrides win over file/env values.
	if opts.HTTPAddr != "" {
		cfg.HTTPAddr = opts.HTTPAddr
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}

	procLogger := buildLogger(cfg.LogLevel, cfg.LogFormat)

	// Redirect stdlib logs to our logger.
	logpkg.RedirectStdLog(procLogger)

	procLogger.Info("Starting logtap demo",
		logpkg.Str("http", cfg.HTTPAddr),
		logpkg.Str("level", cfg.LogLevel),
		logpkg.Str("format", cfg.LogFormat),
		logpkg.Str("attribution", cfg.Attribution),
		logpkg.Int("max_log_size", cfg.MaxLogSize),
	)

	host := console.NewStandard(procLogger.With(logpkg.Component("console")))
	tp, err := tap.New(host, cfg.TapOptions())
	if err != nil {
		return err
	}

	hsrv := httpserver.New(tp, procLogger.With(logpkg.Component("http")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, cfg.HTTPAddr); err != nil && sctx.Err() == nil {
			procLogger.Error("http server failed", logpkg.Err(err))
		}
	}()

	interval := opts.EmitInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		emit(sctx, tp.Console(), interval)
	}()

	if opts.ConfigPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := cfgpkg.Watch(sctx, opts.ConfigPath, func(next cfgpkg.Config) {
				if err := tp.SetOptions(next.TapPatch()); err != nil {
					procLogger.Warn("ignoring reloaded config", logpkg.Err(err))
					return
				}
				procLogger.Info("options reloaded", logpkg.Str("path", opts.ConfigPath))
			})
			if err != nil && sctx.Err() == nil {
				procLogger.Error("config watch failed", logpkg.Err(err))
			}
		}()
	}

	<-sctx.Done()
	hsrv.Close()
	wg.Wait()
	return nil
}

func buildLogger(level, format string) logpkg.Logger {
	lvl := logpkg.InfoLevel
	if l, err := logpkg.ParseLevel(level); err == nil {
		lvl = l
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if format == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	return logpkg.NewLogger(logpkg.WithLevel(lvl), logpkg.WithFormatter(formatter))
}
