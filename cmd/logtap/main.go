package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	clientcmd "github.com/rzbill/logtap/internal/cmd/client"
	demorun "github.com/rzbill/logtap/internal/cmd/demo"
	cfgpkg "github.com/rzbill/logtap/internal/config"
	logpkg "github.com/rzbill/logtap/pkg/log"
	"github.com/spf13/cobra"
)

func main() {
	// initialize logger for CLI output; LOGTAP_LOG_LEVEL applies to
	// both CLI and demo start output
	level := os.Getenv("LOGTAP_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "logtap",
		Short: "Logtap CLI",
		Long:  "Logtap wraps a console with an interception tap. This CLI runs the demo process and inspects it over HTTP.",
	}

	demoCmd := &cobra.Command{
		Use:     "demo",
		Short:   "Run the demo process (tapped console + inspection API)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			httpAddr, _ := cmd.Flags().GetString("http")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")
			emitMs, _ := cmd.Flags().GetInt("emit-ms")

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfgpkg.FromEnv(&cfg)

			if err := demorun.Run(ctx, demorun.Options{
				ConfigPath:   configPath,
				HTTPAddr:     httpAddr,
				LogLevel:     logLevel,
				LogFormat:    logFormat,
				EmitInterval: time.Duration(emitMs) * time.Millisecond,
				Config:       cfg,
			}); err != nil {
				return fmt.Errorf("demo error: %w", err)
			}
			// brief delay to allow logs flush
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	demoCmd.Flags().String("config", "", "Config file (JSON or TOML); watched for changes while running")
	demoCmd.Flags().String("http", "", "HTTP listen address (overrides config)")
	demoCmd.Flags().String("log-level", os.Getenv("LOGTAP_LOG_LEVEL"), "Log level: debug|info|warn|error")
	demoCmd.Flags().String("log-format", os.Getenv("LOGTAP_LOG_FORMAT"), "Log format: text|json (default text)")
	demoCmd.Flags().Int("emit-ms", 500, "Sample traffic interval in ms")
	rootCmd.AddCommand(demoCmd)

	// inspection commands (in internal/cmd/client)
	for _, c := range clientcmd.NewRoot(apiURL) {
		rootCmd.AddCommand(c)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("LOGTAP_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
