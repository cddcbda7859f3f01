package demorun

import (
	"context"
	"testing"
	"time"

	cfgpkg "github.com/rzbill/logtap/internal/config"
	logpkg "github.com/rzbill/logtap/pkg/log"
)

func TestBuildLoggerLevels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected logpkg.Level
	}{
		{name: "debug parses", level: "debug", expected: logpkg.DebugLevel},
		{name: "error parses", level: "error", expected: logpkg.ErrorLevel},
		{name: "garbage falls back to info", level: "verbose", expected: logpkg.InfoLevel},
		{name: "empty falls back to info", level: "", expected: logpkg.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := buildLogger(tt.level, "text")
			if got := l.GetLevel(); got != tt.expected {
				t.Errorf("buildLogger(%q) level = %v, expected %v", tt.level, got, tt.expected)
			}
		})
	}
}

// TestRunIntegration verifies Run starts and shuts down cleanly. Minimal by
// design since Run starts a real HTTP listener.
func TestRunIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := cfgpkg.Default()
	opts := Options{
		HTTPAddr:     "127.0.0.1:0",
		EmitInterval: 10 * time.Millisecond,
		Config:       cfg,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := Run(ctx, opts); err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}
