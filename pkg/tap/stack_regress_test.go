package tap_test

import (
	"strings"
	"testing"

	"github.com/rzbill/logtap/pkg/tap"
)

type nullHost struct{}

func (nullHost) Log(args ...any)   {}
func (nullHost) Info(args ...any)  {}
func (nullHost) Warn(args ...any)  {}
func (nullHost) Error(args ...any) {}

// Pins the stack attribution contract across the full wrapper call path:
// console method, dispatch, wrapper, capture, resolver. If a new wrapping
// layer is introduced and breaks the walk, this fails instead of silently
// misattributing.
func TestStackAttributionThroughWrapper(t *testing.T) {
	opts := tap.DefaultOptions()
	opts.Attribution = tap.AttributionStack
	tp, err := tap.New(nullHost{}, opts)
	if err != nil {
		t.Fatalf("new tap: %v", err)
	}

	tp.Console().Info("hello from the call site")

	logs := tp.Logs()
	if len(logs) != 1 {
		t.Fatalf("want 1 entry, got %d", len(logs))
	}
	src := logs[0].Source
	if !strings.Contains(src.Function, "TestStackAttributionThroughWrapper") {
		t.Fatalf("expected this test as the attributed caller, got %+v", src)
	}
	if !strings.HasSuffix(src.File, "stack_regress_test.go") || src.Line == 0 {
		t.Fatalf("expected file and line of the call site, got %+v", src)
	}
}
