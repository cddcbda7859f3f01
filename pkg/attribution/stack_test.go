package attribution_test

import (
	"strings"
	"testing"

	"github.com/rzbill/logtap/pkg/attribution"
)

// helper adds one extra wrapping layer between the test and the resolver, the
// situation that silently broke fixed-offset attribution in older designs.
func helperResolve(t *testing.T) attribution.Source {
	t.Helper()
	return attribution.StackResolver{}.Resolve(nil)
}

func TestStackResolverFindsTestFrame(t *testing.T) {
	src := attribution.StackResolver{}.Resolve(nil)
	if src.IsZero() {
		t.Fatalf("expected a resolved source")
	}
	if !strings.Contains(src.Function, "TestStackResolverFindsTestFrame") {
		t.Fatalf("expected test function as caller, got %+v", src)
	}
	if !strings.HasSuffix(src.File, "_test.go") || src.Line == 0 {
		t.Fatalf("expected test file and line, got %+v", src)
	}
}

func TestStackResolverSurvivesExtraWrappingLayer(t *testing.T) {
	src := helperResolve(t)
	if src.IsZero() || src.Name == "unknown" {
		t.Fatalf("expected a resolved source, got %+v", src)
	}
	// The walk must land on a test frame, not somewhere inside the module.
	if !strings.HasSuffix(src.File, "_test.go") {
		t.Fatalf("expected test file, got %+v", src)
	}
}
