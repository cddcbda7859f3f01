package tap

import (
	"strings"
	"testing"

	"github.com/rzbill/logtap/pkg/attribution"
	"github.com/rzbill/logtap/pkg/console"
)

// hostRecorder is the stand-in for a host console: an opaque side effect per
// channel, here a recorded call list.
type hostRecorder struct {
	calls []string
}

func (h *hostRecorder) record(ch string, args []any) {
	h.calls = append(h.calls, ch+":"+console.Render(args))
}

func (h *hostRecorder) Log(args ...any)   { h.record("log", args) }
func (h *hostRecorder) Info(args ...any)  { h.record("info", args) }
func (h *hostRecorder) Warn(args ...any)  { h.record("warn", args) }
func (h *hostRecorder) Error(args ...any) { h.record("error", args) }

func newTestTap(t *testing.T, opts Options) (*Tap, *hostRecorder) {
	t.Helper()
	host := &hostRecorder{}
	tp, err := New(host, opts)
	if err != nil {
		t.Fatalf("new tap: %v", err)
	}
	return tp, host
}

func TestCaptureForwardsAndRecordsInOrder(t *testing.T) {
	tp, host := newTestTap(t, DefaultOptions())
	c := tp.Console()
	c.Log("one")
	c.Warn("two")
	c.Error("three")

	if want := []string{"log:one", "warn:two", "error:three"}; len(host.calls) != 3 ||
		host.calls[0] != want[0] || host.calls[1] != want[1] || host.calls[2] != want[2] {
		t.Fatalf("forwarding broken: %v", host.calls)
	}
	logs := tp.Logs()
	if len(logs) != 3 {
		t.Fatalf("want one entry per call, got %d", len(logs))
	}
	for i, msg := range []string{"one", "two", "three"} {
		if logs[i].Message() != msg {
			t.Fatalf("entry %d out of order: %v", i, logs[i])
		}
	}
	if logs[0].Channel != console.ChannelLog || logs[2].Channel != console.ChannelError {
		t.Fatalf("channels not recorded: %v", logs)
	}
}

func TestDisabledIsTransparent(t *testing.T) {
	tp, host := newTestTap(t, DefaultOptions())
	tp.Toggle(false)

	c := tp.Console()
	c.Error("Y")

	if len(tp.Logs()) != 0 {
		t.Fatalf("disabled tap captured entries: %v", tp.Logs())
	}
	if len(host.calls) != 1 || host.calls[0] != "error:Y" {
		t.Fatalf("original error output must still fire: %v", host.calls)
	}
	if len(tp.installed) != 0 {
		t.Fatalf("disabled tap must hold no wrappers: %v", tp.installed)
	}
}

func TestToggleIdempotence(t *testing.T) {
	tp, host := newTestTap(t, DefaultOptions())

	tp.Toggle(true) // already enabled: no-op, must not double-install
	tp.Console().Log("x")
	if n := len(tp.Logs()); n != 1 {
		t.Fatalf("double toggle(true) double-captured: %d entries", n)
	}
	if n := len(host.calls); n != 1 {
		t.Fatalf("double toggle(true) double-forwarded: %d calls", n)
	}

	tp.Restore()
	tp.Restore() // second restore is a no-op
	if tp.Enabled() {
		t.Fatalf("expected disabled after restore")
	}
	tp.Console().Log("y")
	if n := len(tp.Logs()); n != 1 {
		t.Fatalf("restored tap captured: %d entries", n)
	}
}

func TestPerChannelFlagLeavesOriginalRouting(t *testing.T) {
	opts := DefaultOptions()
	opts.Warn = false
	tp, host := newTestTap(t, opts)

	c := tp.Console()
	c.Warn("skipped")
	c.Log("kept")

	logs := tp.Logs()
	if len(logs) != 1 || logs[0].Channel != console.ChannelLog {
		t.Fatalf("warn should not be captured: %v", logs)
	}
	if len(host.calls) != 2 || host.calls[0] != "warn:skipped" {
		t.Fatalf("warn must still forward: %v", host.calls)
	}
}

func TestRotationThroughConsole(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxLogSize = 2
	tp, _ := newTestTap(t, opts)

	c := tp.Console()
	c.Log("A")
	c.Log("B")
	c.Log("C")

	logs := tp.Logs()
	if len(logs) != 2 || logs[0].Message() != "B" || logs[1].Message() != "C" {
		t.Fatalf("want [B C], got %v", logs)
	}
}

type panicResolver struct{}

func (panicResolver) Resolve([]any) attribution.Source { panic("resolver blew up") }

func TestCaptureFailureStillForwards(t *testing.T) {
	opts := DefaultOptions()
	opts.Debug = true
	tp, host := newTestTap(t, opts)
	tp.resolver = panicResolver{}

	tp.Console().Warn("payload")

	// The original side effect is a stronger guarantee than the capture.
	var sawWarn, sawDebug bool
	for _, call := range host.calls {
		if call == "warn:payload" {
			sawWarn = true
		}
		if strings.HasPrefix(call, "log:logtap: capture failed") {
			sawDebug = true
		}
	}
	if !sawWarn {
		t.Fatalf("forwarding suppressed by capture failure: %v", host.calls)
	}
	if !sawDebug {
		t.Fatalf("debug report missing from original log channel: %v", host.calls)
	}
	if len(tp.Logs()) != 0 {
		t.Fatalf("failed capture should not append: %v", tp.Logs())
	}
}

type panickyHost struct{ hostRecorder }

func (h *panickyHost) Error(args ...any) { panic("host channel failure") }

func TestForwardingPanicPropagates(t *testing.T) {
	host := &panickyHost{}
	tp, err := New(host, DefaultOptions())
	if err != nil {
		t.Fatalf("new tap: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("host panic was masked")
		}
		// Capture ran before forwarding and must have kept the entry.
		if len(tp.Logs()) != 1 {
			t.Fatalf("want captured entry despite host panic, got %d", len(tp.Logs()))
		}
	}()
	tp.Console().Error("boom")
}

func TestSetOptionsReroutesImmediately(t *testing.T) {
	tp, host := newTestTap(t, DefaultOptions())

	off := false
	if err := tp.SetOptions(OptionsPatch{Warn: &off}); err != nil {
		t.Fatalf("set options: %v", err)
	}
	tp.Console().Warn("w")
	if len(tp.Logs()) != 0 {
		t.Fatalf("warn captured after flag cleared: %v", tp.Logs())
	}
	if len(host.calls) != 1 {
		t.Fatalf("warn must still forward: %v", host.calls)
	}

	bad := 0
	if err := tp.SetOptions(OptionsPatch{MaxLogSize: &bad}); err == nil {
		t.Fatalf("expected validation error")
	}
	if got := tp.Options().MaxLogSize; got != DefaultOptions().MaxLogSize {
		t.Fatalf("failed patch must not apply, got MaxLogSize=%d", got)
	}
}

func TestOptionsReturnsDefensiveCopy(t *testing.T) {
	tp, _ := newTestTap(t, DefaultOptions())
	snap := tp.Options()
	snap.MaxLogSize = 1
	snap.Log = false
	if got := tp.Options(); got.MaxLogSize != 100 || !got.Log {
		t.Fatalf("live options mutated via snapshot: %+v", got)
	}
}

func TestArgumentAttributionThroughWrapper(t *testing.T) {
	tp, _ := newTestTap(t, DefaultOptions())
	c := tp.Console()

	c.Log("only-one-arg")
	c.Info("prefix token [svcName:extra] tail", "x")
	c.Warn(42, "not-a-string-first")

	logs := tp.Logs()
	if len(logs) != 3 {
		t.Fatalf("want 3 entries, got %d", len(logs))
	}
	if logs[0].Source.Name != "user" {
		t.Fatalf("single arg: want user, got %+v", logs[0].Source)
	}
	if logs[1].Source.Name != "svcName" {
		t.Fatalf("tagged arg: want svcName, got %+v", logs[1].Source)
	}
	if !logs[2].Source.IsZero() {
		t.Fatalf("non-string first arg: want absent source, got %+v", logs[2].Source)
	}

	groups := tp.LogsBySource()
	if len(groups) != 2 || len(groups["user"]) != 1 || len(groups["svcName"]) != 1 {
		t.Fatalf("grouping must omit absent sources: %v", groups)
	}
}

func TestZeroOptionsRejected(t *testing.T) {
	if _, err := New(&hostRecorder{}, Options{}); err == nil {
		t.Fatalf("zero options must be rejected")
	}
	bad := DefaultOptions()
	bad.Attribution = Strategy("psychic")
	if _, err := New(&hostRecorder{}, bad); err == nil {
		t.Fatalf("unknown strategy must be rejected")
	}
}
