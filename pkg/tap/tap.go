package tap

import (
	"fmt"
	"sync"
	"time"

	"github.com/rzbill/logtap/pkg/attribution"
	"github.com/rzbill/logtap/pkg/console"
	"github.com/rzbill/logtap/pkg/id"
	"github.com/rzbill/logtap/pkg/retention"
)

// Tap intercepts a host console: it forwards every call to the original
// channel unchanged and records a bounded, time-windowed history annotated
// with inferred source information.
//
// A Tap starts enabled. Toggle re-routes consoles that were already handed
// out, so embedding code installs Console() once and controls interception
// through the Tap afterwards.
type Tap struct {
	mu        sync.RWMutex
	opts      Options
	enabled   bool
	installed map[console.Channel]console.Func

	reg      *registry
	store    *retention.Store
	resolver attribution.Resolver
}

// New snapshots the host console and returns an enabled Tap. The host's
// channel implementations are treated as opaque callables; whatever they
// currently hold is what restore will bring back.
func New(host console.Console, opts Options) (*Tap, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	store, err := retention.NewStore(opts.policy())
	if err != nil {
		return nil, err
	}
	t := &Tap{
		opts:     opts,
		enabled:  true,
		reg:      newRegistry(host),
		store:    store,
		resolver: newResolver(opts.strategy()),
	}
	t.installed = t.buildRoutes()
	return t, nil
}

func newResolver(s Strategy) attribution.Resolver {
	if s == AttributionStack {
		return attribution.StackResolver{}
	}
	return attribution.ArgumentResolver{}
}

// Console returns the wrapped console. Dispatch consults the live routing
// table, so toggling the Tap takes effect immediately for every holder.
func (t *Tap) Console() console.Console {
	return tapConsole{t: t}
}

// Enabled reports the interception state.
func (t *Tap) Enabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// Toggle switches interception on or off. Toggling to the current state is
// a no-op with no observable effect. Disabling removes every wrapper so all
// channels resolve to the construction-time snapshots.
func (t *Tap) Toggle(enable bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.enabled == enable {
		return
	}
	t.enabled = enable
	t.installed = t.buildRoutes()
}

// Restore disables interception; alias for Toggle(false).
func (t *Tap) Restore() { t.Toggle(false) }

// Options returns a snapshot of the current options. The copy is defensive:
// mutating it does not affect the live configuration.
func (t *Tap) Options() Options {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.opts
}

// SetOptions merges a partial update, validates the result and re-applies
// per-channel routing immediately. Stored entries are re-evaluated against a
// changed retention policy on the next capture, not retroactively.
func (t *Tap) SetOptions(patch OptionsPatch) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	merged := t.opts
	patch.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return err
	}
	if err := t.store.SetPolicy(merged.policy()); err != nil {
		return err
	}
	if merged.strategy() != t.opts.strategy() {
		t.resolver = newResolver(merged.strategy())
	}
	t.opts = merged
	t.installed = t.buildRoutes()
	return nil
}

// Logs returns the flat ordered sequence of captured entries.
func (t *Tap) Logs() []retention.Entry { return t.store.List() }

// LogsBySource returns captured entries grouped by inferred source name,
// omitting entries without one.
func (t *Tap) LogsBySource() map[string][]retention.Entry { return t.store.GroupBySource() }

// LogsSince returns entries captured strictly after the given cursor.
func (t *Tap) LogsSince(after id.ID) []retention.Entry { return t.store.ListSince(after) }

// WaitForAppend blocks until a capture occurs or the timeout elapses; used
// together with LogsSince for live tailing.
func (t *Tap) WaitForAppend(timeout time.Duration) bool { return t.store.WaitForAppend(timeout) }

// buildRoutes computes the routing table for the current state. Caller must
// hold t.mu. The invariant: disabled means an empty table (every channel
// falls through to the registry snapshot); enabled installs wrappers for
// exactly the flag-true channels.
func (t *Tap) buildRoutes() map[console.Channel]console.Func {
	routes := make(map[console.Channel]console.Func)
	if !t.enabled {
		return routes
	}
	for _, ch := range console.Channels() {
		if t.opts.ChannelEnabled(ch) {
			routes[ch] = t.wrapperFor(ch)
		}
	}
	return routes
}

// wrapperFor builds the interception wrapper for one channel: capture, then
// unconditionally forward to the construction-time snapshot. Forwarding sits
// outside the capture recovery so a panic from the host console
// propagates to the caller unchanged.
func (t *Tap) wrapperFor(ch console.Channel) console.Func {
	return func(args ...any) {
		t.capture(ch, args)
		t.reg.invoke(ch, args)
	}
}

// capture resolves attribution and appends one entry. Any panic here is
// absorbed: the original side effect is a stronger guarantee than the
// capture. With Debug set, failures are reported through the registry's own
// log channel, never the wrapped one.
func (t *Tap) capture(ch console.Channel, args []any) {
	defer func() {
		if r := recover(); r != nil {
			t.mu.RLock()
			debug := t.opts.Debug
			t.mu.RUnlock()
			if debug {
				t.reg.invoke(console.ChannelLog, []any{fmt.Sprintf("logtap: capture failed on %s: %v", ch, r)})
			}
		}
	}()
	t.mu.RLock()
	resolver := t.resolver
	t.mu.RUnlock()
	src := resolver.Resolve(args)
	t.store.Append(ch, src, args)
}

// dispatch routes one call: through the wrapper when installed, straight to
// the registry snapshot otherwise.
func (t *Tap) dispatch(ch console.Channel, args []any) {
	t.mu.RLock()
	fn := t.installed[ch]
	t.mu.RUnlock()
	if fn != nil {
		fn(args...)
		return
	}
	t.reg.invoke(ch, args)
}

// tapConsole is the Console handed to the embedding application.
type tapConsole struct {
	t *Tap
}

func (c tapConsole) Log(args ...any)   { c.t.dispatch(console.ChannelLog, args) }
func (c tapConsole) Info(args ...any)  { c.t.dispatch(console.ChannelInfo, args) }
func (c tapConsole) Warn(args ...any)  { c.t.dispatch(console.ChannelWarn, args) }
func (c tapConsole) Error(args ...any) { c.t.dispatch(console.ChannelError, args) }
