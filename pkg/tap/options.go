package tap

import (
	"fmt"

	"github.com/rzbill/logtap/pkg/console"
	"github.com/rzbill/logtap/pkg/retention"
)

// Strategy selects the attribution contract for a deployment. Strategies are
// never mixed; there is no merge rule between their outputs.
type Strategy string

const (
	// AttributionArgs parses sources from call arguments (default).
	AttributionArgs Strategy = "args"
	// AttributionStack walks the runtime stack to the first caller frame.
	AttributionStack Strategy = "stack"
)

// Options configures a Tap. Start from DefaultOptions and adjust; the zero
// value is rejected because it monitors nothing and allows no entries.
type Options struct {
	// Per-channel enable flags.
	Log   bool
	Info  bool
	Warn  bool
	Error bool

	// MaxLogSize bounds the live entry count. Must be positive.
	MaxLogSize int
	// LogExpiryDays expires entries older than this many days. Zero keeps
	// entries only until the next append.
	LogExpiryDays int
	// Debug reports capture failures through the original log channel.
	Debug bool
	// Attribution picks the resolver strategy; empty means AttributionArgs.
	Attribution Strategy
}

// DefaultOptions returns the baseline configuration: every channel
// monitored, 100 entries, a seven day window, argument attribution.
func DefaultOptions() Options {
	return Options{
		Log:           true,
		Info:          true,
		Warn:          true,
		Error:         true,
		MaxLogSize:    100,
		LogExpiryDays: 7,
		Attribution:   AttributionArgs,
	}
}

// Validate checks bounds and the attribution strategy.
func (o Options) Validate() error {
	if err := o.policy().Validate(); err != nil {
		return err
	}
	switch o.Attribution {
	case "", AttributionArgs, AttributionStack:
		return nil
	}
	return fmt.Errorf("tap: unknown attribution strategy %q", o.Attribution)
}

// ChannelEnabled reports the per-channel flag via an explicit table.
func (o Options) ChannelEnabled(ch console.Channel) bool {
	switch ch {
	case console.ChannelLog:
		return o.Log
	case console.ChannelInfo:
		return o.Info
	case console.ChannelWarn:
		return o.Warn
	case console.ChannelError:
		return o.Error
	}
	return false
}

func (o Options) policy() retention.Policy {
	return retention.Policy{MaxEntries: o.MaxLogSize, MaxAgeDays: o.LogExpiryDays}
}

func (o Options) strategy() Strategy {
	if o.Attribution == "" {
		return AttributionArgs
	}
	return o.Attribution
}

// OptionsPatch is a partial options update; nil fields keep the current
// value. It is the wire shape of the PATCH options endpoint.
type OptionsPatch struct {
	Log           *bool     `json:"log,omitempty"`
	Info          *bool     `json:"info,omitempty"`
	Warn          *bool     `json:"warn,omitempty"`
	Error         *bool     `json:"error,omitempty"`
	MaxLogSize    *int      `json:"maxLogSize,omitempty"`
	LogExpiryDays *int      `json:"logExpiryDays,omitempty"`
	Debug         *bool     `json:"debug,omitempty"`
	Attribution   *Strategy `json:"attribution,omitempty"`
}

// Apply merges the patch onto opts.
func (p OptionsPatch) Apply(opts *Options) {
	if p.Log != nil {
		opts.Log = *p.Log
	}
	if p.Info != nil {
		opts.Info = *p.Info
	}
	if p.Warn != nil {
		opts.Warn = *p.Warn
	}
	if p.Error != nil {
		opts.Error = *p.Error
	}
	if p.MaxLogSize != nil {
		opts.MaxLogSize = *p.MaxLogSize
	}
	if p.LogExpiryDays != nil {
		opts.LogExpiryDays = *p.LogExpiryDays
	}
	if p.Debug != nil {
		opts.Debug = *p.Debug
	}
	if p.Attribution != nil {
		opts.Attribution = *p.Attribution
	}
}
