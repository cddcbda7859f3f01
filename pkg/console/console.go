package console

// Channel is a named logging entry point exposed by the host environment.
type Channel string

// The fixed set of monitored channels. Extending this set requires updating
// Channels, Dispatch and FromFuncs together so install and restore stay
// symmetric.
const (
	ChannelLog   Channel = "log"
	ChannelInfo  Channel = "info"
	ChannelWarn  Channel = "warn"
	ChannelError Channel = "error"
)

// Channels returns the monitored channel names in their fixed order.
func Channels() []Channel {
	return []Channel{ChannelLog, ChannelInfo, ChannelWarn, ChannelError}
}

// Valid reports whether c is one of the monitored channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelLog, ChannelInfo, ChannelWarn, ChannelError:
		return true
	}
	return false
}

// Func is a single channel implementation. Implementations are treated as
// opaque: they accept arbitrary arguments and produce an external side
// effect such as terminal output.
type Func func(args ...any)

// Console is the host logging interface handed to the interception layer.
type Console interface {
	Log(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

// Dispatch snapshots a Console into an explicit channel-to-handler table.
// Method selection is always by table lookup, never by name construction.
func Dispatch(c Console) map[Channel]Func {
	if c == nil {
		return map[Channel]Func{}
	}
	return map[Channel]Func{
		ChannelLog:   c.Log,
		ChannelInfo:  c.Info,
		ChannelWarn:  c.Warn,
		ChannelError: c.Error,
	}
}

// FromFuncs builds a Console from a routing table. Missing channels become
// no-ops so callers cannot assume a channel exists.
func FromFuncs(routes map[Channel]Func) Console {
	fc := funcConsole{}
	if routes != nil {
		fc.log = routes[ChannelLog]
		fc.info = routes[ChannelInfo]
		fc.warn = routes[ChannelWarn]
		fc.err = routes[ChannelError]
	}
	return fc
}

type funcConsole struct {
	log, info, warn, err Func
}

func (c funcConsole) Log(args ...any) {
	if c.log != nil {
		c.log(args...)
	}
}

func (c funcConsole) Info(args ...any) {
	if c.info != nil {
		c.info(args...)
	}
}

func (c funcConsole) Warn(args ...any) {
	if c.warn != nil {
		c.warn(args...)
	}
}

func (c funcConsole) Error(args ...any) {
	if c.err != nil {
		c.err(args...)
	}
}
