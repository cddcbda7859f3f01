// Package tap implements console interception: wrappers that forward every
// call to the original channel unchanged while recording a bounded,
// time-windowed history with inferred source attribution.
//
// # Overview
//
// A Tap is built from the host's Console and a set of Options. Construction
// snapshots the current channel implementations (the only restoration
// source), installs wrappers for the enabled channels, and hands back a
// wrapped Console:
//
//	tp, _ := tap.New(host, tap.DefaultOptions())
//	c := tp.Console()
//	c.Warn("cache miss [checkout:warn] falling back")
//
//	entries := tp.Logs()
//	bySrc := tp.LogsBySource()
//
// # State machine
//
// A Tap is either enabled or disabled. While disabled every channel resolves
// to the construction-time snapshot with no wrapper installed, so behavior
// is byte-for-byte what the host would have done on its own. Toggle is
// idempotent in both directions; Restore is Toggle(false). Per-channel flags
// can disable individual channels while the Tap stays globally enabled.
//
// # Failure ordering
//
// Capture runs before forwarding, but a capture failure never suppresses the
// original side effect: capture panics are absorbed (reported through the
// original log channel when Debug is set), while panics from the original
// implementation itself propagate to the caller unchanged.
package tap
