// Package retention implements the bounded, time-windowed history of
// captured calls.
//
// # Overview
//
// The Store owns every Entry: entries are appended in call order, never
// mutated, and leave only through rotation (count bound) or expiry (age
// bound). Both policies run inside Append, expiry first, so eviction is lazy
// and evaluated at append time rather than on a timer. After any append the
// invariants hold: count <= MaxEntries and every live entry is younger than
// MaxAgeDays.
//
// API surface
//
//	s, _ := retention.NewStore(retention.Policy{MaxEntries: 100, MaxAgeDays: 7})
//	e := s.Append(console.ChannelWarn, src, []any{"payload"})
//	all := s.List()
//	tail := s.ListSince(e.ID)
//	bySrc := s.GroupBySource()
//
// # Blocking reads
//
// WaitForAppend provides a wake-up seam for live tailing: readers poll
// ListSince with their last seen ID and block on WaitForAppend between
// polls.
package retention
