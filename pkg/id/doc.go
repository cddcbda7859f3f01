// Package id provides a 128-bit, lexicographically sortable identifier used
// to stamp captured log entries.
//
// # Format
//
// The ID is 16 bytes big-endian: [8 bytes ms_timestamp][8 bytes sequence].
// Byte-wise comparison preserves chronological order, and IDs generated
// within the same millisecond remain strictly increasing by sequence. The
// hex form round-trips through Parse, which makes an ID usable as a resume
// cursor in query parameters.
//
// # Monotonicity
//
// The Generator ensures per-process monotonicity:
//   - If the system clock regresses, it pins to the last seen millisecond and
//     increments the sequence to avoid going backwards.
//   - If the sequence would overflow within a millisecond, it waits for the
//     next millisecond before emitting the next ID.
//
// Usage
//
//	g := id.NewGenerator()
//	newID := g.Next()
//	s := newID.String()      // hex cursor
//	back, _ := id.Parse(s)   // round-trip
package id
