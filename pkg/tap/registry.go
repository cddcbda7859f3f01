package tap

import (
	"github.com/rzbill/logtap/pkg/console"
)

// registry holds the snapshot of the host console taken at construction
// time. It never changes afterwards and is the sole path back to unmodified
// behavior: restoration re-points every channel at these snapshots, so the
// result is indistinguishable from never having intercepted.
type registry struct {
	snapshot map[console.Channel]console.Func
}

func newRegistry(host console.Console) *registry {
	return &registry{snapshot: console.Dispatch(host)}
}

// invoke calls the stored implementation for the channel with the original
// arguments. A channel without a captured implementation is a no-op, not an
// error; callers must not assume the channel exists.
func (r *registry) invoke(ch console.Channel, args []any) {
	fn := r.snapshot[ch]
	if fn == nil {
		return
	}
	fn(args...)
}

// original returns the snapshot func for the channel, nil if absent.
func (r *registry) original(ch console.Channel) console.Func {
	return r.snapshot[ch]
}
