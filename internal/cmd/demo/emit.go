package demorun

import (
	"context"
	"fmt"
	"time"

	"github.com/rzbill/logtap/pkg/console"
)

// samples model a few in-process modules writing through the wrapped
// console. Tagged lines follow the "timestamp timestamp [name:level]"
// prefix convention so argument attribution can pick up the source;
// the plain heartbeat exercises the single-argument "user" path.
var samples = []struct {
	channel console.Channel
	tag     string
	text    string
}{
	{console.ChannelInfo, "scheduler", "tick started"},
	{console.ChannelLog, "scheduler", "queue drained"},
	{console.ChannelWarn, "cache", "eviction pressure rising"},
	{console.ChannelInfo, "cache", "warmup complete"},
	{console.ChannelError, "ingest", "upstream returned 503"},
	{console.ChannelLog, "", "heartbeat"},
}

func emit(ctx context.Context, c console.Console, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	routes := console.Dispatch(c)
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		s := samples[i%len(samples)]
		fn := routes[s.channel]
		if fn == nil {
			continue
		}
		if s.tag == "" {
			fn(s.text)
			continue
		}
		now := time.Now()
		head := fmt.Sprintf("%s %s [%s:%s] %s",
			now.Format("2006-01-02"), now.Format("15:04:05"), s.tag, s.channel, s.text)
		fn(head, fmt.Sprintf("seq=%d", i))
	}
}
