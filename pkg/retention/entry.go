package retention

import (
	"time"

	"github.com/rzbill/logtap/pkg/attribution"
	"github.com/rzbill/logtap/pkg/console"
	"github.com/rzbill/logtap/pkg/id"
)

// Entry is one captured call. Entries are immutable once appended and are
// removed only by rotation or expiry.
type Entry struct {
	// ID is a sortable capture identifier, usable as a resume cursor.
	ID id.ID
	// Channel is the monitored channel the call arrived on.
	Channel console.Channel
	// Time is the point of capture.
	Time time.Time
	// Source is the attribution result; zero when nothing could be inferred.
	Source attribution.Source
	// Data holds the original call arguments, stored opaquely.
	Data []any
}

// Message renders the captured arguments the way the console would.
func (e Entry) Message() string { return console.Render(e.Data) }
