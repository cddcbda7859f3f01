package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rzbill/logtap/pkg/id"
	logpkg "github.com/rzbill/logtap/pkg/log"
	"github.com/rzbill/logtap/pkg/tap"
)

const tailPollTimeout = 2 * time.Second

// handleTail streams captured entries as Server-Sent Events. Clients resume
// with ?since=<entry id> and can narrow the stream with ?filter=<cel>.
func (s *Server) handleTail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()

	filter, err := tap.NewFilter(q.Get("filter"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var cursor id.ID
	if since := q.Get("since"); since != "" {
		cursor, err = id.Parse(since)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	client := uuid.NewString()
	s.logger.Debug("tail client connected",
		logpkg.Str("client", client), logpkg.Str("remote", r.RemoteAddr))
	defer s.logger.Debug("tail client disconnected", logpkg.Str("client", client))

	for {
		batch := s.tp.LogsSince(cursor)
		if len(batch) == 0 {
			s.tp.WaitForAppend(tailPollTimeout)
			if r.Context().Err() != nil {
				return
			}
			continue
		}
		wrote := false
		for _, e := range batch {
			cursor = e.ID
			if !filter.Match(e) {
				continue
			}
			b, _ := json.Marshal(toEntryJSON(e))
			if _, err := w.Write([]byte("data: ")); err != nil {
				return
			}
			if _, err := w.Write(b); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n\n")); err != nil {
				return
			}
			wrote = true
		}
		if wrote {
			flusher.Flush()
		}
		if r.Context().Err() != nil {
			return
		}
	}
}
