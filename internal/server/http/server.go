package httpserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	logpkg "github.com/rzbill/logtap/pkg/log"
	"github.com/rzbill/logtap/pkg/retention"
	"github.com/rzbill/logtap/pkg/tap"
)

// Server exposes a read-mostly inspection API over a running tap. The
// library itself never ships logs anywhere; this surface belongs to the
// embedding application.
type Server struct {
	tp     *tap.Tap
	srv    *http.Server
	lis    net.Listener
	logger logpkg.Logger
}

// New builds a Server around the given tap.
func New(tp *tap.Tap, logger logpkg.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{tp: tp, logger: logger, srv: &http.Server{Handler: cors(mux)}}
	mux.HandleFunc("/v1/healthz", s.handleHealth)
	mux.HandleFunc("/v1/logs", s.handleLogs)
	mux.HandleFunc("/v1/logs/grouped", s.handleLogsGrouped)
	mux.HandleFunc("/v1/logs/tail", s.handleTail)
	mux.HandleFunc("/v1/options", s.handleOptions)
	mux.HandleFunc("/v1/toggle", s.handleToggle)
	return s
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	s.logger.Info("inspection api listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Addr returns the bound listener address, empty before ListenAndServe.
func (s *Server) Addr() string {
	if s.lis == nil {
		return ""
	}
	return s.lis.Addr().String()
}

func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type entryJSON struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	TsMs    int64  `json:"tsMs"`
	Source  any    `json:"source,omitempty"`
	Args    []any  `json:"args"`
	Text    string `json:"text"`
}

func toEntryJSON(e retention.Entry) entryJSON {
	out := entryJSON{
		ID:      e.ID.String(),
		Channel: string(e.Channel),
		TsMs:    e.Time.UnixMilli(),
		Args:    e.Data,
		Text:    e.Message(),
	}
	if !e.Source.IsZero() {
		out.Source = e.Source
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "enabled": s.tp.Enabled()})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()

	entries, err := s.tp.FilterLogs(q.Get("filter"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if src := q.Get("source"); src != "" {
		kept := entries[:0]
		for _, e := range entries {
			if e.Source.Name == src {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	if limit := intParam(q.Get("limit")); limit > 0 && len(entries) > limit {
		// keep the most recent entries
		entries = entries[len(entries)-limit:]
	}

	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryJSON(e))
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"entries": out})
}

func (s *Server) handleLogsGrouped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	groups := s.tp.LogsBySource()
	out := make(map[string][]entryJSON, len(groups))
	for name, entries := range groups {
		js := make([]entryJSON, 0, len(entries))
		for _, e := range entries {
			js = append(js, toEntryJSON(e))
		}
		out[name] = js
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"groups": out})
}

type optionsJSON struct {
	Log           bool   `json:"log"`
	Info          bool   `json:"info"`
	Warn          bool   `json:"warn"`
	Error         bool   `json:"error"`
	MaxLogSize    int    `json:"maxLogSize"`
	LogExpiryDays int    `json:"logExpiryDays"`
	Debug         bool   `json:"debug"`
	Attribution   string `json:"attribution"`
}

func (s *Server) writeOptions(w http.ResponseWriter) {
	o := s.tp.Options()
	_ = json.NewEncoder(w).Encode(optionsJSON{
		Log:           o.Log,
		Info:          o.Info,
		Warn:          o.Warn,
		Error:         o.Error,
		MaxLogSize:    o.MaxLogSize,
		LogExpiryDays: o.LogExpiryDays,
		Debug:         o.Debug,
		Attribution:   string(o.Attribution),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeOptions(w)
	case http.MethodPatch:
		var patch tap.OptionsPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.tp.SetOptions(patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Info("options updated")
		s.writeOptions(w)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type toggleReq struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req toggleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.tp.Toggle(req.Enabled)
	s.logger.Info("interception toggled", logpkg.Bool("enabled", req.Enabled))
	w.WriteHeader(http.StatusNoContent)
}

func intParam(v string) int {
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
