package tap

import (
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/rzbill/logtap/pkg/retention"
)

// celFilter wraps a compiled CEL program evaluated per entry. When disabled
// (empty expression), Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("channel", cel.StringType),
		cel.Variable("source", cel.StringType),
		cel.Variable("text", cel.StringType),
		cel.Variable("nargs", cel.IntType),
		cel.Variable("ts_ms", cel.IntType),
		// Current time in ms for windowed filters
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against an entry. When disabled,
// returns true; evaluation errors count as non-matches.
func (f celFilter) Eval(e retention.Entry) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"channel": string(e.Channel),
		"source":  e.Source.Name,
		"text":    e.Message(),
		"nargs":   int64(len(e.Data)),
		"ts_ms":   e.Time.UnixMilli(),
		"now_ms":  time.Now().UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

// Filter is a compiled entry predicate usable for repeated matching, e.g.
// while tailing.
type Filter struct {
	f celFilter
}

// NewFilter compiles a CEL expression over channel, source, text, nargs,
// ts_ms and now_ms. An empty expression matches everything.
func NewFilter(expr string) (Filter, error) {
	f, err := newCELFilter(expr)
	if err != nil {
		return Filter{}, err
	}
	return Filter{f: f}, nil
}

// Match evaluates the filter against one entry.
func (f Filter) Match(e retention.Entry) bool { return f.f.Eval(e) }

// FilterLogs returns the captured entries matching a CEL expression; see
// NewFilter for the available variables.
func (t *Tap) FilterLogs(expr string) ([]retention.Entry, error) {
	f, err := NewFilter(expr)
	if err != nil {
		return nil, err
	}
	all := t.store.List()
	out := make([]retention.Entry, 0, len(all))
	for _, e := range all {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
