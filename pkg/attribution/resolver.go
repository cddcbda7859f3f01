package attribution

import (
	"regexp"
	"strings"
)

// Source identifies the inferred origin of a captured call. A zero Source
// means attribution produced nothing; the store keeps the entry anyway and
// grouped views simply omit it.
type Source struct {
	Name     string `json:"name"`
	Function string `json:"function,omitempty"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// IsZero reports whether no source could be attributed.
func (s Source) IsZero() bool { return s == Source{} }

// Unknown is the sentinel returned when a stack walk finds no caller frame.
func Unknown() Source {
	return Source{Name: "unknown", File: "unknown", Line: 0}
}

// Resolver infers a Source from the arguments of a captured call. Resolvers
// must be cheap and must not panic for any input; a resolver that cannot
// attribute returns the zero Source.
type Resolver interface {
	Resolve(args []any) Source
}

// tagPattern matches the conventional bracketed tag "[name:...]"; the text
// before the first colon is the source name.
var tagPattern = regexp.MustCompile(`^\[([^:\[\]]+):`)

// ArgumentResolver attributes calls from their arguments alone:
//
//   - a non-string first argument cannot be attributed
//   - exactly one argument is classified as a manual "user" invocation
//   - with multiple arguments, the third whitespace-delimited token of the
//     first argument is parsed for a bracketed "[name:...]" tag
//
// This only works for callers that follow the tag convention, but it is
// deterministic and independent of call depth.
type ArgumentResolver struct{}

// Resolve applies the argument rules above.
func (ArgumentResolver) Resolve(args []any) Source {
	if len(args) == 0 {
		return Source{}
	}
	first, ok := args[0].(string)
	if !ok {
		return Source{}
	}
	if len(args) == 1 {
		return Source{Name: "user"}
	}
	tokens := strings.Fields(first)
	if len(tokens) < 3 {
		return Source{}
	}
	m := tagPattern.FindStringSubmatch(tokens[2])
	if m == nil {
		return Source{}
	}
	return Source{Name: m[1]}
}
