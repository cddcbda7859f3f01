package console

import (
	"fmt"
	"strings"

	logpkg "github.com/rzbill/logtap/pkg/log"
)

// NewStandard returns a Console backed by the structured logger. The log and
// info channels emit at info level, warn and error at their matching levels.
func NewStandard(logger logpkg.Logger) Console {
	return standardConsole{logger: logger}
}

type standardConsole struct {
	logger logpkg.Logger
}

func (c standardConsole) Log(args ...any)   { c.logger.Info(Render(args)) }
func (c standardConsole) Info(args ...any)  { c.logger.Info(Render(args)) }
func (c standardConsole) Warn(args ...any)  { c.logger.Warn(Render(args)) }
func (c standardConsole) Error(args ...any) { c.logger.Error(Render(args)) }

// Render joins channel arguments with single spaces, the conventional
// console rendering of a variadic call.
func Render(args []any) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, " ")
}
