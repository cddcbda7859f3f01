package attribution

import (
	"path/filepath"
	"runtime"
	"strings"
)

const modulePath = "github.com/rzbill/logtap/"

// maxStackDepth bounds the walk; capture paths are shallow.
const maxStackDepth = 32

// StackResolver attributes calls by walking the execution stack outward past
// this module's own frames to the first caller frame. Unlike a fixed frame
// offset, the walk survives added wrapping layers and inlining; the cost is a
// runtime.Callers capture per call. When no caller frame exists it returns
// the Unknown sentinel.
type StackResolver struct{}

// Resolve walks the stack; the call arguments are ignored.
func (StackResolver) Resolve(_ []any) Source {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return Unknown()
	}
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !internalFrame(frame.Function) {
			return Source{
				Name:     shortFuncName(frame.Function),
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			}
		}
		if !more {
			break
		}
	}
	return Unknown()
}

// internalFrame reports frames belonging to this module's capture path or
// the Go runtime. Test packages are deliberately not internal so regression
// tests see themselves as the caller.
func internalFrame(fn string) bool {
	if strings.HasPrefix(fn, "runtime.") {
		return true
	}
	return strings.HasPrefix(fn, modulePath) && !strings.Contains(fn, "_test")
}

// shortFuncName trims the package path, keeping pkg.Func or pkg.(*T).Method.
func shortFuncName(fn string) string {
	base := filepath.Base(fn)
	return base
}
