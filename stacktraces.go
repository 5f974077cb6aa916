package annolock

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync/atomic"
)

const maxStackDepth = 32

// callers returns the call stack starting at the caller of the function calling callers.
func callers(skip int) []uintptr {
	s := make([]uintptr, maxStackDepth)
	return s[:runtime.Callers(2+skip, s)]
}

// printStack writes stack one frame per line pair, stopping at the
// goroutine's entry point.
func printStack(w io.Writer, stack []uintptr) {
	frames := runtime.CallersFrames(stack)
	for {
		f, more := frames.Next()
		if f.Function == "runtime.goexit" || f.Function == "testing.tRunner" {
			break
		}
		if f.Function != "" {
			fmt.Fprintf(w, "  %s()\n      %s:%d\n", f.Function, f.File, f.Line)
		}
		if !more {
			break
		}
	}
	fmt.Fprintln(w)
}

var stackBufSize atomic.Int64

func init() {
	stackBufSize.Store(4096)
}

// stacks returns the stacktraces of all goroutines.
func stacks() []byte {
	for {
		bufSize := stackBufSize.Load()
		buf := make([]byte, bufSize)
		if n := runtime.Stack(buf, true); n < len(buf) {
			return buf[:n]
		}
		stackBufSize.CompareAndSwap(bufSize, bufSize*2)
	}
}

// goroutineStack picks the stack of goroutine gid out of stacks().
func goroutineStack(all []byte, gid int64) []byte {
	for _, g := range strings.Split(string(all), "\n\n") {
		if extractGID([]byte(g)) == gid {
			return []byte(g)
		}
	}
	return nil
}
