package annolock

import (
	"bufio"
	"io"
	"os"
	"sync"
)

var optsLock sync.RWMutex

// Options control the diagnostics written by MutexLockerDebug.
type Options struct {
	// Will print debug locker diagnostics to log buffer. Nil disables them.
	LogBuf io.Writer
	// Will print the stacks of the waiting goroutine and of the current
	// holder (if known) when a debug locker has to wait.
	PrintStacks bool
	// OnContended is called with the locker's info each time a debug locker
	// finds the mutex already held, before it starts waiting.
	OnContended func(info string)
}

// WriteLocked calls the given function with Opts locked for writing.
// Not needed unless you modify options while locks are being held.
func (opts *Options) WriteLocked(fn func()) {
	optsLock.Lock()
	defer optsLock.Unlock()
	fn()
}

// ReadLocked calls the given function with Opts locked for reading.
// Not needed unless you modify options while locks are being held.
func (opts *Options) ReadLocked(fn func()) {
	optsLock.RLock()
	defer optsLock.RUnlock()
	fn()
}

func (opts *Options) Write(b []byte) (int, error) {
	if opts.LogBuf != nil {
		return opts.LogBuf.Write(b)
	}
	return 0, nil
}

func (opts *Options) Flush() error {
	if opts.LogBuf != nil {
		if buf, ok := opts.LogBuf.(*bufio.Writer); ok {
			return buf.Flush()
		}
	}
	return nil
}

// Opts control how debug lockers report.
// Options are supposed to be set once at a startup (say, when parsing flags).
var Opts = Options{
	LogBuf: os.Stderr,
}

func currentOpts() (opts Options) {
	Opts.ReadLocked(func() { opts = Opts })
	return
}
