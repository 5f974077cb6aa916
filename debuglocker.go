package annolock

import (
	"bytes"
	"fmt"
	"sync"
)

const header = "annolock:"

var logMu sync.Mutex // Serializes writes to Opts.LogBuf.

// A MutexLockerDebug is a MutexLocker that reports on Opts.LogBuf when it
// has to wait for the mutex, when it gets it and when it releases it.
//
// It is invisible to checklocks: the analyzer cannot follow the lock
// through the locker, so code using it must be reviewed by hand.
type MutexLockerDebug struct {
	_    noCopy
	mu   *Mutex
	info string
	gid  int64
	held bool
}

// NewMutexLockerDebug locks m and returns a MutexLockerDebug holding it.
// info is an optional label included in every diagnostic.
//
// m is first probed with TryLock; only if that fails is a wait
// diagnostic written before blocking in Lock. Another goroutine may take
// the mutex between the probe and Lock, so a wait can go unreported.
//
// +checklocksignore
func NewMutexLockerDebug(m *Mutex, info string) *MutexLockerDebug {
	opts := currentOpts()
	l := &MutexLockerDebug{mu: m, info: info, gid: getGoid()}
	stack := callers(1)
	if !m.TryLock() {
		l.logWait(&opts, stack)
		if opts.OnContended != nil {
			opts.OnContended(info)
		}
		m.Lock()
	}
	l.held = true
	holders.postLock(l.gid, stack, m)
	l.report(&opts, "locked")
	return l
}

// Unlock releases the mutex if l still holds it.
//
// +checklocksignore
func (l *MutexLockerDebug) Unlock() {
	if l.held {
		l.held = false
		l.mu.Unlock()
		opts := currentOpts()
		l.report(&opts, "unlocked")
	}
}

func (l *MutexLockerDebug) line(what string) *bytes.Buffer {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s goroutine %d mutex %s", header, l.gid, what)
	if l.info != "" {
		buf.WriteByte(' ')
		buf.WriteString(l.info)
	}
	return &buf
}

func (l *MutexLockerDebug) report(opts *Options, what string) {
	if opts.LogBuf == nil {
		return
	}
	buf := l.line(what)
	buf.WriteByte('\n')
	logMu.Lock()
	defer logMu.Unlock()
	_, _ = opts.Write(buf.Bytes())
	_ = opts.Flush()
}

func (l *MutexLockerDebug) logWait(opts *Options, stack []uintptr) {
	if opts.LogBuf == nil {
		return
	}
	buf := l.line("wait")
	holder, known := holders.get(l.mu)
	if known {
		fmt.Fprintf(buf, " held by goroutine %d", holder.gid)
	}
	buf.WriteByte('\n')
	if opts.PrintStacks {
		printStack(buf, stack)
		if known {
			printHolder(buf, l.mu, holder)
		}
	}
	logMu.Lock()
	defer logMu.Unlock()
	_, _ = opts.Write(buf.Bytes())
	_ = opts.Flush()
}
