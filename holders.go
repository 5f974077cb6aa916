package annolock

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// holderSet remembers who holds each mutex taken through a MutexLockerDebug.
// Mutex.Unlock clears the entry however the mutex is released, so a plain
// Unlock of a debug-locked mutex does not leave a stale holder behind.
type holderSet struct {
	n   atomic.Int32 // len(cur), readable without mu.
	mu  sync.Mutex
	cur map[*Mutex]stackGID // stacktraces + gids for the locks currently taken.
}

type stackGID struct {
	stack []uintptr
	gid   int64
}

var holders = newHolderSet()

func newHolderSet() *holderSet {
	return &holderSet{cur: map[*Mutex]stackGID{}}
}

func (h *holderSet) postLock(gid int64, stack []uintptr, m *Mutex) {
	h.mu.Lock()
	h.cur[m] = stackGID{stack, gid}
	h.n.Store(int32(len(h.cur)))
	h.mu.Unlock()
}

func (h *holderSet) preUnlock(m *Mutex) {
	if h.n.Load() == 0 {
		return
	}
	h.mu.Lock()
	delete(h.cur, m)
	h.n.Store(int32(len(h.cur)))
	h.mu.Unlock()
}

func (h *holderSet) get(m *Mutex) (sg stackGID, ok bool) {
	h.mu.Lock()
	sg, ok = h.cur[m]
	h.mu.Unlock()
	return
}

// printHolder writes where the holder took m and what it is doing now.
func printHolder(w io.Writer, m *Mutex, holder stackGID) {
	fmt.Fprintf(w, "Previous place where the lock was grabbed\ngoroutine %v lock %p\n", holder.gid, m)
	printStack(w, holder.stack)
	if g := goroutineStack(stacks(), holder.gid); g != nil {
		fmt.Fprintln(w, "Here is what goroutine", holder.gid, "doing now")
		_, _ = w.Write(g)
		fmt.Fprintln(w)
	}
}
