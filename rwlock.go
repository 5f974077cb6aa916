package annolock

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// RecursionMode selects whether a goroutine may reacquire a ReadWriteLock it already holds.
type RecursionMode int

const (
	// NonRecursive locks deadlock (or worse) when a holder reacquires them.
	NonRecursive RecursionMode = iota
	// Recursive locks let the holding goroutine lock again. Each lock
	// must be matched by an Unlock from that same goroutine.
	Recursive
)

func (mode RecursionMode) String() string {
	switch mode {
	case NonRecursive:
		return "NonRecursive"
	case Recursive:
		return "Recursive"
	}
	return fmt.Sprintf("RecursionMode(%d)", int(mode))
}

// A ReadWriteLock is a reader/writer mutual exclusion lock whose methods
// carry checklocks annotations. The zero value is an unlocked,
// NonRecursive lock.
//
// In NonRecursive mode a goroutine holding the read side must not call
// LockForRead again: if a writer is waiting in between, both block forever.
// In Recursive mode that is allowed, as is reacquiring the write side and
// taking the read side while holding the write side (the read then nests
// inside the write hold). Taking the write side while holding only the
// read side deadlocks in either mode.
//
// A ReadWriteLock must not be copied after first use.
type ReadWriteLock struct {
	rw        primitiveRWMutex
	recursive bool
	writer    atomic.Bool // NonRecursive only: the write side is held.

	mu sync.Mutex // Protects the recursion bookkeeping below.
	// +checklocks:mu
	writerGid int64
	// +checklocks:mu
	writeDepth int
	// +checklocks:mu
	readers map[int64]int
}

// NewReadWriteLock returns an unlocked ReadWriteLock using the given recursion mode.
func NewReadWriteLock(mode RecursionMode) *ReadWriteLock {
	return &ReadWriteLock{recursive: mode == Recursive}
}

// Mode returns the recursion mode rw was created with.
func (rw *ReadWriteLock) Mode() RecursionMode {
	if rw.recursive {
		return Recursive
	}
	return NonRecursive
}

// LockForRead locks rw for reading, blocking while a writer holds it.
// Any number of readers may hold rw at once.
//
// +checklocksacquireread:rw
func (rw *ReadWriteLock) LockForRead() {
	if rw.recursive {
		rw.lockRecursive(false, rw.rw.RLock, nil)
		return
	}
	rw.rw.RLock()
}

// TryLockForRead tries to lock rw for reading without blocking
// and reports whether it succeeded.
//
// As with Mutex.TryLock, under -tags deadlock a goroutine trying a lock
// it already holds through the primitive is reported as a potential
// deadlock. Nested holds of a Recursive lock never reach the primitive.
func (rw *ReadWriteLock) TryLockForRead() bool {
	if rw.recursive {
		return rw.lockRecursive(false, nil, rw.rw.TryRLock)
	}
	return rw.rw.TryRLock()
}

// LockForWrite locks rw for writing, blocking until no reader or
// other writer holds it.
//
// +checklocksacquire:rw
func (rw *ReadWriteLock) LockForWrite() {
	if rw.recursive {
		rw.lockRecursive(true, rw.rw.Lock, nil)
		return
	}
	rw.rw.Lock()
	rw.writer.Store(true)
}

// TryLockForWrite tries to lock rw for writing without blocking
// and reports whether it succeeded. See TryLockForRead about -tags deadlock.
func (rw *ReadWriteLock) TryLockForWrite() bool {
	if rw.recursive {
		return rw.lockRecursive(true, nil, rw.rw.TryLock)
	}
	if rw.rw.TryLock() {
		rw.writer.Store(true)
		return true
	}
	return false
}

// Unlock releases one hold on rw, in whichever mode the caller acquired it.
//
// In NonRecursive mode, as with sync.RWMutex, the lock is not tied to a
// goroutine and may be released by another goroutine than the one that
// locked it. In Recursive mode Unlock must be called by the holding
// goroutine, and panics if that goroutine holds nothing.
//
// +checklocksrelease:rw
func (rw *ReadWriteLock) Unlock() {
	if rw.recursive {
		rw.unlockRecursive()
		return
	}
	// Readers cannot hold rw while the writer flag is set, so the flag
	// tells us which side the caller holds.
	if rw.writer.Load() {
		rw.writer.Store(false)
		rw.rw.Unlock()
		return
	}
	rw.rw.RUnlock()
}

// lockRecursive acquires rw for the current goroutine. Exactly one of
// lockFn or tryLockFn is non-nil; the primitive is only touched for the
// outermost hold.
func (rw *ReadWriteLock) lockRecursive(write bool, lockFn func(), tryLockFn func() bool) bool {
	gid := getGoid()
	rw.mu.Lock()
	if rw.writerGid == gid {
		rw.writeDepth++
		rw.mu.Unlock()
		return true
	}
	if !write && rw.readers[gid] > 0 {
		rw.readers[gid]++
		rw.mu.Unlock()
		return true
	}
	rw.mu.Unlock()

	if tryLockFn != nil {
		if !tryLockFn() {
			return false
		}
	} else {
		lockFn()
	}

	rw.mu.Lock()
	if write {
		rw.writerGid = gid
		rw.writeDepth = 1
	} else {
		if rw.readers == nil {
			rw.readers = make(map[int64]int)
		}
		rw.readers[gid] = 1
	}
	rw.mu.Unlock()
	return true
}

func (rw *ReadWriteLock) unlockRecursive() {
	gid := getGoid()
	rw.mu.Lock()
	if rw.writerGid == gid {
		rw.writeDepth--
		if rw.writeDepth > 0 {
			rw.mu.Unlock()
			return
		}
		rw.writerGid = 0
		rw.mu.Unlock()
		rw.rw.Unlock()
		return
	}
	n := rw.readers[gid]
	switch {
	case n > 1:
		rw.readers[gid] = n - 1
		rw.mu.Unlock()
	case n == 1:
		delete(rw.readers, gid)
		rw.mu.Unlock()
		rw.rw.RUnlock()
	default:
		rw.mu.Unlock()
		panic(fmt.Sprintf("annolock: Unlock of recursive ReadWriteLock not held by goroutine %d", gid))
	}
}
