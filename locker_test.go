package annolock

import (
	"testing"
	"time"
)

func TestMutexLocker_ReleasesOnce(t *testing.T) {
	var m Mutex
	func() {
		l := NewMutexLocker(&m)
		defer l.Unlock()
		if elsewhere(m.TryLock) {
			t.Fatal("expected TryLock to fail while locker holds the mutex")
		}
		l.Unlock()
		if !m.TryLock() {
			t.Fatal("expected TryLock to succeed after early Unlock")
		}
		// The deferred Unlock must not release our TryLock hold.
	}()
	if elsewhere(m.TryLock) {
		t.Fatal("deferred Unlock released a lock it did not own")
	}
	m.Unlock()
}

func TestMutexLocker_TryLockScenario(t *testing.T) {
	var m Mutex
	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		l := NewMutexLocker(&m)
		defer l.Unlock()
		close(held)
		<-release
	}()
	<-held
	if m.TryLock() {
		t.Fatal("expected TryLock to fail while A holds the locker")
	}
	close(release)
	waitOrFail(t, done, time.Second, "locker goroutine")
	if !m.TryLock() {
		t.Fatal("expected TryLock to succeed after the locker is gone")
	}
	m.Unlock()
}

func TestWriteLocker_BlocksUntilReaderGone(t *testing.T) {
	for _, mode := range []RecursionMode{NonRecursive, Recursive} {
		t.Run(mode.String(), func(t *testing.T) {
			rw := NewReadWriteLock(mode)
			held := make(chan struct{})
			release := make(chan struct{})
			go func() {
				r := NewReadLocker(rw)
				defer r.Unlock()
				close(held)
				<-release
			}()
			<-held

			written := make(chan struct{})
			go func() {
				w := NewWriteLocker(rw)
				close(written)
				w.Unlock()
			}()
			stillBlocked(t, written, time.Millisecond*20, "writer locker")
			close(release)
			waitOrFail(t, written, time.Second, "writer locker")
		})
	}
}

func TestReadLocker_SharesAndReleasesOnce(t *testing.T) {
	var rw ReadWriteLock
	r1 := NewReadLocker(&rw)
	var r2 *ReadLocker
	elsewhere(func() bool {
		r2 = NewReadLocker(&rw)
		return true
	})
	if elsewhere(rw.TryLockForWrite) {
		t.Fatal("expected TryLockForWrite to fail while read")
	}
	r1.Unlock()
	r1.Unlock()
	if elsewhere(rw.TryLockForWrite) {
		t.Fatal("second Unlock on r1 released r2's hold")
	}
	r2.Unlock()
	w := NewWriteLocker(&rw)
	if elsewhere(rw.TryLockForRead) {
		t.Fatal("expected TryLockForRead to fail while written")
	}
	w.Unlock()
	w.Unlock()
	if !rw.TryLockForRead() {
		t.Fatal("expected TryLockForRead to succeed")
	}
	rw.Unlock()
}

func TestWith_ReleasesOnPanic(t *testing.T) {
	var m Mutex
	var rw ReadWriteLock
	mustPanic := func(fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		fn()
	}
	mustPanic(func() { WithMutex(&m, func() { panic("boom") }) })
	mustPanic(func() { WithWriteLock(&rw, func() { panic("boom") }) })
	mustPanic(func() { WithReadLock(&rw, func() { panic("boom") }) })
	if !m.TryLock() {
		t.Fatal("WithMutex left the mutex locked")
	}
	m.Unlock()
	if !rw.TryLockForWrite() {
		t.Fatal("WithWriteLock or WithReadLock left the lock held")
	}
	rw.Unlock()
}

func TestWith_HoldsDuringCallback(t *testing.T) {
	var m Mutex
	var rw ReadWriteLock
	WithMutex(&m, func() {
		if elsewhere(m.TryLock) {
			t.Error("mutex not held in WithMutex")
		}
	})
	WithReadLock(&rw, func() {
		if elsewhere(rw.TryLockForWrite) {
			t.Error("lock not read-held in WithReadLock")
		}
	})
	WithWriteLock(&rw, func() {
		if elsewhere(rw.TryLockForRead) {
			t.Error("lock not write-held in WithWriteLock")
		}
	})
}
