package annolock

import "sync"

type rlocker ReadWriteLock

func (r *rlocker) Lock() { (*ReadWriteLock)(r).LockForRead() }

// +checklocksignore
func (r *rlocker) Unlock() { (*ReadWriteLock)(r).Unlock() }

type wlocker ReadWriteLock

func (w *wlocker) Lock()   { (*ReadWriteLock)(w).LockForWrite() }
func (w *wlocker) Unlock() { (*ReadWriteLock)(w).Unlock() }

// RLocker returns a Locker interface that implements
// the Lock and Unlock methods by calling LockForRead and Unlock.
func (rw *ReadWriteLock) RLocker() sync.Locker {
	return (*rlocker)(rw)
}

// WLocker returns a Locker interface that implements
// the Lock and Unlock methods by calling LockForWrite and Unlock.
func (rw *ReadWriteLock) WLocker() sync.Locker {
	return (*wlocker)(rw)
}
