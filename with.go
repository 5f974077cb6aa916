package annolock

// WithMutex runs fn with m locked. m is unlocked when fn returns,
// including when it panics.
func WithMutex(m *Mutex, fn func()) {
	l := NewMutexLocker(m)
	defer l.Unlock()
	fn()
}

// WithWriteLock runs fn with rw locked for writing, releasing it afterwards
// even if fn panics.
func WithWriteLock(rw *ReadWriteLock, fn func()) {
	l := NewWriteLocker(rw)
	defer l.Unlock()
	fn()
}

// WithReadLock runs fn with rw locked for reading, releasing it afterwards
// even if fn panics.
func WithReadLock(rw *ReadWriteLock, fn func()) {
	l := NewReadLocker(rw)
	defer l.Unlock()
	fn()
}
