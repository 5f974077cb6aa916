package annolock

// noCopy makes go vet's copylocks check flag copies of the lockers.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// A MutexLocker holds a Mutex from construction until its first Unlock.
//
// Typical use:
//
//	l := annolock.NewMutexLocker(&mu)
//	defer l.Unlock()
//
// Calling Unlock early releases the mutex and turns the deferred Unlock
// into a no-op. A MutexLocker cannot be relocked; create a new one instead.
type MutexLocker struct {
	_    noCopy
	mu   *Mutex
	held bool
}

// NewMutexLocker locks m, blocking until it is available, and returns
// a MutexLocker holding it.
//
// +checklocksacquire:m
func NewMutexLocker(m *Mutex) *MutexLocker {
	m.Lock()
	return &MutexLocker{mu: m, held: true}
}

// Unlock releases the mutex if l still holds it.
//
// +checklocksrelease:l.mu
func (l *MutexLocker) Unlock() {
	if l.held {
		l.held = false
		l.mu.Unlock()
	}
}

// A WriteLocker holds a ReadWriteLock for writing from construction
// until its first Unlock. It follows the same rules as MutexLocker.
type WriteLocker struct {
	_    noCopy
	rw   *ReadWriteLock
	held bool
}

// NewWriteLocker locks rw for writing, blocking until it is available,
// and returns a WriteLocker holding it.
//
// +checklocksacquire:rw
func NewWriteLocker(rw *ReadWriteLock) *WriteLocker {
	rw.LockForWrite()
	return &WriteLocker{rw: rw, held: true}
}

// Unlock releases the write lock if l still holds it.
//
// +checklocksrelease:l.rw
func (l *WriteLocker) Unlock() {
	if l.held {
		l.held = false
		l.rw.Unlock()
	}
}

// A ReadLocker holds a ReadWriteLock for reading from construction
// until its first Unlock. It follows the same rules as MutexLocker.
type ReadLocker struct {
	_    noCopy
	rw   *ReadWriteLock
	held bool
}

// NewReadLocker locks rw for reading, blocking while a writer holds it,
// and returns a ReadLocker holding it.
//
// +checklocksacquireread:rw
func NewReadLocker(rw *ReadWriteLock) *ReadLocker {
	rw.LockForRead()
	return &ReadLocker{rw: rw, held: true}
}

// Unlock releases the read lock if l still holds it.
//
// ReadWriteLock.Unlock is annotated as an exclusive release, which
// checklocks would reject after a shared acquire, so the body is not checked.
//
// +checklocksignore
func (l *ReadLocker) Unlock() {
	if l.held {
		l.held = false
		l.rw.Unlock()
	}
}
