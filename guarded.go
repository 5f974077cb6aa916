package annolock

// Guarded holds a value that can only be reached with its mutex held.
// Where the checklocks annotations only let a linter complain, Guarded
// makes an unlocked access impossible to write.
type Guarded[T any] struct {
	mu Mutex
	// +checklocks:mu
	value T
}

// NewGuarded returns a Guarded holding v.
func NewGuarded[T any](v T) *Guarded[T] {
	return &Guarded[T]{value: v}
}

// Do calls fn with the mutex held. The pointer must not escape fn.
func (g *Guarded[T]) Do(fn func(v *T)) {
	WithMutex(&g.mu, func() { fn(&g.value) })
}

// TryDo calls fn only if the mutex can be taken without blocking,
// and reports whether it did.
func (g *Guarded[T]) TryDo(fn func(v *T)) bool {
	if !g.mu.TryLock() {
		return false
	}
	defer g.mu.Unlock()
	fn(&g.value) // +checklocksforce
	return true
}

// RWGuarded is the ReadWriteLock counterpart of Guarded.
type RWGuarded[T any] struct {
	rw *ReadWriteLock
	// +checklocks:rw
	value T
}

// NewRWGuarded returns an RWGuarded holding v, locked with the given recursion mode.
func NewRWGuarded[T any](v T, mode RecursionMode) *RWGuarded[T] {
	return &RWGuarded[T]{rw: NewReadWriteLock(mode), value: v}
}

// Read calls fn with the lock held for reading.
// fn must not modify the value or let the pointer escape.
func (g *RWGuarded[T]) Read(fn func(v *T)) {
	WithReadLock(g.rw, func() { fn(&g.value) })
}

// Write calls fn with the lock held for writing. The pointer must not escape fn.
func (g *RWGuarded[T]) Write(fn func(v *T)) {
	WithWriteLock(g.rw, func() { fn(&g.value) })
}

// TryRead is Read without blocking. It reports whether fn was called.
func (g *RWGuarded[T]) TryRead(fn func(v *T)) bool {
	if !g.rw.TryLockForRead() {
		return false
	}
	defer g.rw.Unlock()
	fn(&g.value) // +checklocksforce
	return true
}

// TryWrite is Write without blocking. It reports whether fn was called.
func (g *RWGuarded[T]) TryWrite(fn func(v *T)) bool {
	if !g.rw.TryLockForWrite() {
		return false
	}
	defer g.rw.Unlock()
	fn(&g.value) // +checklocksforce
	return true
}
