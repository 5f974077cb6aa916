package annolock

// A Mutex is a mutual exclusion lock whose methods carry checklocks
// annotations. The zero value is an unlocked mutex.
//
// A Mutex must not be copied after first use.
type Mutex struct {
	mu primitiveMutex
}

// Lock locks m.
// If the lock is already in use, the calling goroutine
// blocks until the mutex is available.
//
// +checklocksacquire:m
func (m *Mutex) Lock() {
	m.mu.Lock()
}

// Unlock unlocks m.
// It is a run-time error if m is not locked on entry to Unlock.
//
// A locked Mutex is not associated with a particular goroutine.
// It is allowed for one goroutine to lock a Mutex and then
// arrange for another goroutine to unlock it.
//
// +checklocksrelease:m
func (m *Mutex) Unlock() {
	holders.preUnlock(m)
	m.mu.Unlock()
}

// TryLock tries to lock m without blocking and reports whether it succeeded.
// On failure nothing changes.
//
// Under -tags deadlock, a goroutine calling TryLock on a mutex it already
// holds is reported to go-deadlock as a potential deadlock (whose default
// reaction is to exit the process) before TryLock returns false.
//
// checklocks has no conditional acquire, so callers mark the success
// branch with +checklocksforce.
func (m *Mutex) TryLock() bool {
	return m.mu.TryLock()
}
