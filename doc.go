/*
Package annolock provides lock types and scoped lockers annotated for the
gVisor checklocks analyzer, so that lock discipline can be verified
statically.

Mutex and ReadWriteLock wrap the runtime's primitives. Their methods carry
+checklocksacquire, +checklocksacquireread and +checklocksrelease
annotations, so fields marked

	// +checklocks:mu
	count int

are reported when touched without mu held. Building with -tags deadlock
swaps the primitives for github.com/sasha-s/go-deadlock. go-deadlock then
also sees try-locks: a goroutine calling TryLock, TryLockForRead or
TryLockForWrite on a lock it already holds still gets false, but is first
reported as a potential deadlock through deadlock.Opts.OnPotentialDeadlock,
which exits the process by default.

The scoped lockers take a lock when created and give it back on their first
Unlock, which makes them safe to defer:

	l := annolock.NewMutexLocker(&mu)
	defer l.Unlock()
	if done {
		l.Unlock() // early release; the deferred Unlock does nothing
		return
	}

ReadWriteLock has a single Unlock, annotated as an exclusive release.
Read holds should therefore be released through ReadLocker, RLocker or
WithReadLock, whose release paths are kept out of the analysis; a bare
LockForRead followed by Unlock is flagged by checklocks.

WithMutex, WithReadLock and WithWriteLock do the same around a callback,
and Guarded and RWGuarded go further by only handing out the protected value
while it is locked.

MutexLockerDebug trades the static check for runtime output on Opts.LogBuf
describing contention. Code using it is not covered by checklocks.

Misuse, such as unlocking a lock that is not held or reacquiring a
NonRecursive ReadWriteLock, is not detected here. The one exception is a
Recursive ReadWriteLock unlocked by a goroutine holding nothing, which panics.
*/
package annolock
