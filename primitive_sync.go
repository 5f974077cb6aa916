//go:build !deadlock
// +build !deadlock

package annolock

import "sync"

type primitiveMutex = sync.Mutex

type primitiveRWMutex = sync.RWMutex

// DeadlockEnabled is true if the underlying primitives come from go-deadlock.
const DeadlockEnabled = false
