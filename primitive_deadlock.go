//go:build deadlock
// +build deadlock

package annolock

import "github.com/sasha-s/go-deadlock"

type primitiveMutex = deadlock.Mutex

type primitiveRWMutex = deadlock.RWMutex

// DeadlockEnabled is true if the underlying primitives come from go-deadlock.
const DeadlockEnabled = true
