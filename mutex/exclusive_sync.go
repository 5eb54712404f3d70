//go:build !deadlock

package mutex

import (
	"sync"
)

// DeadlockDetection is true if built with -tags=deadlock.
const DeadlockDetection = false

func newExclusive() locker { return new(sync.Mutex) }
