//go:build deadlock

package mutex

import (
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
)

// DeadlockDetection is true if built with -tags=deadlock.
const DeadlockDetection = true

func init() {
	deadlock.Opts.DeadlockTimeout = 30 * time.Second
}

func newExclusive() locker { return new(deadlock.Mutex) }
