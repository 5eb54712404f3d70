package queuetest

import (
	"sync/atomic"

	"github.com/joeycumines/go-dispatchq/mutex"
)

// Mutex is a fake mutex.Mutex, which counts calls, and only runs work if
// FireClosures is set. It provides no mutual exclusion. Configure fields
// before use.
type Mutex struct {
	syncCalls    atomic.Int64
	trySyncCalls atomic.Int64

	// FireClosures enables running work.
	FireClosures bool
	// TryResult is returned by TrySync.
	TryResult bool
}

var _ mutex.Mutex = (*Mutex)(nil)

// Sync counts the call, then runs work if FireClosures is set.
func (x *Mutex) Sync(work func()) {
	x.syncCalls.Add(1)
	if x.FireClosures {
		work()
	}
}

// TrySync counts the call, then runs work if FireClosures is set, returning
// TryResult.
func (x *Mutex) TrySync(work func()) bool {
	x.trySyncCalls.Add(1)
	if x.FireClosures {
		work()
	}
	return x.TryResult
}

// SyncCalls returns the number of calls to Sync.
func (x *Mutex) SyncCalls() int { return int(x.syncCalls.Load()) }

// TrySyncCalls returns the number of calls to TrySync.
func (x *Mutex) TrySyncCalls() int { return int(x.trySyncCalls.Load()) }
