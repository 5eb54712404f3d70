package mutex

import (
	"sync/atomic"

	"github.com/petermattis/goid"
)

// recursiveLock makes any locker reentrant, tracking the owning goroutine.
type recursiveLock struct {
	locker
	owner atomic.Int64
	// guarded by locker, only accessed by the owner
	depth int
}

func (x *recursiveLock) Lock() {
	id := goid.Get()
	if x.owner.Load() == id {
		x.depth++
		return
	}
	x.locker.Lock()
	x.owner.Store(id)
	x.depth = 1
}

func (x *recursiveLock) TryLock() bool {
	id := goid.Get()
	if x.owner.Load() == id {
		x.depth++
		return true
	}
	if !x.locker.TryLock() {
		return false
	}
	x.owner.Store(id)
	x.depth = 1
	return true
}

func (x *recursiveLock) Unlock() {
	if x.owner.Load() != goid.Get() {
		panic(`mutex: unlock of recursive lock not held by the caller`)
	}
	x.depth--
	if x.depth == 0 {
		x.owner.Store(0)
		x.locker.Unlock()
	}
}
