package mutex

import (
	"sync/atomic"
)

// futexLock is a three state mutex, 0 (unlocked), 1 (locked), or 2 (locked,
// possibly with waiters), which only enters the kernel under contention.
type futexLock struct {
	state uint32
}

func (x *futexLock) Lock() {
	if atomic.CompareAndSwapUint32(&x.state, 0, 1) {
		return
	}
	// if it changed from 0 to 2, we took a contended lock
	for atomic.SwapUint32(&x.state, 2) != 0 {
		futexWait(&x.state, 2)
	}
}

func (x *futexLock) TryLock() bool {
	return atomic.CompareAndSwapUint32(&x.state, 0, 1)
}

func (x *futexLock) Unlock() {
	switch atomic.SwapUint32(&x.state, 0) {
	case 0:
		panic(`mutex: unlock of unlocked futex lock`)
	case 2:
		futexWake(&x.state)
	}
}
