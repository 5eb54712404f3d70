package mutex

import (
	"runtime"
	"sync/atomic"
)

type spinLock struct {
	state atomic.Bool
}

func (x *spinLock) Lock() {
	var spins int
	for !x.TryLock() {
		delay(&spins)
	}
}

func (x *spinLock) TryLock() bool {
	return !x.state.Load() && x.state.CompareAndSwap(false, true)
}

func (x *spinLock) Unlock() {
	if !x.state.Swap(false) {
		panic(`mutex: unlock of unlocked spin lock`)
	}
}

// delay backs off, spinning with exponential growth, then yielding.
func delay(spins *int) {
	const maxSpins = 6
	if *spins < maxSpins {
		for range 1 << *spins {
			spinWait()
		}
		*spins++
		return
	}
	runtime.Gosched()
}

//go:noinline
func spinWait() {}
