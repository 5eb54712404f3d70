package mutex

import (
	"fmt"

	"github.com/joeycumines/go-dispatchq/queue"
)

type (
	// Mutex runs work under mutual exclusion. See the package docs for the
	// shared contract.
	Mutex interface {
		// Sync blocks until the lock is held, runs work, and releases the
		// lock. Panics propagate, after the lock is released.
		Sync(work func())

		// TrySync attempts to take the lock without blocking, then runs work,
		// whether or not the lock was taken. The lock is released after work
		// returns, only if it was taken, which is reported by the return
		// value.
		TrySync(work func()) (locked bool)
	}

	// Kind selects between plain and reentrant locking, for strategies that
	// support both.
	Kind uint8

	// Strategy selects the lock primitive used by New. Strategy values are
	// comparable, and immutable. The zero value is invalid.
	Strategy struct {
		queue queue.Queue
		impl  impl
		kind  Kind
	}

	impl uint8

	// locker models the primitives behind most strategies.
	locker interface {
		Lock()
		Unlock()
		TryLock() bool
	}

	lockerMutex struct {
		l locker
	}
)

const (
	// Normal locks may not be locked again by their holder.
	Normal Kind = iota
	// Recursive locks may be locked again by the goroutine holding them,
	// and must be unlocked the same number of times.
	Recursive
)

const (
	_ impl = iota
	implSpin
	implExclusive
	implPosix
	implSemaphore
	implBarrier
)

var _ Mutex = (*lockerMutex)(nil)

// Spin selects a non-reentrant spin lock, which busy-waits, backing off to
// yield the processor.
func Spin() Strategy { return Strategy{impl: implSpin} }

// Exclusive selects a lock built on [sync.Mutex].
func Exclusive(kind Kind) Strategy { return Strategy{impl: implExclusive, kind: kind} }

// Posix selects a futex-based lock. On platforms other than linux, waiters
// yield the processor, instead of sleeping in the kernel.
func Posix(kind Kind) Strategy { return Strategy{impl: implPosix, kind: kind} }

// Semaphore selects a binary semaphore, which grants the lock in FIFO order.
func Semaphore() Strategy { return Strategy{impl: implSemaphore} }

// Barrier selects running work via q.RunNowFlags, with the queue.Barrier
// flag. Work therefore runs on q, exclusive of all other work on q.
//
// Locking from work already running on a concurrent q, outside of a barrier,
// panics with queue.ErrNestedBarrier, as exclusion cannot be provided.
//
// TrySync cannot avoid blocking, as queues have no non-blocking submission.
// It behaves like Sync, and always reports true.
func Barrier(q queue.Queue) Strategy { return Strategy{impl: implBarrier, queue: q} }

// Default is the general purpose strategy, a reentrant Exclusive lock.
func Default() Strategy { return Exclusive(Recursive) }

// Kind returns the lock kind, which is Normal unless the strategy supports
// reentrancy.
func (x Strategy) Kind() Kind { return x.kind }

// Queue returns the queue of a Barrier strategy, or nil.
func (x Strategy) Queue() queue.Queue { return x.queue }

// String returns a description of the strategy, e.g. `posix(recursive)`.
func (x Strategy) String() string {
	switch x.impl {
	case implSpin:
		return `spin`
	case implExclusive:
		return `exclusive(` + x.kind.String() + `)`
	case implPosix:
		return `posix(` + x.kind.String() + `)`
	case implSemaphore:
		return `semaphore`
	case implBarrier:
		if x.queue == nil {
			return `barrier(nil)`
		}
		return `barrier(` + x.queue.Label() + `)`
	default:
		return `invalid`
	}
}

func (x Kind) String() string {
	switch x {
	case Normal:
		return `normal`
	case Recursive:
		return `recursive`
	default:
		return fmt.Sprintf(`Kind(%d)`, uint8(x))
	}
}

// New initializes a new Mutex, using the given strategy. A panic will occur
// if the strategy is invalid.
func New(strategy Strategy) Mutex {
	if strategy.kind > Recursive {
		panic(fmt.Errorf(`mutex: invalid kind: %s`, strategy.kind))
	}

	var l locker
	switch strategy.impl {
	case implSpin:
		l = new(spinLock)
	case implExclusive:
		l = newExclusive()
	case implPosix:
		l = new(futexLock)
	case implSemaphore:
		l = newSemaphoreLock()
	case implBarrier:
		if strategy.queue == nil {
			panic(`mutex: barrier strategy requires a queue`)
		}
		return &barrierMutex{queue: strategy.queue}
	default:
		panic(`mutex: invalid strategy`)
	}

	if strategy.kind == Recursive {
		l = &recursiveLock{locker: l}
	}

	return &lockerMutex{l: l}
}

// Do runs work via m.Sync, returning its results. Errors returned by work
// are not modified.
func Do[R any](m Mutex, work func() (R, error)) (result R, err error) {
	m.Sync(func() {
		result, err = work()
	})
	return
}

// TryDo runs work via m.TrySync, returning its results. Work always runs,
// see Mutex.TrySync.
func TryDo[R any](m Mutex, work func() (R, error)) (result R, err error) {
	m.TrySync(func() {
		result, err = work()
	})
	return
}

func (x *lockerMutex) Sync(work func()) {
	x.l.Lock()
	defer x.l.Unlock()
	work()
}

func (x *lockerMutex) TrySync(work func()) (locked bool) {
	if !x.l.TryLock() {
		work()
		return false
	}
	defer x.l.Unlock()
	work()
	return true
}
