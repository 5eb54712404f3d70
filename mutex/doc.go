// Package mutex provides a pluggable mutual exclusion abstraction, over
// several lock primitives, selected via a [Strategy].
//
// All implementations share the same contract. [Mutex.Sync] blocks until the
// lock is held, runs the work, then releases the lock, on every exit path,
// including panics. [Mutex.TrySync] attempts to take the lock without
// blocking, then runs the work REGARDLESS of whether the lock was taken,
// releasing it only if it was. The return value of TrySync reports whether
// the work ran while holding the lock. It is the caller's responsibility to
// decide if unsynchronized execution is acceptable.
//
// The available strategies are:
//
//   - [Spin], a compare-and-swap spin lock, for very short critical sections
//   - [Exclusive], wrapping [sync.Mutex], optionally reentrant
//   - [Posix], a futex-based mutex, optionally reentrant
//   - [Semaphore], a binary FIFO semaphore
//   - [Barrier], running work as a barrier on a [queue.Queue]
//
// [Default] is a reentrant [Exclusive] lock.
//
// Building with -tags=deadlock swaps the primitive behind [Exclusive] for
// [github.com/sasha-s/go-deadlock], which reports potential deadlocks.
package mutex
