// Package atomicbox implements Box, a generic container guarding a single
// value with a [mutex.Mutex], with configurable synchronization for plain
// reads and writes.
//
// Reads and writes each use a [Mode]. [Sync] (the default, for both) takes
// the lock, blocking. [TrySync] attempts the lock, and proceeds unsynchronized
// if it is contended. [Async] skips the lock entirely. Only Sync reads and
// writes are guaranteed to be free of data races, the other modes trade
// safety for latency, and are intended for values where a torn or stale
// access is tolerable.
//
// Read-modify-write operations, [Box.Mutate] and [Box.Swap], always take the
// lock. [Box.TryMutate] does not block, and runs unsynchronized under
// contention, reporting whether it held the lock.
package atomicbox
