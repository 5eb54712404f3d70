// Package queue standardizes access to execution contexts ("queues"), which
// run units of work either immediately, blocking the caller, or later,
// optionally after a deadline, and optionally with exclusive (barrier) access
// relative to other work on the same queue.
//
// The [Queue] interface is the capability consumed by the rest of this
// module. Two implementations are provided:
//
//   - [Main], the primary queue, backed by an externally run event loop
//     (see [github.com/joeycumines/go-eventloop]), via the [Loop] interface
//   - [Dispatch], a goroutine backed queue, either [Serial] or [Concurrent],
//     created via [NewCustom] or [NewGlobal]
//
// Handles are created explicitly, typically once at process start (see
// [NewSet]), and passed to consumers. Two handles are equal only if they are
// the same instance, see [Same].
//
// # Ordering
//
// Work submitted to a [Dispatch] queue is dispatched in submission order. A
// serial queue therefore executes work in submission order. A concurrent
// queue makes no guarantees between independent units, except that a unit
// submitted with the [Barrier] flag waits for all previously dispatched work,
// and holds back all later work until it completes.
//
// # Errors and panics
//
// Errors belong to the work. Panics raised by work passed to [Queue.RunNow]
// propagate to the caller. Panics raised by asynchronous work are recovered,
// wrapped in [PanicError], and logged, if a logger was configured via
// [WithLogger].
package queue
