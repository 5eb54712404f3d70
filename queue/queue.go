package queue

import (
	"fmt"
	"runtime"
	"time"
)

type (
	// Queue models an execution context, able to run work immediately
	// (blocking the caller) or later (without blocking the caller).
	//
	// Implementations must be pointer types, or otherwise have identity
	// semantics, as the == operator is used to compare handles, see Same.
	Queue interface {
		// Label returns the human-readable name of the queue.
		Label() string

		// IsMain reports whether the queue represents the primary queue.
		IsMain() bool

		// RunNow runs fn on the queue, blocking until it has returned. If the
		// caller is already running within the queue's own execution context,
		// fn is run inline, to avoid self-deadlock. Panics propagate.
		RunNow(fn func())

		// RunNowFlags is RunNow, with the given flags.
		RunNowFlags(flags Flags, fn func())

		// Submit schedules fn to run on the queue, without waiting.
		Submit(fn func())

		// SubmitAfter schedules fn to run on the queue, no earlier than
		// deadline, without waiting.
		SubmitAfter(deadline time.Time, fn func())

		// SubmitAfterFlags is SubmitAfter, with the given flags.
		SubmitAfterFlags(deadline time.Time, flags Flags, fn func())
	}

	// Flags modifies how a unit of work is run, relative to other work on
	// the same queue. The zero value indicates no flags.
	Flags uint8

	// Attributes indicates whether a queue runs work one at a time, or
	// concurrently.
	Attributes uint8

	// QoS models the priority class of a queue.
	//
	// Go does not expose thread priorities, so the class is used to scale the
	// default concurrency width of concurrent queues, and to label them.
	QoS uint8
)

const (
	// Barrier requests that the unit of work runs exclusively, relative to
	// all other work on the same queue.
	Barrier Flags = 1 << iota
)

const (
	// Concurrent queues may run multiple units of work at once.
	Concurrent Attributes = iota
	// Serial queues run one unit of work at a time, in submission order.
	Serial
)

const (
	// Default is the default priority class.
	Default QoS = iota
	// Background is for work the user is not aware of.
	Background
	// Utility is for long-running work, with user-visible progress.
	Utility
	// UserInitiated is for work the user is waiting on.
	UserInitiated
	// UserInteractive is for work that must complete immediately.
	UserInteractive
)

// Same reports whether a and b refer to the same queue instance.
func Same(a, b Queue) bool {
	return a == b
}

// Do runs fn via q.RunNow, returning its results. Errors returned by fn are
// not modified.
func Do[R any](q Queue, fn func() (R, error)) (R, error) {
	return DoFlags(q, 0, fn)
}

// DoFlags runs fn via q.RunNowFlags, returning its results. Errors returned
// by fn are not modified.
func DoFlags[R any](q Queue, flags Flags, fn func() (R, error)) (result R, err error) {
	q.RunNowFlags(flags, func() {
		result, err = fn()
	})
	return
}

// Seconds converts a number of seconds to a duration, truncating any
// sub-nanosecond remainder.
func Seconds(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func (x Flags) String() string {
	switch x {
	case 0:
		return `none`
	case Barrier:
		return `barrier`
	default:
		return fmt.Sprintf(`Flags(%d)`, uint8(x))
	}
}

func (x Attributes) String() string {
	switch x {
	case Concurrent:
		return `concurrent`
	case Serial:
		return `serial`
	default:
		return fmt.Sprintf(`Attributes(%d)`, uint8(x))
	}
}

func (x QoS) String() string {
	switch x {
	case Default:
		return `default`
	case Background:
		return `background`
	case Utility:
		return `utility`
	case UserInitiated:
		return `user-initiated`
	case UserInteractive:
		return `user-interactive`
	default:
		return fmt.Sprintf(`QoS(%d)`, uint8(x))
	}
}

// width is the default width of a concurrent queue, of this class.
func (x QoS) width() int {
	n := runtime.GOMAXPROCS(0)
	switch x {
	case Background:
		n /= 4
	case Utility:
		n /= 2
	}
	return max(n, 1)
}

func (x QoS) valid() bool {
	return x <= UserInteractive
}

func (x Attributes) valid() bool {
	return x <= Serial
}
