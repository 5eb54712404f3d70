package schedule

import (
	"fmt"
	"time"

	"github.com/joeycumines/go-dispatchq/queue"
)

type (
	// Descriptor is an immutable execution strategy. The zero value is
	// Absent. Use Descriptor.Equal to compare descriptors, as the == operator
	// compares deadlines by representation, rather than by instant.
	Descriptor struct {
		deadline time.Time
		queue    queue.Queue
		kind     Kind
		flags    queue.Flags
	}

	// Kind identifies the variant of a Descriptor.
	Kind uint8
)

const (
	// KindAbsent runs work inline, on the calling goroutine.
	KindAbsent Kind = iota
	// KindSync runs work via queue.Queue.RunNow.
	KindSync
	// KindAsync runs work via queue.Queue.Submit.
	KindAsync
	// KindAsyncAfter runs work via queue.Queue.SubmitAfter.
	KindAsyncAfter
	// KindAsyncAfterFlags runs work via queue.Queue.SubmitAfterFlags.
	KindAsyncAfterFlags
)

// Absent returns a Descriptor that runs work inline.
func Absent() Descriptor { return Descriptor{} }

// Sync returns a Descriptor that runs work on q, blocking. A panic will occur
// if q is nil.
func Sync(q queue.Queue) Descriptor {
	return newDescriptor(KindSync, q, time.Time{}, 0)
}

// Async returns a Descriptor that submits work to q. A panic will occur if q
// is nil.
func Async(q queue.Queue) Descriptor {
	return newDescriptor(KindAsync, q, time.Time{}, 0)
}

// AsyncAfter returns a Descriptor that submits work to q, to run no earlier
// than deadline. A panic will occur if q is nil.
func AsyncAfter(deadline time.Time, q queue.Queue) Descriptor {
	return newDescriptor(KindAsyncAfter, q, deadline, 0)
}

// AsyncAfterFlags is AsyncAfter, with the given flags.
func AsyncAfterFlags(deadline time.Time, flags queue.Flags, q queue.Queue) Descriptor {
	return newDescriptor(KindAsyncAfterFlags, q, deadline, flags)
}

func newDescriptor(kind Kind, q queue.Queue, deadline time.Time, flags queue.Flags) Descriptor {
	if q == nil {
		panic(fmt.Errorf(`schedule: nil queue for %s descriptor`, kind))
	}
	return Descriptor{
		deadline: deadline,
		queue:    q,
		kind:     kind,
		flags:    flags,
	}
}

// Fire runs work per the descriptor.
func (x Descriptor) Fire(work func()) {
	switch x.kind {
	case KindSync:
		x.queue.RunNow(work)
	case KindAsync:
		x.queue.Submit(work)
	case KindAsyncAfter:
		x.queue.SubmitAfter(x.deadline, work)
	case KindAsyncAfterFlags:
		x.queue.SubmitAfterFlags(x.deadline, x.flags, work)
	default:
		work()
	}
}

// Equal reports whether x and other are the same variant, with equal
// deadlines and flags, referencing the same queue instance.
func (x Descriptor) Equal(other Descriptor) bool {
	return x.kind == other.kind &&
		x.flags == other.flags &&
		x.deadline.Equal(other.deadline) &&
		queue.Same(x.queue, other.queue)
}

// Kind returns the variant.
func (x Descriptor) Kind() Kind { return x.kind }

// Queue returns the queue, or nil if Absent.
func (x Descriptor) Queue() queue.Queue { return x.queue }

// Deadline returns the deadline, or the zero value if the variant has none.
func (x Descriptor) Deadline() time.Time { return x.deadline }

// Flags returns the flags, or zero if the variant has none.
func (x Descriptor) Flags() queue.Flags { return x.flags }

func (x Descriptor) String() string {
	switch x.kind {
	case KindAbsent:
		return `absent`
	case KindSync, KindAsync:
		return fmt.Sprintf(`%s(%s)`, x.kind, x.queue.Label())
	case KindAsyncAfter:
		return fmt.Sprintf(`%s(%s, %s)`, x.kind, x.deadline.Format(time.RFC3339Nano), x.queue.Label())
	default:
		return fmt.Sprintf(`%s(%s, %s, %s)`, x.kind, x.deadline.Format(time.RFC3339Nano), x.flags, x.queue.Label())
	}
}

func (x Kind) String() string {
	switch x {
	case KindAbsent:
		return `absent`
	case KindSync:
		return `sync`
	case KindAsync:
		return `async`
	case KindAsyncAfter:
		return `async-after`
	case KindAsyncAfterFlags:
		return `async-after-flags`
	default:
		return fmt.Sprintf(`Kind(%d)`, uint8(x))
	}
}

// FireFunc returns x.Fire, for consumers storing the strategy as a func.
func FireFunc(x Descriptor) func(work func()) {
	return x.Fire
}
