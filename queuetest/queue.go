package queuetest

import (
	"fmt"
	"sync"
	"time"

	"github.com/joeycumines/go-dispatchq/queue"
)

type (
	// Queue is a fake queue.Queue, which records every call, and captures
	// asynchronous work, to be run manually via RunPending.
	//
	// RunNow and RunNowFlags only run work if FireSync is set. Configure
	// fields before use.
	Queue struct {
		// Name is returned by Label.
		Name string
		// Main is returned by IsMain.
		Main bool
		// FireSync enables running work passed to RunNow and RunNowFlags.
		FireSync bool

		mu      sync.Mutex
		calls   []Call
		pending []func()
	}

	// Call records a single call to a Queue.
	Call struct {
		Deadline time.Time
		Method   Method
		Flags    queue.Flags
	}

	// Method identifies a method of queue.Queue.
	Method uint8
)

const (
	_ Method = iota
	// MethodRunNow is queue.Queue.RunNow.
	MethodRunNow
	// MethodRunNowFlags is queue.Queue.RunNowFlags.
	MethodRunNowFlags
	// MethodSubmit is queue.Queue.Submit.
	MethodSubmit
	// MethodSubmitAfter is queue.Queue.SubmitAfter.
	MethodSubmitAfter
	// MethodSubmitAfterFlags is queue.Queue.SubmitAfterFlags.
	MethodSubmitAfterFlags
)

var _ queue.Queue = (*Queue)(nil)

// Label returns Name.
func (x *Queue) Label() string { return x.Name }

// IsMain returns Main.
func (x *Queue) IsMain() bool { return x.Main }

// RunNow records the call, then runs fn if FireSync is set.
func (x *Queue) RunNow(fn func()) {
	x.record(Call{Method: MethodRunNow})
	if x.FireSync {
		fn()
	}
}

// RunNowFlags records the call, then runs fn if FireSync is set.
func (x *Queue) RunNowFlags(flags queue.Flags, fn func()) {
	x.record(Call{Method: MethodRunNowFlags, Flags: flags})
	if x.FireSync {
		fn()
	}
}

// Submit records the call, and captures fn.
func (x *Queue) Submit(fn func()) {
	x.record(Call{Method: MethodSubmit}, fn)
}

// SubmitAfter records the call, and captures fn.
func (x *Queue) SubmitAfter(deadline time.Time, fn func()) {
	x.record(Call{Method: MethodSubmitAfter, Deadline: deadline}, fn)
}

// SubmitAfterFlags records the call, and captures fn.
func (x *Queue) SubmitAfterFlags(deadline time.Time, flags queue.Flags, fn func()) {
	x.record(Call{Method: MethodSubmitAfterFlags, Deadline: deadline, Flags: flags}, fn)
}

// Calls returns a copy of every call recorded so far.
func (x *Queue) Calls() []Call {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]Call(nil), x.calls...)
}

// Pending returns the number of captured, not yet run, units of work.
func (x *Queue) Pending() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.pending)
}

// RunPending runs captured work in submission order, including work
// submitted while running, until none remains. Deadlines are ignored. It
// returns the number of units run.
func (x *Queue) RunPending() (n int) {
	for {
		x.mu.Lock()
		if len(x.pending) == 0 {
			x.mu.Unlock()
			return
		}
		fn := x.pending[0]
		x.pending[0] = nil
		x.pending = x.pending[1:]
		x.mu.Unlock()

		fn()
		n++
	}
}

// Reset discards recorded calls and pending work.
func (x *Queue) Reset() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.calls = nil
	x.pending = nil
}

func (x *Queue) record(call Call, pending ...func()) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.calls = append(x.calls, call)
	x.pending = append(x.pending, pending...)
}

// String returns the method name.
func (x Method) String() string {
	switch x {
	case MethodRunNow:
		return `RunNow`
	case MethodRunNowFlags:
		return `RunNowFlags`
	case MethodSubmit:
		return `Submit`
	case MethodSubmitAfter:
		return `SubmitAfter`
	case MethodSubmitAfterFlags:
		return `SubmitAfterFlags`
	default:
		return fmt.Sprintf(`Method(%d)`, uint8(x))
	}
}
