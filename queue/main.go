package queue

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
)

type (
	// Loop is the interface required of the event loop backing a Main
	// queue. It is satisfied by *eventloop.Loop, from
	// [github.com/joeycumines/go-eventloop].
	Loop interface {
		// Submit submits a task for execution on the loop goroutine.
		Submit(func()) error
	}

	// Main is the primary Queue, running all work on the goroutine of an
	// externally managed Loop. Instances must be initialized using NewMain.
	//
	// The lifecycle of the loop (Run, Shutdown) is the responsibility of the
	// caller. Work submitted after the loop has terminated is dropped, and
	// logged.
	Main struct {
		loop     Loop
		reporter reporter
		// goroutine id of the loop, learned from work as it runs
		loopID atomic.Int64
	}
)

var _ Queue = (*Main)(nil)

// NewMain initializes a new Main queue, backed by the given loop, which may
// or may not be running yet. A panic will occur if loop is nil, rejects
// work, or any option is invalid.
func NewMain(loop Loop, opts ...Option) *Main {
	if loop == nil {
		panic(`queue: nil loop`)
	}

	cfg := resolveQueueOptions(opts)
	label := cfg.label
	if label == `` {
		label = `main`
	}

	x := &Main{
		loop:     loop,
		reporter: newReporter(label, cfg),
	}

	// identify the loop goroutine as early as possible
	if err := loop.Submit(x.mark); err != nil {
		panic(fmt.Errorf(`%w: %w`, ErrLoopRejected, err))
	}

	return x
}

// Label returns the label of the queue.
func (x *Main) Label() string { return x.reporter.label }

// IsMain always returns true.
func (x *Main) IsMain() bool { return true }

// RunNow runs fn on the loop goroutine, and waits for it to complete. If
// called from the loop goroutine, fn is run inline. A panic will occur if the
// loop rejects fn, see ErrLoopRejected.
func (x *Main) RunNow(fn func()) {
	x.RunNowFlags(0, fn)
}

// RunNowFlags is RunNow. The flags are ignored, as the loop only ever runs a
// single unit of work at a time.
func (x *Main) RunNowFlags(_ Flags, fn func()) {
	if x.isCurrent() {
		fn()
		return
	}

	var (
		done      = make(chan struct{})
		recovered any
		panicked  = true
	)

	if err := x.loop.Submit(func() {
		defer close(done)
		defer func() {
			if panicked {
				recovered = recover()
			}
		}()
		x.mark()
		fn()
		panicked = false
	}); err != nil {
		panic(fmt.Errorf(`%w: %w`, ErrLoopRejected, err))
	}

	<-done

	if panicked {
		panic(recovered)
	}
}

// Submit schedules fn to run on the loop goroutine.
func (x *Main) Submit(fn func()) {
	if err := x.loop.Submit(func() {
		x.mark()
		x.reporter.safeRun(fn)
	}); err != nil {
		x.reporter.dropped(fmt.Errorf(`%w: %w`, ErrLoopRejected, err))
	}
}

// SubmitAfter schedules fn to run on the loop goroutine, no earlier than
// deadline.
func (x *Main) SubmitAfter(deadline time.Time, fn func()) {
	x.SubmitAfterFlags(deadline, 0, fn)
}

// SubmitAfterFlags is SubmitAfter. The flags are ignored.
func (x *Main) SubmitAfterFlags(deadline time.Time, _ Flags, fn func()) {
	delay := time.Until(deadline)
	if deadline.IsZero() || delay <= 0 {
		x.Submit(fn)
		return
	}
	time.AfterFunc(delay, func() { x.Submit(fn) })
}

func (x *Main) mark() {
	x.loopID.Store(goid.Get())
}

func (x *Main) isCurrent() bool {
	id := x.loopID.Load()
	return id != 0 && id == goid.Get()
}
