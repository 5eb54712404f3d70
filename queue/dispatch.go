package queue

import (
	"context"
	"sync"
	"time"

	"github.com/petermattis/goid"
	"golang.org/x/sync/semaphore"
)

type (
	// Dispatch is a goroutine backed Queue. Instances must be initialized
	// using NewCustom or NewGlobal, and should be closed via Dispatch.Close.
	//
	// A single dispatcher goroutine consumes submitted work in order. Each
	// unit acquires one slot of a weighted semaphore, sized to the width of
	// the queue, while a barrier unit acquires every slot.
	Dispatch struct {
		// betteralign:ignore

		reporter reporter
		qos      QoS
		attrs    Attributes
		width    int64
		sem      *semaphore.Weighted
		running  sync.Map // goroutine id -> Flags of running units
		wake     chan struct{}
		done     chan struct{}
		mu       sync.Mutex
		pending  []unit
		delayed  int // timers not yet fired
		closed   bool
	}

	unit struct {
		fn    func()
		flags Flags
	}
)

var _ Queue = (*Dispatch)(nil)

// NewCustom initializes a new Dispatch queue, with the given label, priority
// class, and attributes. A panic will occur if any argument or option is
// invalid.
func NewCustom(label string, qos QoS, attrs Attributes, opts ...Option) *Dispatch {
	if label == `` {
		panic(`queue: label must not be empty`)
	}
	if !qos.valid() {
		panic(`queue: invalid qos`)
	}
	if !attrs.valid() {
		panic(`queue: invalid attributes`)
	}

	cfg := resolveQueueOptions(opts)
	if cfg.label != `` {
		label = cfg.label
	}

	var width int64 = 1
	if attrs == Concurrent {
		if cfg.width > 0 {
			width = int64(cfg.width)
		} else {
			width = int64(qos.width())
		}
	}

	x := &Dispatch{
		reporter: newReporter(label, cfg),
		qos:      qos,
		attrs:    attrs,
		width:    width,
		sem:      semaphore.NewWeighted(width),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	go x.run()

	return x
}

// NewGlobal initializes a new concurrent Dispatch queue, labelled after the
// given priority class.
func NewGlobal(qos QoS, opts ...Option) *Dispatch {
	return NewCustom(`global.`+qos.String(), qos, Concurrent, opts...)
}

// Label returns the label of the queue.
func (x *Dispatch) Label() string { return x.reporter.label }

// IsMain always returns false.
func (x *Dispatch) IsMain() bool { return false }

// QoS returns the priority class of the queue.
func (x *Dispatch) QoS() QoS { return x.qos }

// Attributes returns the attributes of the queue.
func (x *Dispatch) Attributes() Attributes { return x.attrs }

// Width returns the maximum number of units that may run at once.
func (x *Dispatch) Width() int { return int(x.width) }

// RunNow runs fn on the queue, and waits for it to complete. If called from
// work running on this queue, fn is run inline. A panic will occur if the
// queue is closed, see ErrClosed.
//
// Nested calls may only request the Barrier flag if the queue is serial, or
// the calling work already holds the barrier, see ErrNestedBarrier.
func (x *Dispatch) RunNow(fn func()) {
	x.RunNowFlags(0, fn)
}

// RunNowFlags is RunNow, with the given flags.
func (x *Dispatch) RunNowFlags(flags Flags, fn func()) {
	if current, ok := x.current(); ok {
		// the caller's unit holds a slot, so waiting for the barrier would
		// never finish
		if flags&Barrier != 0 && x.width != 1 && current&Barrier == 0 {
			panic(ErrNestedBarrier)
		}
		fn()
		return
	}

	var (
		done      = make(chan struct{})
		recovered any
		panicked  = true
	)

	if !x.enqueue(unit{flags: flags, fn: func() {
		defer close(done)
		defer func() {
			if panicked {
				recovered = recover()
			}
		}()
		fn()
		panicked = false
	}}) {
		panic(ErrClosed)
	}

	<-done

	if panicked {
		panic(recovered)
	}
}

// Submit schedules fn to run on the queue. If the queue is closed, fn is
// dropped, and an error logged.
func (x *Dispatch) Submit(fn func()) {
	x.SubmitAfterFlags(time.Time{}, 0, fn)
}

// SubmitAfter schedules fn to run on the queue, no earlier than deadline.
func (x *Dispatch) SubmitAfter(deadline time.Time, fn func()) {
	x.SubmitAfterFlags(deadline, 0, fn)
}

// SubmitAfterFlags schedules fn to run on the queue, no earlier than
// deadline, with the given flags. The zero deadline, or any deadline that has
// already passed, schedules fn immediately.
func (x *Dispatch) SubmitAfterFlags(deadline time.Time, flags Flags, fn func()) {
	u := unit{flags: flags, fn: func() { x.reporter.safeRun(fn) }}

	var delay time.Duration
	if !deadline.IsZero() {
		delay = time.Until(deadline)
	}
	if delay <= 0 {
		if !x.enqueue(u) {
			x.reporter.dropped(ErrClosed)
		}
		return
	}

	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		x.reporter.dropped(ErrClosed)
		return
	}
	x.delayed++
	x.mu.Unlock()

	time.AfterFunc(delay, func() {
		x.mu.Lock()
		x.delayed--
		x.pending = append(x.pending, u)
		x.mu.Unlock()
		x.signal()
	})
}

// Close prevents further work from being submitted, then waits for all
// already submitted work, including work scheduled after a deadline, to
// complete. Subsequent calls have no effect.
//
// A panic will occur if called from work running on the queue.
func (x *Dispatch) Close() error {
	if _, ok := x.current(); ok {
		panic(`queue: close called from work running on the queue`)
	}
	x.mu.Lock()
	if !x.closed {
		x.closed = true
		x.mu.Unlock()
		x.signal()
		<-x.done
		x.reporter.closed()
		return nil
	}
	x.mu.Unlock()
	<-x.done
	return nil
}

func (x *Dispatch) enqueue(u unit) bool {
	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		return false
	}
	x.pending = append(x.pending, u)
	x.mu.Unlock()
	x.signal()
	return true
}

func (x *Dispatch) signal() {
	select {
	case x.wake <- struct{}{}:
	default:
	}
}

// current returns the flags of the unit the caller is running, if the
// caller is running work on this queue.
func (x *Dispatch) current() (Flags, bool) {
	v, ok := x.running.Load(goid.Get())
	if !ok {
		return 0, false
	}
	return v.(Flags), true
}

func (x *Dispatch) run() {
	defer close(x.done)

	for {
		x.mu.Lock()
		batch := x.pending
		x.pending = nil
		exit := len(batch) == 0 && x.closed && x.delayed == 0
		x.mu.Unlock()

		if exit {
			// wait for everything in-flight
			_ = x.sem.Acquire(context.Background(), x.width)
			x.sem.Release(x.width)
			return
		}

		if len(batch) == 0 {
			<-x.wake
			continue
		}

		for i := range batch {
			x.dispatch(batch[i])
			batch[i] = unit{}
		}
	}
}

func (x *Dispatch) dispatch(u unit) {
	var n int64 = 1
	if u.flags&Barrier != 0 {
		n = x.width
	}

	// never fails, as the context is never canceled
	_ = x.sem.Acquire(context.Background(), n)

	go func() {
		id := goid.Get()
		x.running.Store(id, u.flags)
		defer func() {
			x.running.Delete(id)
			x.sem.Release(n)
		}()
		u.fn()
	}()
}
