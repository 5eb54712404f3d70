package queue

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed indicates that work was submitted to a closed queue.
	ErrClosed = errors.New(`queue: queue is closed`)

	// ErrLoopRejected indicates that the Loop backing a Main queue refused
	// a unit of work, e.g. because it has terminated.
	ErrLoopRejected = errors.New(`queue: loop rejected work`)

	// ErrNestedBarrier indicates that work running on a concurrent queue
	// requested a barrier on that same queue, which would wait on itself.
	ErrNestedBarrier = errors.New(`queue: barrier requested from non-barrier work on the same queue`)
)

// PanicError wraps a value recovered from a panic, raised by asynchronous
// work.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e PanicError) Error() string {
	return fmt.Sprintf(`queue: work panicked: %v`, e.Value)
}

// Unwrap returns the panic value, if it is an error.
func (e PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
