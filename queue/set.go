package queue

import (
	"errors"
)

// Set groups the standard queues, which are intended to be created once, at
// process start, then passed to consumers. Initialize using NewSet.
type Set struct {
	Main            *Main
	Background      *Dispatch
	Utility         *Dispatch
	Default         *Dispatch
	UserInitiated   *Dispatch
	UserInteractive *Dispatch
}

// NewSet initializes the standard queues. The main queue is backed by loop,
// and the rest are concurrent, one per priority class. The options are
// applied to every queue, except WithLabel, which is ignored.
//
// Set.Close should be called when the queues are no longer needed.
func NewSet(loop Loop, opts ...Option) *Set {
	// labels must remain unique
	opts = append(opts[:len(opts):len(opts)], &queueOptionImpl{func(opts *queueOptions) error {
		opts.label = ``
		return nil
	}})
	return &Set{
		Main:            NewMain(loop, opts...),
		Background:      NewGlobal(Background, opts...),
		Utility:         NewGlobal(Utility, opts...),
		Default:         NewGlobal(Default, opts...),
		UserInitiated:   NewGlobal(UserInitiated, opts...),
		UserInteractive: NewGlobal(UserInteractive, opts...),
	}
}

// Global returns the concurrent queue for the given priority class, or nil
// if the class is invalid.
func (x *Set) Global(qos QoS) *Dispatch {
	switch qos {
	case Default:
		return x.Default
	case Background:
		return x.Background
	case Utility:
		return x.Utility
	case UserInitiated:
		return x.UserInitiated
	case UserInteractive:
		return x.UserInteractive
	default:
		return nil
	}
}

// Close closes every Dispatch queue in the set, waiting for their work to
// complete. The Main queue is unaffected, as the loop is managed by the
// caller.
func (x *Set) Close() error {
	var errs []error
	for _, q := range [...]*Dispatch{
		x.Background,
		x.Utility,
		x.Default,
		x.UserInitiated,
		x.UserInteractive,
	} {
		if q != nil {
			errs = append(errs, q.Close())
		}
	}
	return errors.Join(errs...)
}
