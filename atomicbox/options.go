package atomicbox

import (
	"errors"
	"fmt"

	"github.com/joeycumines/go-dispatchq/mutex"
)

// boxOptions holds configuration for Box creation.
type boxOptions struct {
	mutex    mutex.Mutex
	strategy mutex.Strategy
	read     Mode
	write    Mode
}

// Option configures a Box.
type Option interface {
	applyBox(*boxOptions) error
}

type boxOptionImpl struct {
	applyBoxFunc func(*boxOptions) error
}

func (o *boxOptionImpl) applyBox(opts *boxOptions) error {
	return o.applyBoxFunc(opts)
}

// WithStrategy sets the strategy of the lock. Defaults to mutex.Default.
// Ignored if WithMutex is used.
func WithStrategy(strategy mutex.Strategy) Option {
	return &boxOptionImpl{func(opts *boxOptions) error {
		opts.strategy = strategy
		return nil
	}}
}

// WithMutex uses the given lock, which may be shared with other boxes, or be
// a test double.
func WithMutex(m mutex.Mutex) Option {
	return &boxOptionImpl{func(opts *boxOptions) error {
		if m == nil {
			return errors.New(`atomicbox: nil mutex`)
		}
		opts.mutex = m
		return nil
	}}
}

// WithRead sets the read mode. Defaults to Sync.
func WithRead(mode Mode) Option {
	return &boxOptionImpl{func(opts *boxOptions) error {
		if !mode.valid() {
			return fmt.Errorf(`atomicbox: invalid read mode: %s`, mode)
		}
		opts.read = mode
		return nil
	}}
}

// WithWrite sets the write mode. Defaults to Sync.
func WithWrite(mode Mode) Option {
	return &boxOptionImpl{func(opts *boxOptions) error {
		if !mode.valid() {
			return fmt.Errorf(`atomicbox: invalid write mode: %s`, mode)
		}
		opts.write = mode
		return nil
	}}
}

// WithModes is WithRead and WithWrite.
func WithModes(read, write Mode) Option {
	r, w := WithRead(read), WithWrite(write)
	return &boxOptionImpl{func(opts *boxOptions) error {
		return errors.Join(r.applyBox(opts), w.applyBox(opts))
	}}
}

func resolveBoxOptions(opts []Option) *boxOptions {
	cfg := &boxOptions{
		strategy: mutex.Default(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyBox(cfg); err != nil {
			panic(err)
		}
	}
	return cfg
}
