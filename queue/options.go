package queue

import (
	"errors"
	"time"

	"github.com/joeycumines/logiface"
)

// queueOptions holds configuration for queue creation.
type queueOptions struct {
	logger     *logiface.Logger[logiface.Event]
	panicRates map[time.Duration]int
	label      string
	width      int
}

// Option configures a queue instance.
type Option interface {
	applyQueue(*queueOptions) error
}

// queueOptionImpl implements Option.
type queueOptionImpl struct {
	applyQueueFunc func(*queueOptions) error
}

func (o *queueOptionImpl) applyQueue(opts *queueOptions) error {
	return o.applyQueueFunc(opts)
}

// WithLogger configures the logger, used to report panics in asynchronous
// work, and work dropped due to the queue being closed.
// A nil logger disables logging (the default).
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &queueOptionImpl{func(opts *queueOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithLabel overrides the label of the queue. The label must not be empty.
func WithLabel(label string) Option {
	return &queueOptionImpl{func(opts *queueOptions) error {
		if label == `` {
			return errors.New(`queue: label must not be empty`)
		}
		opts.label = label
		return nil
	}}
}

// WithWidth sets the maximum number of units of work a concurrent queue
// will run at once. It must be positive. Ignored by serial queues, and by
// Main.
func WithWidth(width int) Option {
	return &queueOptionImpl{func(opts *queueOptions) error {
		if width <= 0 {
			return errors.New(`queue: width must be positive`)
		}
		opts.width = width
		return nil
	}}
}

// WithPanicRateLimit limits how often panics in asynchronous work are
// logged, per queue, using the semantics of
// [github.com/joeycumines/go-catrate.NewLimiter]. A nil or empty map disables
// rate limiting (the default).
func WithPanicRateLimit(rates map[time.Duration]int) Option {
	return &queueOptionImpl{func(opts *queueOptions) error {
		opts.panicRates = rates
		return nil
	}}
}

// resolveQueueOptions applies Option instances to queueOptions. A panic will
// occur if any option is invalid.
func resolveQueueOptions(opts []Option) *queueOptions {
	cfg := &queueOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyQueue(cfg); err != nil {
			panic(err)
		}
	}
	return cfg
}
