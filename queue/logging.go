package queue

import (
	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// reporter logs on behalf of a queue. The zero value discards everything.
type reporter struct {
	logger  *logiface.Logger[logiface.Event]
	limiter *catrate.Limiter
	label   string
}

func newReporter(label string, cfg *queueOptions) reporter {
	r := reporter{
		logger: cfg.logger,
		label:  label,
	}
	if len(cfg.panicRates) != 0 {
		r.limiter = catrate.NewLimiter(cfg.panicRates)
	}
	return r
}

// safeRun runs fn, recovering and logging any panic.
func (x *reporter) safeRun(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			x.panicked(r)
		}
	}()
	fn()
}

func (x *reporter) panicked(value any) {
	// rate limited per queue, the category is constant
	if _, ok := x.limiter.Allow(`panic`); !ok {
		return
	}
	x.logger.Err().
		Str(`queue`, x.label).
		Err(PanicError{Value: value}).
		Log(`queue: task panicked`)
}

func (x *reporter) dropped(err error) {
	x.logger.Err().
		Str(`queue`, x.label).
		Err(err).
		Log(`queue: work dropped`)
}

func (x *reporter) closed() {
	x.logger.Debug().
		Str(`queue`, x.label).
		Log(`queue: closed`)
}
