package atomicbox

import (
	"fmt"

	"github.com/joeycumines/go-dispatchq/mutex"
)

type (
	// Box guards a value of type T. Instances must be initialized using New.
	Box[T any] struct {
		mu    mutex.Mutex
		value T
		read  Mode
		write Mode
	}

	// Mode is the synchronization used by Box.Read and Box.Write.
	Mode uint8
)

const (
	// Sync takes the lock, blocking until it is available.
	Sync Mode = iota
	// TrySync attempts the lock, proceeding without it if it is contended.
	TrySync
	// Async accesses the value without the lock.
	Async
)

// New initializes a new Box holding initial. A panic will occur if any
// option is invalid.
func New[T any](initial T, opts ...Option) *Box[T] {
	cfg := resolveBoxOptions(opts)
	x := &Box[T]{
		mu:    cfg.mutex,
		value: initial,
		read:  cfg.read,
		write: cfg.write,
	}
	if x.mu == nil {
		x.mu = mutex.New(cfg.strategy)
	}
	return x
}

// Read returns the current value, synchronized per the read mode.
func (x *Box[T]) Read() (value T) {
	x.access(x.read, func() { value = x.value })
	return
}

// Write replaces the current value, synchronized per the write mode.
func (x *Box[T]) Write(value T) {
	x.access(x.write, func() { x.value = value })
}

// Mutate calls fn with a pointer to the value, holding the lock. The pointer
// must not be retained.
func (x *Box[T]) Mutate(fn func(value *T)) {
	x.mu.Sync(func() { fn(&x.value) })
}

// TryMutate is Mutate, except it does not block. If the lock is contended,
// fn is called anyway, without the lock, and false is returned.
func (x *Box[T]) TryMutate(fn func(value *T)) (locked bool) {
	return x.mu.TrySync(func() { fn(&x.value) })
}

// Swap replaces the value, holding the lock, and returns the previous value.
func (x *Box[T]) Swap(value T) (old T) {
	x.mu.Sync(func() {
		old, x.value = x.value, value
	})
	return
}

// Modes returns the read and write modes.
func (x *Box[T]) Modes() (read, write Mode) {
	return x.read, x.write
}

func (x *Box[T]) access(mode Mode, fn func()) {
	switch mode {
	case Sync:
		x.mu.Sync(fn)
	case TrySync:
		x.mu.TrySync(fn)
	default:
		fn()
	}
}

// Apply calls fn with a pointer to the value of b, holding the lock, and
// returns its results. Errors returned by fn are not modified.
func Apply[T, R any](b *Box[T], fn func(value *T) (R, error)) (R, error) {
	return mutex.Do(b.mu, func() (R, error) { return fn(&b.value) })
}

// TryApply is Apply, with the semantics of Box.TryMutate. Whether the lock
// was held is not reported.
func TryApply[T, R any](b *Box[T], fn func(value *T) (R, error)) (R, error) {
	return mutex.TryDo(b.mu, func() (R, error) { return fn(&b.value) })
}

func (x Mode) String() string {
	switch x {
	case Sync:
		return `sync`
	case TrySync:
		return `try-sync`
	case Async:
		return `async`
	default:
		return fmt.Sprintf(`Mode(%d)`, uint8(x))
	}
}

func (x Mode) valid() bool {
	return x <= Async
}
