package mutex

import (
	"context"

	"golang.org/x/sync/semaphore"
)

type semaphoreLock struct {
	sem *semaphore.Weighted
}

func newSemaphoreLock() *semaphoreLock {
	return &semaphoreLock{sem: semaphore.NewWeighted(1)}
}

func (x *semaphoreLock) Lock() {
	// never fails, as the context is never canceled
	_ = x.sem.Acquire(context.Background(), 1)
}

func (x *semaphoreLock) TryLock() bool { return x.sem.TryAcquire(1) }

func (x *semaphoreLock) Unlock() { x.sem.Release(1) }
