package mutex

import (
	"github.com/joeycumines/go-dispatchq/queue"
)

type barrierMutex struct {
	queue queue.Queue
}

var _ Mutex = (*barrierMutex)(nil)

func (x *barrierMutex) Sync(work func()) {
	x.queue.RunNowFlags(queue.Barrier, work)
}

func (x *barrierMutex) TrySync(work func()) bool {
	x.queue.RunNowFlags(queue.Barrier, work)
	return true
}
