package schedule_test

import (
	"sync"
	"testing"
	"time"

	"github.com/joeycumines/go-dispatchq/queue"
	"github.com/joeycumines/go-dispatchq/queuetest"
	"github.com/joeycumines/go-dispatchq/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsent_Fire(t *testing.T) {
	var zero schedule.Descriptor
	for _, d := range [...]schedule.Descriptor{schedule.Absent(), zero} {
		var called bool
		d.Fire(func() { called = true })
		assert.True(t, called)
		assert.Equal(t, schedule.KindAbsent, d.Kind())
		assert.Nil(t, d.Queue())
	}
}

func TestDescriptor_Fire(t *testing.T) {
	deadline := time.Now().Add(time.Second)

	for _, tc := range [...]struct {
		name      string
		build     func(q queue.Queue) schedule.Descriptor
		wantCall  queuetest.Call
		wantAsync bool
	}{
		{
			name:     `sync`,
			build:    schedule.Sync,
			wantCall: queuetest.Call{Method: queuetest.MethodRunNow},
		},
		{
			name:      `async`,
			build:     schedule.Async,
			wantCall:  queuetest.Call{Method: queuetest.MethodSubmit},
			wantAsync: true,
		},
		{
			name:      `async after`,
			build:     func(q queue.Queue) schedule.Descriptor { return schedule.AsyncAfter(deadline, q) },
			wantCall:  queuetest.Call{Method: queuetest.MethodSubmitAfter, Deadline: deadline},
			wantAsync: true,
		},
		{
			name:      `async after flags`,
			build:     func(q queue.Queue) schedule.Descriptor { return schedule.AsyncAfterFlags(deadline, queue.Barrier, q) },
			wantCall:  queuetest.Call{Method: queuetest.MethodSubmitAfterFlags, Deadline: deadline, Flags: queue.Barrier},
			wantAsync: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			q := &queuetest.Queue{FireSync: true}
			d := tc.build(q)

			var called bool
			d.Fire(func() { called = true })

			assert.Equal(t, []queuetest.Call{tc.wantCall}, q.Calls())
			if tc.wantAsync {
				assert.False(t, called, `should not run until the queue runs it`)
				assert.Equal(t, 1, q.RunPending())
			}
			assert.True(t, called)
		})
	}
}

func TestDescriptor_Fire_dispatchQueue(t *testing.T) {
	q := queue.NewCustom(`test.serial`, queue.Default, queue.Serial)
	defer q.Close()

	var (
		mu  sync.Mutex
		log []string
	)
	record := func(s string) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			log = append(log, s)
		}
	}

	async := schedule.Async(q)
	async.Fire(func() {
		time.Sleep(time.Millisecond * 20)
		record(`A`)()
	})
	async.Fire(record(`B`))
	schedule.Sync(q).Fire(record(`C`))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{`A`, `B`, `C`}, log)
}

func TestDescriptor_Equal(t *testing.T) {
	a := &queuetest.Queue{Name: `same`}
	b := &queuetest.Queue{Name: `same`}
	deadline := time.Now().Add(time.Minute)

	equal := [...][2]schedule.Descriptor{
		{schedule.Absent(), schedule.Absent()},
		{schedule.Sync(a), schedule.Sync(a)},
		{schedule.Async(a), schedule.Async(a)},
		{schedule.AsyncAfter(deadline, a), schedule.AsyncAfter(deadline, a)},
		// same instant, different representation
		{schedule.AsyncAfter(deadline, a), schedule.AsyncAfter(deadline.UTC().Round(0), a)},
		{schedule.AsyncAfterFlags(deadline, queue.Barrier, a), schedule.AsyncAfterFlags(deadline, queue.Barrier, a)},
	}
	for i, pair := range equal {
		assert.True(t, pair[0].Equal(pair[1]), `equal case %d: %s != %s`, i, pair[0], pair[1])
		assert.True(t, pair[1].Equal(pair[0]), `equal case %d (reversed)`, i)
	}

	notEqual := [...][2]schedule.Descriptor{
		{schedule.Absent(), schedule.Async(a)},
		{schedule.Sync(a), schedule.Async(a)},
		// identically configured queues are still different queues
		{schedule.Sync(a), schedule.Sync(b)},
		{schedule.Async(a), schedule.Async(b)},
		{schedule.AsyncAfter(deadline, a), schedule.AsyncAfter(deadline.Add(time.Nanosecond), a)},
		{schedule.AsyncAfter(deadline, a), schedule.AsyncAfter(deadline, b)},
		{schedule.AsyncAfter(deadline, a), schedule.AsyncAfterFlags(deadline, 0, a)},
		{schedule.AsyncAfterFlags(deadline, queue.Barrier, a), schedule.AsyncAfterFlags(deadline, 0, a)},
	}
	for i, pair := range notEqual {
		assert.False(t, pair[0].Equal(pair[1]), `not equal case %d: %s == %s`, i, pair[0], pair[1])
		assert.False(t, pair[1].Equal(pair[0]), `not equal case %d (reversed)`, i)
	}
}

func TestDescriptor_nilQueue(t *testing.T) {
	require.Panics(t, func() { schedule.Sync(nil) })
	require.Panics(t, func() { schedule.Async(nil) })
	require.Panics(t, func() { schedule.AsyncAfter(time.Now(), nil) })
	require.Panics(t, func() { schedule.AsyncAfterFlags(time.Now(), queue.Barrier, nil) })
}

func TestDescriptor_accessors(t *testing.T) {
	q := &queuetest.Queue{Name: `q`}
	deadline := time.Date(2020, 1, 2, 3, 4, 5, 6, time.UTC)
	d := schedule.AsyncAfterFlags(deadline, queue.Barrier, q)

	assert.Equal(t, schedule.KindAsyncAfterFlags, d.Kind())
	assert.Same(t, q, d.Queue())
	assert.Equal(t, deadline, d.Deadline())
	assert.Equal(t, queue.Barrier, d.Flags())
	assert.Equal(t, `async-after-flags(2020-01-02T03:04:05.000000006Z, barrier, q)`, d.String())
	assert.Equal(t, `async-after(2020-01-02T03:04:05.000000006Z, q)`, schedule.AsyncAfter(deadline, q).String())
	assert.Equal(t, `sync(q)`, schedule.Sync(q).String())
	assert.Equal(t, `absent`, schedule.Absent().String())
	assert.Equal(t, `Kind(9)`, schedule.Kind(9).String())
}

func TestFireFunc(t *testing.T) {
	q := &queuetest.Queue{}
	fire := schedule.FireFunc(schedule.Async(q))
	var called bool
	fire(func() { called = true })
	assert.False(t, called)
	q.RunPending()
	assert.True(t, called)
}
