package queue_test

import (
	"sync"
	"testing"
	"time"

	"github.com/joeycumines/go-dispatchq/queue"
	"github.com/petermattis/goid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMain_nilLoop(t *testing.T) {
	require.PanicsWithValue(t, `queue: nil loop`, func() { queue.NewMain(nil) })
}

func TestMain_RunNow(t *testing.T) {
	loop, _ := startLoop(t)
	q := queue.NewMain(loop)

	assert.Equal(t, `main`, q.Label())
	assert.True(t, q.IsMain())

	var first, second int64
	q.RunNow(func() { first = goid.Get() })
	q.RunNowFlags(queue.Barrier, func() { second = goid.Get() })
	assert.NotZero(t, first)
	assert.Equal(t, first, second)
	assert.NotEqual(t, goid.Get(), first)

	t.Run(`inline on loop`, func(t *testing.T) {
		var inner int64
		q.RunNow(func() {
			// would deadlock if not inline
			q.RunNow(func() { inner = goid.Get() })
		})
		assert.Equal(t, first, inner)
	})

	t.Run(`panic propagates`, func(t *testing.T) {
		require.PanicsWithValue(t, `main boom`, func() {
			q.RunNow(func() { panic(`main boom`) })
		})
		v, err := queue.Do(q, func() (string, error) { return `still running`, nil })
		require.NoError(t, err)
		assert.Equal(t, `still running`, v)
	})
}

func TestMain_Submit(t *testing.T) {
	var buf syncBuffer
	loop, _ := startLoop(t)
	q := queue.NewMain(loop, queue.WithLogger(newLogger(&buf)), queue.WithLabel(`ui`))
	assert.Equal(t, `ui`, q.Label())

	var (
		mu  sync.Mutex
		got []int
	)
	for i := range 50 {
		q.Submit(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	q.Submit(func() { panic(`async boom`) })

	deadline := time.Now().Add(time.Millisecond * 30)
	done := make(chan time.Time, 1)
	q.SubmitAfterFlags(deadline, queue.Barrier, func() { done <- time.Now() })

	select {
	case ranAt := <-done:
		assert.False(t, ranAt.Before(deadline))
	case <-time.After(time.Second * 5):
		t.Fatal(`timed out`)
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
	assert.Contains(t, buf.String(), `async boom`)
	assert.Contains(t, buf.String(), `"queue":"ui"`)
}

func TestMain_loopTerminated(t *testing.T) {
	var buf syncBuffer
	loop, stop := startLoop(t)
	q := queue.NewMain(loop, queue.WithLogger(newLogger(&buf)))
	q.RunNow(func() {})
	stop()

	assert.Panics(t, func() { q.RunNow(func() {}) })
	func() {
		defer func() {
			err, _ := recover().(error)
			assert.ErrorIs(t, err, queue.ErrLoopRejected)
		}()
		q.RunNow(func() {})
	}()

	q.Submit(func() { t.Error(`should not run`) })
	assert.Contains(t, buf.String(), `queue: work dropped`)
}

func TestNewSet(t *testing.T) {
	loop, _ := startLoop(t)
	set := queue.NewSet(loop, queue.WithLabel(`ignored`))

	assert.Equal(t, `main`, set.Main.Label())
	labels := map[string]struct{}{}
	for _, qos := range [...]queue.QoS{
		queue.Default,
		queue.Background,
		queue.Utility,
		queue.UserInitiated,
		queue.UserInteractive,
	} {
		q := set.Global(qos)
		require.NotNil(t, q)
		assert.Equal(t, qos, q.QoS())
		assert.Equal(t, queue.Concurrent, q.Attributes())
		labels[q.Label()] = struct{}{}
	}
	assert.Len(t, labels, 5)
	assert.Nil(t, set.Global(queue.QoS(42)))
	assert.Same(t, set.Utility, set.Global(queue.Utility))

	var ran bool
	set.Background.RunNow(func() {
		set.Main.RunNow(func() { ran = true })
	})
	assert.True(t, ran)

	require.NoError(t, set.Close())
}
