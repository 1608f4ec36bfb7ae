package harmony

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmony-chat/harmony/gateway"
)

func queuedEvent(seq int64) *gateway.DispatchEvent {
	return &gateway.DispatchEvent{Sequence: seq, Type: "TEST"}
}

func TestQueuePreservesOrder(t *testing.T) {
	q := newEventQueue()

	for seq := int64(1); seq <= 100; seq++ {
		require.NoError(t, q.Push(queuedEvent(seq)))
	}
	assert.Equal(t, 100, q.Len())

	for seq := int64(1); seq <= 100; seq++ {
		ev, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, seq, ev.Sequence)
	}
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := newEventQueue()

	got := make(chan int64, 1)
	go func() {
		ev, ok := q.Pop()
		if ok {
			got <- ev.Sequence
		}
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, q.Push(queuedEvent(7)))

	select {
	case seq := <-got:
		assert.Equal(t, int64(7), seq)
	case <-time.After(time.Second):
		t.Fatal("pop never woke up")
	}
}

func TestQueueCloseDrainsThenEnds(t *testing.T) {
	q := newEventQueue()

	require.NoError(t, q.Push(queuedEvent(1)))
	require.NoError(t, q.Push(queuedEvent(2)))
	q.Close()

	assert.ErrorIs(t, q.Push(queuedEvent(3)), ErrQueueClosed)

	ev, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, int64(1), ev.Sequence)

	ev, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, int64(2), ev.Sequence)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestQueueCloseWakesBlockedPoppers(t *testing.T) {
	q := newEventQueue()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Pop()
		}()
	}

	time.Sleep(10 * time.Millisecond)
	q.Close()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poppers still blocked after close")
	}
}

func TestQueueCloseIsIdempotent(t *testing.T) {
	q := newEventQueue()
	q.Close()
	q.Close()
}
