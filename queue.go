package harmony

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/harmony-chat/harmony/gateway"
)

// eventQueue is an unbounded FIFO between the gateway worker and the
// dispatch loop. The gateway side never blocks on Push; the dispatch
// side blocks on Pop until an event arrives or the queue is closed.
type eventQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    *queue.Queue
	closed bool
}

func newEventQueue() *eventQueue {
	q := &eventQueue{buf: queue.New()}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues an event. It returns ErrQueueClosed after Close.
func (q *eventQueue) Push(ev *gateway.DispatchEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.buf.Add(ev)
	q.cond.Signal()
	return nil
}

// Pop blocks until an event is available. Events already queued are
// still delivered after Close; once drained, ok is false.
func (q *eventQueue) Pop() (ev *gateway.DispatchEvent, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.buf.Length() == 0 && !q.closed {
		q.cond.Wait()
	}

	if q.buf.Length() == 0 {
		return nil, false
	}

	return q.buf.Remove().(*gateway.DispatchEvent), true
}

// Len reports the number of queued events.
func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Length()
}

// Close stops further pushes and wakes all blocked poppers.
func (q *eventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	q.cond.Broadcast()
}
