package lib

import (
	"sync"
)

// Queue is thread-safe and should be held as a pointer. Producers Enqueue from any
// goroutine, a single consumer waits on Ready and then Drains everything queued so far.
type Queue[T any] struct {
	items []T
	mu    *sync.Mutex
	ready chan struct{}
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		items: []T{},
		mu:    &sync.Mutex{},
		ready: make(chan struct{}, 1),
	}
}

func (q *Queue[T]) Enqueue(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	// One pending wakeup is enough, the consumer drains everything.
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Dequeue pops from the front of the queue (FIFO).
func (q *Queue[T]) Dequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}

	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Drain removes and returns every queued item in FIFO order.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = []T{}
	return items
}

// Ready fires at least once after each Enqueue.
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}

func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
