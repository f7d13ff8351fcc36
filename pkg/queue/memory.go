package queue

import (
	"fmt"
	"sync"
)

// ErrQueueFull is returned by Enqueue when the queue is at capacity.
type ErrQueueFull struct {
	Capacity int
}

func (e *ErrQueueFull) Error() string {
	return fmt.Sprintf("queue is full (capacity %d)", e.Capacity)
}

func IsQueueFull(err error) bool {
	_, ok := err.(*ErrQueueFull)
	return ok
}

// InMemoryQueue implements a bounded in-memory FIFO queue.
type InMemoryQueue struct {
	lock     sync.Mutex
	items    []interface{}
	capacity int
}

// NewInMemoryQueue creates a new queue holding at most capacity items.
func NewInMemoryQueue(capacity int) *InMemoryQueue {
	return &InMemoryQueue{
		items:    make([]interface{}, 0, capacity),
		capacity: capacity,
	}
}

// Enqueue adds an item to the end of the queue.
// It never blocks; a full queue rejects the item.
func (q *InMemoryQueue) Enqueue(item interface{}) error {
	q.lock.Lock()
	defer q.lock.Unlock()
	if len(q.items) >= q.capacity {
		return &ErrQueueFull{Capacity: q.capacity}
	}
	q.items = append(q.items, item)
	return nil
}

// ReadAllMessages removes and returns all pending items in FIFO order.
func (q *InMemoryQueue) ReadAllMessages() ([]interface{}, error) {
	q.lock.Lock()
	defer q.lock.Unlock()
	items := q.items
	q.items = make([]interface{}, 0, q.capacity)
	return items, nil
}

// Size returns the current size of the queue.
func (q *InMemoryQueue) Size() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.items)
}
