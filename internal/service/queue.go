package service

import (
	"sync"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// compactThreshold is the number of consumed slots after which the queue
// moves its pending items back to the start of the buffer.
const compactThreshold = 64

// Queue carries resolved addresses from the requester tasks to the single writer.
// Any number of goroutines may Send; exactly one goroutine is expected to receive.
// It is unbounded, so a Send never blocks on a slow or stopped writer.
type Queue struct {
	mu    sync.Mutex
	items []models.Address
	head  int
	ready chan struct{}
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Send appends addr to the queue and wakes the receiver if it is idle.
func (q *Queue) Send(addr models.Address) {
	q.mu.Lock()
	q.items = append(q.items, addr)
	q.mu.Unlock()

	q.notify()
}

// TryReceive removes and returns the oldest address, or false if the queue is empty.
func (q *Queue) TryReceive() (models.Address, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return models.Address{}, false
	}

	addr := q.items[q.head]
	q.items[q.head] = models.Address{}
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactThreshold && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	return addr, true
}

// IsEmpty reports whether no address is waiting.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// Len returns the number of waiting addresses.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items) - q.head
}

// Ready is signalled after a Send. A single signal may stand for several sends.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

func (q *Queue) notify() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
