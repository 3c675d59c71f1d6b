// Package pqueue provides an indexed binary min-heap.
//
// Every item in the queue is tracked by an item→slot map, so membership tests
// are O(1) and re-keying an item already in the queue is O(log n) without
// ever holding duplicate entries.
package pqueue

import (
	"container/heap"
	"errors"
)

// ErrFull is returned by Insert when the queue is at capacity.
var ErrFull = errors.New("priority queue is full")

// Queue is a fixed-capacity min-heap ordered by a caller-supplied less func.
// Items must be comparable; pointers are the usual choice.
type Queue[T comparable] struct {
	h        itemHeap[T]
	capacity int
}

// New creates an empty queue holding at most capacity items.
// less(a, b) reports whether a must be extracted before b.
func New[T comparable](capacity int, less func(a, b T) bool) *Queue[T] {
	return &Queue[T]{
		h: itemHeap[T]{
			items: make([]T, 0, capacity),
			index: make(map[T]int, capacity),
			less:  less,
		},
		capacity: capacity,
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.h.items) }

// Cap returns the fixed capacity.
func (q *Queue[T]) Cap() int { return q.capacity }

// Insert adds item and sifts it up. If item is already queued its position
// is re-established instead, as UpdateKey would.
func (q *Queue[T]) Insert(item T) error {
	if i, ok := q.h.index[item]; ok {
		heap.Fix(&q.h, i)
		return nil
	}
	if len(q.h.items) >= q.capacity {
		return ErrFull
	}
	heap.Push(&q.h, item)
	return nil
}

// ExtractMin removes and returns the best item. ok is false if the queue is empty.
func (q *Queue[T]) ExtractMin() (item T, ok bool) {
	if len(q.h.items) == 0 {
		return item, false
	}
	return heap.Pop(&q.h).(T), true
}

// Peek returns the best item without removing it.
func (q *Queue[T]) Peek() (item T, ok bool) {
	if len(q.h.items) == 0 {
		return item, false
	}
	return q.h.items[0], true
}

// Contains reports whether item is queued.
func (q *Queue[T]) Contains(item T) bool {
	_, ok := q.h.index[item]
	return ok
}

// UpdateKey restores heap order after item's key changed in either direction.
// Returns false if item is not queued.
func (q *Queue[T]) UpdateKey(item T) bool {
	i, ok := q.h.index[item]
	if !ok {
		return false
	}
	heap.Fix(&q.h, i)
	return true
}

// Remove deletes item from the queue. Returns false if item is not queued.
func (q *Queue[T]) Remove(item T) bool {
	i, ok := q.h.index[item]
	if !ok {
		return false
	}
	heap.Remove(&q.h, i)
	return true
}

// Reset empties the queue, keeping its storage.
func (q *Queue[T]) Reset() {
	var zero T
	for i := range q.h.items {
		q.h.items[i] = zero
	}
	q.h.items = q.h.items[:0]
	clear(q.h.index)
}

// itemHeap implements container/heap and keeps index in sync on every swap.
type itemHeap[T comparable] struct {
	items []T
	index map[T]int
	less  func(a, b T) bool
}

func (h *itemHeap[T]) Len() int           { return len(h.items) }
func (h *itemHeap[T]) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }
func (h *itemHeap[T]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.index[h.items[i]] = i
	h.index[h.items[j]] = j
}

func (h *itemHeap[T]) Push(x any) {
	item := x.(T)
	h.index[item] = len(h.items)
	h.items = append(h.items, item)
}

func (h *itemHeap[T]) Pop() any {
	var zero T
	n := len(h.items)
	item := h.items[n-1]
	h.items[n-1] = zero // GC
	h.items = h.items[:n-1]
	delete(h.index, item)
	return item
}
