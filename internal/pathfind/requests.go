package pathfind

import (
	"time"

	"gopkg.in/eapache/queue.v1"

	"github.com/udisondev/gridpath/internal/geo"
)

// RequestID identifies an asynchronous path request.
type RequestID uint64

// Callback receives the result of an asynchronous request exactly once.
type Callback func(waypoints []geo.Vec2, ok bool)

// PathRequest is a queued asynchronous query.
type PathRequest struct {
	ID          RequestID
	Start, Goal geo.Vec2
	OnComplete  Callback
	SubmittedAt time.Time
}

// RequestQueue is an unbounded FIFO of path requests with cancellation.
// Cancelled requests stay in the ring buffer until dequeued and are then
// skipped.
type RequestQueue struct {
	fifo    *queue.Queue
	pending map[RequestID]struct{}
	nextID  RequestID
}

// NewRequestQueue creates an empty queue.
func NewRequestQueue() *RequestQueue {
	return &RequestQueue{
		fifo:    queue.New(),
		pending: make(map[RequestID]struct{}),
	}
}

// Enqueue appends a request and returns its id. Ids start at 1.
func (q *RequestQueue) Enqueue(start, goal geo.Vec2, cb Callback, now time.Time) RequestID {
	q.nextID++
	req := &PathRequest{
		ID:          q.nextID,
		Start:       start,
		Goal:        goal,
		OnComplete:  cb,
		SubmittedAt: now,
	}
	q.fifo.Add(req)
	q.pending[req.ID] = struct{}{}
	return req.ID
}

// Cancel voids a request that has not been dequeued yet.
func (q *RequestQueue) Cancel(id RequestID) bool {
	if _, ok := q.pending[id]; !ok {
		return false
	}
	delete(q.pending, id)
	return true
}

// Dequeue removes up to limit live requests in submission order.
// Cancelled requests are discarded without counting against limit.
func (q *RequestQueue) Dequeue(limit int) []*PathRequest {
	var out []*PathRequest
	for len(out) < limit && q.fifo.Length() > 0 {
		req := q.fifo.Remove().(*PathRequest)
		if _, ok := q.pending[req.ID]; !ok {
			continue
		}
		delete(q.pending, req.ID)
		out = append(out, req)
	}
	return out
}

// Len returns the number of live (not cancelled) requests.
func (q *RequestQueue) Len() int { return len(q.pending) }
