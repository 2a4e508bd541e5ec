// Package frontier implements the priority queue that orders search
// expansion: entries are keyed by (Cost, Seq) and compared lexicographically.
//
// Seq is assigned by Push from a monotonically increasing counter, so two
// entries with equal cost always pop in insertion order. The payload never
// takes part in ordering, which keeps expansion order reproducible no matter
// what the payload is or where it lives in memory.
//
// The queue does not deduplicate: the same payload may be pushed several
// times with different costs. Callers that need "is this item open" keep
// their own membership set and skip stale entries when they pop them.
//
// Complexity: Push and PopMin are O(log n); Peek, Len and IsEmpty are O(1).
package frontier

import "container/heap"

// Entry is one frontier element.
type Entry[T any] struct {
	Cost int    // tentative cost of reaching Item
	Seq  uint64 // insertion sequence; first push is 0
	Item T
}

// Less orders entries by cost, then by insertion sequence.
func (e Entry[T]) Less(o Entry[T]) bool {
	if e.Cost != o.Cost {
		return e.Cost < o.Cost
	}
	return e.Seq < o.Seq
}

// Queue is a min-priority queue of Entry values. The zero value is ready
// to use. Queue is not safe for concurrent use.
type Queue[T any] struct {
	h    entryHeap[T]
	next uint64
}

// New returns an empty queue with room for capacity entries.
func New[T any](capacity int) *Queue[T] {
	return &Queue[T]{h: make(entryHeap[T], 0, capacity)}
}

// Push inserts item with the given cost and returns the sequence number it
// was assigned.
func (q *Queue[T]) Push(cost int, item T) uint64 {
	seq := q.next
	q.next++
	heap.Push(&q.h, Entry[T]{Cost: cost, Seq: seq, Item: item})
	return seq
}

// PopMin removes and returns the lowest (Cost, Seq) entry.
// ok is false when the queue is empty.
func (q *Queue[T]) PopMin() (e Entry[T], ok bool) {
	if len(q.h) == 0 {
		return e, false
	}
	return heap.Pop(&q.h).(Entry[T]), true
}

// Peek returns the lowest entry without removing it.
func (q *Queue[T]) Peek() (e Entry[T], ok bool) {
	if len(q.h) == 0 {
		return e, false
	}
	return q.h[0], true
}

// IsEmpty reports whether the queue holds no entries.
func (q *Queue[T]) IsEmpty() bool { return len(q.h) == 0 }

// Len returns the number of entries, stale duplicates included.
func (q *Queue[T]) Len() int { return len(q.h) }

// Pushed returns how many entries were ever pushed.
func (q *Queue[T]) Pushed() uint64 { return q.next }

// entryHeap adapts a slice of entries to container/heap.
type entryHeap[T any] []Entry[T]

func (h entryHeap[T]) Len() int           { return len(h) }
func (h entryHeap[T]) Less(i, j int) bool { return h[i].Less(h[j]) }
func (h entryHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap[T]) Push(x any) { *h = append(*h, x.(Entry[T])) }

func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	var zero Entry[T]
	old[n-1] = zero // drop the payload reference
	*h = old[:n-1]
	return e
}
