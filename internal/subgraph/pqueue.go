package subgraph

import (
	"container/heap"

	"github.com/seqslice/seqslice/internal/handlegraph"
)

// traversal is an oriented node paired with its distance from the
// search origin to the node's far side.
type traversal struct {
	handle handlegraph.Handle
	dist   int64
}

// travHeap is a min-heap of traversals. Ties break on (id, strand) so
// pop order, and with it the whole extraction, is deterministic.
type travHeap []traversal

func (h travHeap) Len() int { return len(h) }

func (h travHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].handle.Less(h[j].handle)
}

func (h travHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *travHeap) Push(x any) { *h = append(*h, x.(traversal)) }

func (h *travHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// filteredQueue is a priority queue that admits each handle at most
// once across its lifetime; later pushes for an already-enqueued handle
// are silently dropped. The searches rely on this both to terminate on
// cyclic graphs and for their distance bookkeeping.
type filteredQueue struct {
	heap travHeap
	seen map[handlegraph.Handle]bool
}

func newFilteredQueue() *filteredQueue {
	return &filteredQueue{seen: make(map[handlegraph.Handle]bool)}
}

// push enqueues a traversal unless its handle has been enqueued before.
func (q *filteredQueue) push(h handlegraph.Handle, dist int64) {
	if q.seen[h] {
		return
	}
	q.seen[h] = true
	heap.Push(&q.heap, traversal{handle: h, dist: dist})
}

// pop removes and returns the nearest traversal.
func (q *filteredQueue) pop() traversal {
	return heap.Pop(&q.heap).(traversal)
}

func (q *filteredQueue) empty() bool {
	return len(q.heap) == 0
}
