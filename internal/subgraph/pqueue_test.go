package subgraph

import (
	"testing"

	"github.com/seqslice/seqslice/internal/handlegraph"
)

// pops come out nearest first, with ties broken by id then strand
func Test_FilteredQueueOrder(t *testing.T) {
	q := newFilteredQueue()
	q.push(handlegraph.New(3, false), 7)
	q.push(handlegraph.New(1, false), 4)
	q.push(handlegraph.New(2, true), 4)
	q.push(handlegraph.New(2, false), 4)

	want := []traversal{
		{handlegraph.New(1, false), 4},
		{handlegraph.New(2, false), 4},
		{handlegraph.New(2, true), 4},
		{handlegraph.New(3, false), 7},
	}
	for i, w := range want {
		if q.empty() {
			t.Fatalf("queue empty after %d pops, want %d items", i, len(want))
		}
		if got := q.pop(); got != w {
			t.Errorf("pop %d returned %v, want %v", i, got, w)
		}
	}
	if !q.empty() {
		t.Error("queue should be empty")
	}
}

// a handle is admitted at most once; later pushes are dropped even if
// they carry a shorter distance
func Test_FilteredQueueDropsReinsertions(t *testing.T) {
	q := newFilteredQueue()
	q.push(handlegraph.New(1, false), 9)
	q.push(handlegraph.New(1, false), 2)
	q.push(handlegraph.New(1, true), 5)

	if got := q.pop(); got.dist != 5 {
		t.Errorf("first pop has distance %d, want 5", got.dist)
	}
	if got := q.pop(); got.dist != 9 {
		t.Errorf("second pop has distance %d, want 9", got.dist)
	}
	if !q.empty() {
		t.Error("reinsertion should have been dropped")
	}
}
