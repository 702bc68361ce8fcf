package toposort

import (
	"testing"

	"github.com/seqslice/seqslice/internal/handlegraph"
)

func Test_HeadAndTailNodes(t *testing.T) {
	g := handlegraph.NewHashGraph()
	g.AddNode(1, "A")
	g.AddNode(2, "C")
	g.AddNode(3, "G")
	g.AddEdge(1, 2, false, false)
	g.AddEdge(2, 3, false, false)

	heads := HeadNodes(g)
	if len(heads) != 1 || heads[0].ID() != 1 {
		t.Errorf("heads are %v, want just node 1", heads)
	}
	tails := TailNodes(g)
	if len(tails) != 1 || tails[0].ID() != 3 {
		t.Errorf("tails are %v, want just node 3", tails)
	}
}

// a DAG comes out in an order where every edge points forward
func Test_OrderDAG(t *testing.T) {
	g := handlegraph.NewHashGraph()
	for id, seq := range map[int64]string{1: "A", 2: "C", 3: "G", 4: "T", 5: "AA"} {
		g.AddNode(id, seq)
	}
	g.AddEdge(1, 2, false, false)
	g.AddEdge(1, 3, false, false)
	g.AddEdge(2, 4, false, false)
	g.AddEdge(3, 4, false, false)
	g.AddEdge(4, 5, false, false)

	order := Order(g)
	if len(order) != 5 {
		t.Fatalf("ordered %d nodes, want 5", len(order))
	}
	rank := make(map[int64]int)
	for i, h := range order {
		if h.IsReverse() {
			t.Errorf("node %d came out reversed on a forward DAG", h.ID())
		}
		rank[h.ID()] = i
	}
	for _, edge := range [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}, {4, 5}} {
		if rank[edge[0]] >= rank[edge[1]] {
			t.Errorf("edge %d->%d points backward in %v", edge[0], edge[1], order)
		}
	}
}

// every node appears exactly once even on a cyclic graph
func Test_OrderCycleComplete(t *testing.T) {
	g := handlegraph.NewHashGraph()
	g.AddNode(1, "A")
	g.AddNode(2, "C")
	g.AddNode(3, "G")
	g.AddEdge(1, 2, false, false)
	g.AddEdge(2, 3, false, false)
	g.AddEdge(3, 1, false, false)

	order := Order(g)
	if len(order) != 3 {
		t.Fatalf("ordered %d nodes, want 3", len(order))
	}
	seen := make(map[int64]bool)
	for _, h := range order {
		if seen[h.ID()] {
			t.Errorf("node %d appears twice in %v", h.ID(), order)
		}
		seen[h.ID()] = true
	}
}

// the order is stable across runs
func Test_OrderDeterministic(t *testing.T) {
	g := handlegraph.NewHashGraph()
	for id := int64(1); id <= 8; id++ {
		g.AddNode(id, "ACGT")
	}
	g.AddEdge(1, 2, false, false)
	g.AddEdge(2, 3, false, false)
	g.AddEdge(3, 1, false, false)
	g.AddEdge(4, 5, false, false)
	g.AddEdge(5, 4, false, false)
	g.AddEdge(6, 7, false, false)
	g.AddEdge(7, 8, false, false)

	first := Order(g)
	for i := 0; i < 5; i++ {
		again := Order(g)
		if len(again) != len(first) {
			t.Fatalf("order length changed between runs")
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("order changed between runs at %d: %v vs %v", j, again, first)
			}
		}
	}
}
