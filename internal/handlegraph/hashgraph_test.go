package handlegraph

import "testing"

func Test_FollowEdgesOrientation(t *testing.T) {
	g := NewHashGraph()
	g.AddNode(1, "ACGT")
	g.AddNode(2, "GG")
	g.AddEdge(1, 2, false, false)

	// rightward from 1 forward reaches 2 forward
	var got []Handle
	g.FollowEdges(New(1, false), false, func(h Handle) bool {
		got = append(got, h)
		return true
	})
	if len(got) != 1 || got[0] != New(2, false) {
		t.Errorf("right of 1+ is %v, want [2+]", got)
	}

	// leftward from 2 forward reaches 1 forward
	got = nil
	g.FollowEdges(New(2, false), true, func(h Handle) bool {
		got = append(got, h)
		return true
	})
	if len(got) != 1 || got[0] != New(1, false) {
		t.Errorf("left of 2+ is %v, want [1+]", got)
	}

	// rightward from 2 reverse crosses the same edge onto 1 reverse
	got = nil
	g.FollowEdges(New(2, true), false, func(h Handle) bool {
		got = append(got, h)
		return true
	})
	if len(got) != 1 || got[0] != New(1, true) {
		t.Errorf("right of 2- is %v, want [1-]", got)
	}
}

func Test_AddEdgeDeduplicates(t *testing.T) {
	g := NewHashGraph()
	g.AddNode(1, "A")
	g.AddNode(2, "C")
	g.AddEdge(1, 2, false, false)
	// the same edge named from the other end
	g.AddEdge(2, 1, true, true)

	if g.EdgeCount() != 1 {
		t.Errorf("graph has %d edges, want 1", g.EdgeCount())
	}
}

func Test_SelfLoops(t *testing.T) {
	g := NewHashGraph()
	g.AddNode(1, "ACGT")
	// non-reversing: right side around to the left side
	g.AddEdge(1, 1, false, false)
	if g.EdgeCount() != 1 {
		t.Fatalf("graph has %d edges, want 1", g.EdgeCount())
	}

	count := 0
	g.FollowEdges(New(1, false), false, func(h Handle) bool {
		if h != New(1, false) {
			t.Errorf("loop continues to %v, want 1+", h)
		}
		count++
		return true
	})
	if count != 1 {
		t.Errorf("1+ has %d rightward edges, want 1", count)
	}

	// reversing: right side back onto the right side
	h := NewHashGraph()
	h.AddNode(1, "ACGT")
	h.AddEdge(1, 1, false, true)
	if h.EdgeCount() != 1 {
		t.Fatalf("graph has %d edges, want 1", h.EdgeCount())
	}
	count = 0
	h.FollowEdges(New(1, false), false, func(next Handle) bool {
		if next != New(1, true) {
			t.Errorf("reversing loop continues to %v, want 1-", next)
		}
		count++
		return true
	})
	if count != 1 {
		t.Errorf("1+ has %d rightward edges, want 1", count)
	}
}

func Test_CanonicalEdge(t *testing.T) {
	a := New(2, false)
	b := New(5, true)
	if CanonicalEdge(a, b) != CanonicalEdge(b.Flip(), a.Flip()) {
		t.Error("the two traversals of an edge should canonicalize alike")
	}
	if CanonicalEdge(a, b) != (Edge{From: a, To: b}) {
		t.Error("the lower-id end should come first")
	}
}

func Test_Sequence(t *testing.T) {
	g := NewHashGraph()
	g.AddNode(1, "AACGT")
	if got := g.Sequence(New(1, false)); got != "AACGT" {
		t.Errorf("forward sequence is %q", got)
	}
	if got := g.Sequence(New(1, true)); got != "ACGTT" {
		t.Errorf("reverse sequence is %q, want ACGTT", got)
	}
}

func Test_ReverseComplement(t *testing.T) {
	if got := ReverseComplement("AACGTN"); got != "NACGTT" {
		t.Errorf("got %q, want NACGTT", got)
	}
	if got := ReverseComplement(""); got != "" {
		t.Errorf("empty sequence should stay empty, got %q", got)
	}
}

func Test_ForEachHandleOrdered(t *testing.T) {
	g := NewHashGraph()
	g.AddNode(3, "A")
	g.AddNode(1, "C")
	g.AddNode(2, "G")

	var ids []int64
	g.ForEachHandle(func(h Handle) bool {
		ids = append(ids, h.ID())
		return true
	})
	for i, want := range []int64{1, 2, 3} {
		if ids[i] != want {
			t.Fatalf("iteration order %v, want ascending ids", ids)
		}
	}
}
