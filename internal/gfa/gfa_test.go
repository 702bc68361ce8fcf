package gfa

import (
	"strings"
	"testing"

	"github.com/seqslice/seqslice/internal/handlegraph"
)

const sample = `H	VN:Z:1.0
S	1	ACGT
S	2	GGGG
S	3	TT
L	1	+	2	+	0M
L	2	+	3	+	0M
L	3	+	1	-	0M
`

func Test_Read(t *testing.T) {
	g, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if g.NodeCount() != 3 {
		t.Fatalf("parsed %d nodes, want 3", g.NodeCount())
	}
	if got := g.Sequence(handlegraph.New(2, false)); got != "GGGG" {
		t.Errorf("node 2 sequence is %q, want GGGG", got)
	}
	if g.EdgeCount() != 3 {
		t.Errorf("parsed %d edges, want 3", g.EdgeCount())
	}

	// the reversing link enters node 1 on its right side
	found := false
	g.FollowEdges(handlegraph.New(3, false), false, func(h handlegraph.Handle) bool {
		if h == handlegraph.New(1, true) {
			found = true
		}
		return true
	})
	if !found {
		t.Error("link 3+ to 1- was not stored as a reversing edge")
	}
}

func Test_ReadRejectsBadInput(t *testing.T) {
	for name, in := range map[string]string{
		"non-numeric id":    "S\tx\tACGT\n",
		"short segment":     "S\t1\n",
		"bad orientation":   "S\t1\tA\nS\t2\tC\nL\t1\t?\t2\t+\t0M\n",
		"non-blunt overlap": "S\t1\tA\nS\t2\tC\nL\t1\t+\t2\t+\t5M\n",
	} {
		if _, err := Read(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expected a parse error", name)
		}
	}
}

func Test_WriteRoundTrip(t *testing.T) {
	g, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	var sb strings.Builder
	if err := Write(&sb, g); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	back, err := Read(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("failed to reparse: %v", err)
	}
	if back.NodeCount() != g.NodeCount() || back.EdgeCount() != g.EdgeCount() {
		t.Errorf("round trip changed the graph: %d/%d nodes, %d/%d edges",
			back.NodeCount(), g.NodeCount(), back.EdgeCount(), g.EdgeCount())
	}
	for _, id := range g.NodeIDs() {
		h := handlegraph.New(id, false)
		if back.Sequence(h) != g.Sequence(h) {
			t.Errorf("node %d sequence changed across the round trip", id)
		}
	}
}

func Test_WriteDeterministic(t *testing.T) {
	g, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	var first strings.Builder
	if err := Write(&first, g); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	for i := 0; i < 3; i++ {
		var again strings.Builder
		if err := Write(&again, g); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if again.String() != first.String() {
			t.Fatal("output changed between writes of the same graph")
		}
	}
}

func Test_EmptySequenceAsStar(t *testing.T) {
	g := handlegraph.NewHashGraph()
	g.AddNode(1, "")
	var sb strings.Builder
	if err := Write(&sb, g); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if !strings.Contains(sb.String(), "S\t1\t*") {
		t.Errorf("empty sequence should be written as *, got %q", sb.String())
	}
	back, err := Read(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("failed to reparse: %v", err)
	}
	if got := back.Sequence(handlegraph.New(1, false)); got != "" {
		t.Errorf("starred sequence should come back empty, got %q", got)
	}
}
