package graphset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seqslice/seqslice/internal/gfa"
	"github.com/seqslice/seqslice/internal/handlegraph"
)

func writeTestGraph(t *testing.T, dir, name string, ids []int64) string {
	t.Helper()
	g := handlegraph.NewHashGraph()
	for _, id := range ids {
		g.AddNode(id, "ACGT")
	}
	for i := 1; i < len(ids); i++ {
		g.AddEdge(ids[i-1], ids[i], false, false)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create graph file: %v", err)
	}
	defer f.Close()
	if err := gfa.Write(f, g); err != nil {
		t.Fatalf("failed to write graph file: %v", err)
	}
	return path
}

func openTestSet(t *testing.T, dir string) *Set {
	t.Helper()
	s, err := Open(filepath.Join(dir, "index.db"))
	if err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func Test_AddAndList(t *testing.T) {
	dir := t.TempDir()
	s := openTestSet(t, dir)

	path := writeTestGraph(t, dir, "a.gfa", []int64{1, 2, 3})
	entry, err := s.Add("a", path)
	if err != nil {
		t.Fatalf("failed to add graph: %v", err)
	}
	if entry.Nodes != 3 || entry.Edges != 2 {
		t.Errorf("indexed %d nodes and %d edges, want 3 and 2", entry.Nodes, entry.Edges)
	}
	if entry.MinID != 1 || entry.MaxID != 3 {
		t.Errorf("indexed id range %d..%d, want 1..3", entry.MinID, entry.MaxID)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "a" {
		t.Errorf("listed %v, want the one added graph", entries)
	}
}

func Test_Drop(t *testing.T) {
	dir := t.TempDir()
	s := openTestSet(t, dir)

	path := writeTestGraph(t, dir, "a.gfa", []int64{1, 2})
	if _, err := s.Add("a", path); err != nil {
		t.Fatalf("failed to add graph: %v", err)
	}
	if err := s.Drop("a"); err != nil {
		t.Fatalf("failed to drop graph: %v", err)
	}
	if err := s.Drop("a"); err == nil {
		t.Error("dropping a missing graph should fail")
	}
	// the file itself is left alone
	if _, err := os.Stat(path); err != nil {
		t.Errorf("graph file should survive a drop: %v", err)
	}
}

func Test_MergeIDSpace(t *testing.T) {
	dir := t.TempDir()
	s := openTestSet(t, dir)

	pathA := writeTestGraph(t, dir, "a.gfa", []int64{1, 2, 3})
	pathB := writeTestGraph(t, dir, "b.gfa", []int64{1, 2})
	if _, err := s.Add("a", pathA); err != nil {
		t.Fatalf("failed to add a: %v", err)
	}
	if _, err := s.Add("b", pathB); err != nil {
		t.Fatalf("failed to add b: %v", err)
	}

	maxID, err := s.MergeIDSpace()
	if err != nil {
		t.Fatalf("failed to merge id spaces: %v", err)
	}
	if maxID != 5 {
		t.Errorf("merged max id is %d, want 5", maxID)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	// a keeps 1..3, b is shifted to 4..5
	for _, e := range entries {
		switch e.Name {
		case "a":
			if e.MinID != 1 || e.MaxID != 3 {
				t.Errorf("a has id range %d..%d, want 1..3", e.MinID, e.MaxID)
			}
		case "b":
			if e.MinID != 4 || e.MaxID != 5 {
				t.Errorf("b has id range %d..%d, want 4..5", e.MinID, e.MaxID)
			}
		}
	}

	// the rewritten file really carries the shifted ids
	f, err := os.Open(pathB)
	if err != nil {
		t.Fatalf("failed to reopen b: %v", err)
	}
	defer f.Close()
	g, err := gfa.Read(f)
	if err != nil {
		t.Fatalf("failed to reparse b: %v", err)
	}
	if !g.HasNode(4) || !g.HasNode(5) || g.HasNode(1) {
		t.Errorf("b's node ids were not shifted: %v", g.NodeIDs())
	}
}

func Test_ForEach(t *testing.T) {
	dir := t.TempDir()
	s := openTestSet(t, dir)

	if _, err := s.Add("a", writeTestGraph(t, dir, "a.gfa", []int64{1, 2})); err != nil {
		t.Fatalf("failed to add a: %v", err)
	}
	if _, err := s.Add("b", writeTestGraph(t, dir, "b.gfa", []int64{7})); err != nil {
		t.Fatalf("failed to add b: %v", err)
	}

	var names []string
	total := 0
	err := s.ForEach(func(e Entry, g *handlegraph.HashGraph) error {
		names = append(names, e.Name)
		total += g.NodeCount()
		return nil
	})
	if err != nil {
		t.Fatalf("failed to iterate: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("iterated %v, want [a b]", names)
	}
	if total != 3 {
		t.Errorf("saw %d nodes across the collection, want 3", total)
	}
}
