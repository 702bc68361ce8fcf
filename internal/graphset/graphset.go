// Package graphset manages a named collection of sequence graphs on
// disk. Member graphs stay in their GFA files; a sqlite index carries
// their names, paths, and id-space stats so collections can be listed
// without reparsing every member. Merging id spaces does read every
// member file.
package graphset

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/seqslice/seqslice/internal/gfa"
	"github.com/seqslice/seqslice/internal/handlegraph"
)

// Entry is one indexed member graph.
type Entry struct {
	Name    string
	Path    string
	Nodes   int
	Edges   int
	MinID   int64
	MaxID   int64
	AddedAt string
}

// Set is an open collection index.
type Set struct {
	db *sql.DB
}

// Open opens or creates the index database at the given path.
func Open(path string) (*Set, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS graphs (
			name TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			nodes INTEGER NOT NULL,
			edges INTEGER NOT NULL,
			min_id INTEGER NOT NULL,
			max_id INTEGER NOT NULL,
			added_at TEXT NOT NULL
		);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Set{db: db}, nil
}

// Close closes the index database.
func (s *Set) Close() error {
	return s.db.Close()
}

// Add parses the graph at gfaPath and indexes it under name, replacing
// any previous entry with that name.
func (s *Set) Add(name, gfaPath string) (Entry, error) {
	g, err := readGraph(gfaPath)
	if err != nil {
		return Entry{}, err
	}
	minID, maxID := g.MinMaxID()
	entry := Entry{
		Name:    name,
		Path:    gfaPath,
		Nodes:   g.NodeCount(),
		Edges:   g.EdgeCount(),
		MinID:   minID,
		MaxID:   maxID,
		AddedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_, err = s.db.Exec(`
		INSERT INTO graphs (name, path, nodes, edges, min_id, max_id, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			path = excluded.path, nodes = excluded.nodes, edges = excluded.edges,
			min_id = excluded.min_id, max_id = excluded.max_id, added_at = excluded.added_at`,
		entry.Name, entry.Path, entry.Nodes, entry.Edges, entry.MinID, entry.MaxID, entry.AddedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("index %s: %w", name, err)
	}
	return entry, nil
}

// List returns the indexed graphs in name order.
func (s *Set) List() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT name, path, nodes, edges, min_id, max_id, added_at
		FROM graphs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Path, &e.Nodes, &e.Edges, &e.MinID, &e.MaxID, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan graph row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Drop removes a graph from the index. The GFA file is left in place.
func (s *Set) Drop(name string) error {
	res, err := s.db.Exec("DELETE FROM graphs WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("drop %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no graph named %q in the collection", name)
	}
	return nil
}

// ForEach loads each member graph in name order and passes it to fn.
func (s *Set) ForEach(fn func(Entry, *handlegraph.HashGraph) error) error {
	entries, err := s.List()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		g, err := readGraph(entry.Path)
		if err != nil {
			return err
		}
		if err := fn(entry, g); err != nil {
			return err
		}
	}
	return nil
}

// MergeIDSpace rewrites the member graphs so their node id spaces are
// disjoint: each graph's ids are shifted past the previous graph's
// maximum. Files and index rows are updated in place; the returned
// value is the largest id in use afterwards. Necessary when many
// graphs feed one index downstream.
func (s *Set) MergeIDSpace() (int64, error) {
	entries, err := s.List()
	if err != nil {
		return 0, err
	}

	var maxSoFar int64
	for _, entry := range entries {
		g, err := readGraph(entry.Path)
		if err != nil {
			return 0, err
		}
		minID, maxID := g.MinMaxID()
		if g.NodeCount() == 0 {
			continue
		}

		var shift int64
		if minID <= maxSoFar {
			shift = maxSoFar + 1 - minID
		}
		if shift != 0 {
			g = shiftIDs(g, shift)
			if err := writeGraph(entry.Path, g); err != nil {
				return 0, err
			}
		}
		minID += shift
		maxID += shift
		maxSoFar = maxID

		_, err = s.db.Exec("UPDATE graphs SET min_id = ?, max_id = ? WHERE name = ?",
			minID, maxID, entry.Name)
		if err != nil {
			return 0, fmt.Errorf("update %s: %w", entry.Name, err)
		}
	}
	return maxSoFar, nil
}

// shiftIDs rebuilds a graph with every node id offset by shift.
func shiftIDs(g *handlegraph.HashGraph, shift int64) *handlegraph.HashGraph {
	shifted := handlegraph.NewHashGraph()
	g.ForEachHandle(func(h handlegraph.Handle) bool {
		shifted.AddNode(h.ID()+shift, g.Sequence(h))
		return true
	})
	g.ForEachEdge(func(e handlegraph.Edge) bool {
		shifted.AddEdge(e.From.ID()+shift, e.To.ID()+shift,
			e.From.IsReverse(), e.To.IsReverse())
		return true
	})
	return shifted
}

func readGraph(path string) (*handlegraph.HashGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer f.Close()
	g, err := gfa.Read(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}

func writeGraph(path string, g *handlegraph.HashGraph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	if err := gfa.Write(f, g); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
