// Package toposort orders the handles of a bidirected sequence graph.
// On a DAG the result is a topological sort; on a cyclic or reversing
// graph, edges are masked as they are consumed and cycle entry points
// are seeded, so every node still appears exactly once in a stable,
// deterministic order.
package toposort

import (
	"sort"

	"github.com/seqslice/seqslice/internal/handlegraph"
)

// HeadNodes returns the locally-forward handles with no left edges.
func HeadNodes(g handlegraph.HandleGraph) []handlegraph.Handle {
	var heads []handlegraph.Handle
	g.ForEachHandle(func(h handlegraph.Handle) bool {
		noLeft := g.FollowEdges(h, true, func(handlegraph.Handle) bool {
			// one is enough
			return false
		})
		if noLeft {
			heads = append(heads, h)
		}
		return true
	})
	return heads
}

// TailNodes returns the locally-forward handles with no right edges.
func TailNodes(g handlegraph.HandleGraph) []handlegraph.Handle {
	var tails []handlegraph.Handle
	g.ForEachHandle(func(h handlegraph.Handle) bool {
		noRight := g.FollowEdges(h, false, func(handlegraph.Handle) bool {
			return false
		})
		if noRight {
			tails = append(tails, h)
		}
		return true
	})
	return tails
}

// idSet is an ordered set of oriented nodes keyed by id. Keeping it
// ordered makes the sort stable across runs and systems.
type idSet struct {
	handles map[int64]handlegraph.Handle
	ids     []int64
	dirty   bool
}

func newIDSet() *idSet {
	return &idSet{handles: make(map[int64]handlegraph.Handle)}
}

func (s *idSet) add(h handlegraph.Handle) {
	if _, ok := s.handles[h.ID()]; !ok {
		s.ids = append(s.ids, h.ID())
		s.dirty = true
	}
	s.handles[h.ID()] = h
}

func (s *idSet) has(id int64) bool {
	_, ok := s.handles[id]
	return ok
}

func (s *idSet) remove(id int64) {
	delete(s.handles, id)
}

func (s *idSet) empty() bool {
	return len(s.handles) == 0
}

// min returns the handle with the smallest id still in the set.
func (s *idSet) min() handlegraph.Handle {
	if s.dirty {
		sort.Slice(s.ids, func(i, j int) bool { return s.ids[i] < s.ids[j] })
		s.dirty = false
	}
	for len(s.ids) > 0 {
		id := s.ids[0]
		if h, ok := s.handles[id]; ok {
			return h
		}
		s.ids = s.ids[1:]
	}
	return handlegraph.Handle{}
}

// Order returns every node of g exactly once, oriented and ordered.
// Heads are seeded first so a DAG comes out in plain topological order;
// elsewhere the orientation a cycle was first entered in is preferred,
// and the lowest unvisited id breaks ties when no seed applies.
func Order(g handlegraph.HandleGraph) []handlegraph.Handle {
	sorted := make([]handlegraph.Handle, 0, g.NodeCount())

	// edges are masked rather than removed as they are consumed
	masked := make(map[handlegraph.Edge]bool)

	// the oriented frontier, plus suggested orientations for nodes
	// that will have to be broken into
	s := newIDSet()
	seeds := newIDSet()

	for _, head := range HeadNodes(g) {
		s.add(head)
	}

	unvisited := newIDSet()
	g.ForEachHandle(func(h handlegraph.Handle) bool {
		if !s.has(h.ID()) {
			unvisited.add(h)
		}
		return true
	})

	for !unvisited.empty() || !s.empty() {
		// refill the frontier: first from seeds, then from the lowest
		// unvisited id locally forward
		for s.empty() && !seeds.empty() {
			seed := seeds.min()
			if unvisited.has(seed.ID()) {
				s.add(seed)
				unvisited.remove(seed.ID())
			}
			seeds.remove(seed.ID())
		}
		if s.empty() && !unvisited.empty() {
			h := unvisited.min()
			s.add(h)
			unvisited.remove(h.ID())
		}

		for !s.empty() {
			h := s.min()
			s.remove(h.ID())
			sorted = append(sorted, h)

			// mask any left-side edge back to an already-picked cycle
			// entry point (a reversing self-loop is a special case)
			g.FollowEdges(h, true, func(prev handlegraph.Handle) bool {
				if !unvisited.has(prev.ID()) {
					masked[handlegraph.CanonicalEdge(prev, h)] = true
				}
				return true
			})

			g.FollowEdges(h, false, func(next handlegraph.Handle) bool {
				edge := handlegraph.CanonicalEdge(h, next)
				if masked[edge] {
					return true
				}
				masked[edge] = true

				if !unvisited.has(next.ID()) {
					// already picked to break a cycle
					return true
				}

				// next joins the frontier once its last unmasked
				// incoming edge is consumed
				hasIncoming := !g.FollowEdges(next, true, func(prev handlegraph.Handle) bool {
					return masked[handlegraph.CanonicalEdge(prev, next)]
				})
				if !hasIncoming {
					s.add(next)
					unvisited.remove(next.ID())
				} else if !seeds.has(next.ID()) {
					// remember the orientation we reached it in for
					// when its cycle has to be broken into
					seeds.add(next)
				}
				return true
			})
		}
	}

	return sorted
}
