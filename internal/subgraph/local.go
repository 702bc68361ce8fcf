package subgraph

import "sort"

// localEdge is one half of an edge as seen from a node's side list:
// the neighbor id and whether the edge joins two same-named sides
// (crossing it flips strand).
type localEdge struct {
	id  int64
	rev bool
}

// localNode is the internal, mutable node record the extraction works
// on. Every edge appears on both endpoints' side lists, except a
// reversing self-loop which appears exactly once on its side.
type localNode struct {
	seq   string
	left  []localEdge
	right []localEdge
}

// findEdge returns the index of the first occurrence of e, or -1.
func findEdge(edges []localEdge, e localEdge) int {
	for i, other := range edges {
		if other == e {
			return i
		}
	}
	return -1
}

// removeEdge deletes the first occurrence of e, preserving order.
func removeEdge(edges *[]localEdge, e localEdge) {
	i := findEdge(*edges, e)
	if i < 0 {
		return
	}
	*edges = append((*edges)[:i], (*edges)[i+1:]...)
}

// keepEdges filters a side list in place to the edges keep accepts.
func keepEdges(edges []localEdge, keep func(localEdge) bool) []localEdge {
	kept := edges[:0]
	for _, e := range edges {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

// sortedIDs returns the node ids of the local graph in ascending order.
func sortedIDs(graph map[int64]*localNode) []int64 {
	ids := make([]int64, 0, len(graph))
	for id := range graph {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
