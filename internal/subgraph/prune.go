package subgraph

import "github.com/seqslice/seqslice/internal/handlegraph"

// Pruning. The graph now contains every indicated path and the end
// positions are tips; each mode trims away nodes and edges the search
// added that do not contribute to the guarantee the caller asked for.

// pruneStrict keeps only nodes and edges that lie on some walk between
// the endpoints (duplicates included) of total length at most maxLen.
// Two Dijkstra sweeps over the local graph record, per oriented
// traversal, the distance from each end; a node or edge survives iff
// some orientation pairing sums under the bound.
func (e *extractor) pruneStrict() {
	forwardDist := make(map[handlegraph.Handle]int64)
	reverseDist := make(map[handlegraph.Handle]int64)

	queue := newFilteredQueue()
	queue.push(handlegraph.New(e.pos1.ID, e.pos1.Rev), int64(len(e.graph[e.pos1.ID].seq)))
	if e.dup1 != 0 {
		queue.push(handlegraph.New(e.dup1, e.pos1.Rev), int64(len(e.graph[e.dup1].seq)))
	}
	for !queue.empty() {
		trav := queue.pop()
		forwardDist[trav.handle] = trav.dist

		n := e.graph[trav.handle.ID()]
		for _, edge := range *outEdges(n, trav.handle.IsReverse()) {
			distThru := trav.dist + int64(len(e.graph[edge.id].seq))
			queue.push(handlegraph.New(edge.id, edge.rev != trav.handle.IsReverse()), distThru)
		}
	}

	queue = newFilteredQueue()
	queue.push(handlegraph.New(e.pos2.ID, !e.pos2.Rev), 0)
	if e.dup2 != 0 {
		queue.push(handlegraph.New(e.dup2, !e.pos2.Rev), 0)
	}
	for !queue.empty() {
		trav := queue.pop()
		reverseDist[trav.handle] = trav.dist

		n := e.graph[trav.handle.ID()]
		distThru := trav.dist + int64(len(n.seq))
		for _, edge := range *outEdges(n, trav.handle.IsReverse()) {
			queue.push(handlegraph.New(edge.id, edge.rev != trav.handle.IsReverse()), distThru)
		}
	}

	// the sweeps hold the shortest remaining path to and from every
	// traversal; a pairing under the bound keeps the node or edge
	pathThrough := func(fwd, rev handlegraph.Handle, extra int64) bool {
		fd, ok := forwardDist[fwd]
		if !ok {
			return false
		}
		rd, ok := reverseDist[rev]
		if !ok {
			return false
		}
		return fd+rd+extra <= e.maxLen
	}

	var toErase []int64
	for id, n := range e.graph {
		nodeID := id
		if !pathThrough(handlegraph.New(nodeID, true), handlegraph.New(nodeID, false), 0) &&
			!pathThrough(handlegraph.New(nodeID, false), handlegraph.New(nodeID, true), 0) {
			toErase = append(toErase, nodeID)
			continue
		}
		n.right = keepEdges(n.right, func(edge localEdge) bool {
			return pathThrough(handlegraph.New(nodeID, false),
				handlegraph.New(edge.id, !edge.rev), int64(len(e.graph[edge.id].seq))) ||
				pathThrough(handlegraph.New(edge.id, !edge.rev),
					handlegraph.New(nodeID, false), int64(len(e.graph[nodeID].seq)))
		})
		n.left = keepEdges(n.left, func(edge localEdge) bool {
			return pathThrough(handlegraph.New(nodeID, true),
				handlegraph.New(edge.id, edge.rev), int64(len(e.graph[edge.id].seq))) ||
				pathThrough(handlegraph.New(edge.id, edge.rev),
					handlegraph.New(nodeID, true), int64(len(e.graph[nodeID].seq)))
		})
	}
	for _, id := range toErase {
		delete(e.idTrans, id)
		delete(e.graph, id)
	}
}

// pruneToPaths keeps only nodes and edges reachable both from the
// forward starts and from the reverse starts in some orientation
// pairing: exactly the material on a path between the end positions.
func (e *extractor) pruneToPaths() {
	forward := make(map[handlegraph.Handle]bool)
	reverse := make(map[handlegraph.Handle]bool)

	reach := func(seen map[handlegraph.Handle]bool, starts []handlegraph.Handle) {
		stack := starts
		for _, h := range stack {
			seen[h] = true
		}
		for len(stack) > 0 {
			h := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := e.graph[h.ID()]
			for _, edge := range *outEdges(n, h.IsReverse()) {
				next := handlegraph.New(edge.id, edge.rev != h.IsReverse())
				if !seen[next] {
					seen[next] = true
					stack = append(stack, next)
				}
			}
		}
	}

	starts := []handlegraph.Handle{handlegraph.New(e.pos1.ID, e.pos1.Rev)}
	if e.dup1 != 0 {
		starts = append(starts, handlegraph.New(e.dup1, e.pos1.Rev))
	}
	reach(forward, starts)

	starts = []handlegraph.Handle{handlegraph.New(e.pos2.ID, !e.pos2.Rev)}
	if e.dup2 != 0 {
		starts = append(starts, handlegraph.New(e.dup2, !e.pos2.Rev))
	}
	reach(reverse, starts)

	onPath := func(fwd, rev handlegraph.Handle) bool {
		return forward[fwd] && reverse[rev]
	}

	var toErase []int64
	for id, n := range e.graph {
		nodeID := id
		if !onPath(handlegraph.New(nodeID, true), handlegraph.New(nodeID, false)) &&
			!onPath(handlegraph.New(nodeID, false), handlegraph.New(nodeID, true)) {
			toErase = append(toErase, nodeID)
			continue
		}
		n.right = keepEdges(n.right, func(edge localEdge) bool {
			return onPath(handlegraph.New(nodeID, false), handlegraph.New(edge.id, !edge.rev)) ||
				onPath(handlegraph.New(edge.id, !edge.rev), handlegraph.New(nodeID, false))
		})
		n.left = keepEdges(n.left, func(edge localEdge) bool {
			return onPath(handlegraph.New(nodeID, true), handlegraph.New(edge.id, edge.rev)) ||
				onPath(handlegraph.New(edge.id, edge.rev), handlegraph.New(nodeID, true))
		})
	}
	for _, id := range toErase {
		delete(e.idTrans, id)
		delete(e.graph, id)
	}
}

// pruneTips iteratively deletes nodes with an edgeless side, except the
// endpoint nodes and their duplicates. Cycles rehoused onto the
// original nodes dangle after cutting, as do walks the search abandoned
// at the distance bound; both show up as tips.
func (e *extractor) pruneTips() {
	leftDegree := make(map[int64]int)
	rightDegree := make(map[int64]int)
	for id, n := range e.graph {
		leftDegree[id] = len(n.left)
		rightDegree[id] = len(n.right)
	}

	protected := func(id int64) bool {
		return id == e.pos1.ID || id == e.pos2.ID || id == e.dup1 || id == e.dup2
	}

	// check every node once, revisiting neighbors of deleted nodes
	for _, seed := range sortedIDs(e.graph) {
		toCheck := []int64{seed}
		for len(toCheck) > 0 {
			id := toCheck[0]
			toCheck = toCheck[1:]
			if protected(id) {
				continue
			}
			n, ok := e.graph[id]
			if !ok {
				continue
			}
			switch {
			case leftDegree[id] == 0:
				delete(e.idTrans, id)
				for _, edge := range n.right {
					if edge.rev {
						rightDegree[edge.id]--
					} else {
						leftDegree[edge.id]--
					}
					toCheck = append(toCheck, edge.id)
				}
				delete(e.graph, id)
			case rightDegree[id] == 0:
				delete(e.idTrans, id)
				for _, edge := range n.left {
					if edge.rev {
						leftDegree[edge.id]--
					} else {
						rightDegree[edge.id]--
					}
					toCheck = append(toCheck, edge.id)
				}
				delete(e.graph, id)
			}
		}
	}

	// drop edges left dangling to removed nodes
	for _, n := range e.graph {
		n.left = keepEdges(n.left, func(edge localEdge) bool {
			_, ok := e.graph[edge.id]
			return ok
		})
		n.right = keepEdges(n.right, func(edge localEdge) bool {
			_, ok := e.graph[edge.id]
			return ok
		})
	}
}
