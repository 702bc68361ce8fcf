package subgraph

// Terminal-node duplication. Cutting the endpoint nodes into tips would
// sever any cycle that passes through them, so when cycle detection is
// requested each endpoint node that sits in a cycle is cloned first:
// the clone keeps the cyclic connections, the original becomes the tip.
// An endpoint node is in a cycle exactly when both its side lists are
// non-empty after the searches, since the searches only walk away from
// the endpoints.

// duplicateTerminalNodes dispatches on the colocation of the two
// positions. Every clone is entered into the id translator under its
// fresh id.
func (e *extractor) duplicateTerminalNodes() {
	n1 := e.graph[e.pos1.ID]
	inCycle1 := len(n1.left) > 0 && len(n1.right) > 0
	n2 := e.graph[e.pos2.ID]
	inCycle2 := len(n2.left) > 0 && len(n2.right) > 0

	switch e.colo {
	case separateNodes:
		// the positions are on separate nodes, so cycles through each
		// can be duplicated independently
		if inCycle1 {
			e.duplicateSeparate(e.pos1, true)
		}
		if inCycle2 {
			e.duplicateSeparate(e.pos2, false)
		}
	case sharedNodeReachable:
		if inCycle1 {
			e.duplicateSharedReachable()
		}
	case sharedNodeUnreachable:
		// every path between the positions is cyclical; duplicate
		// unconditionally so cycles through the node are there for the
		// distance filter to accept or reject
		e.duplicateSharedUnreachable()
	case sharedNodeReverse:
		if inCycle1 {
			e.duplicateSharedReverse()
		}
	}
}

// duplicateSeparate clones one endpoint node. Reversing self-loops move
// onto the clone with a connection back to the original; a
// non-reversing self-loop becomes a bridge between original and clone
// plus a self-loop on the clone; every other edge is copied with its
// mirror entry. isStart orients the bridge so the cyclic walk leaves
// the start node and re-enters the end node.
func (e *extractor) duplicateSeparate(p Pos, isStart bool) {
	origID := p.ID
	n := e.graph[origID]
	newID := e.nextID
	clone := &localNode{seq: n.seq}
	e.graph[newID] = clone

	addLooping := false

	for i := range n.right {
		edge := &n.right[i]
		switch {
		case edge.id == origID && edge.rev:
			// reversing self-loop: move it onto the clone
			edge.id = newID
			clone.right = append(clone.right, localEdge{id: origID, rev: edge.rev})
			clone.right = append(clone.right, localEdge{id: newID, rev: edge.rev})
		case edge.id == origID:
			// non-reversing self-loop: bridge later, keep the loop on
			// the clone only
			addLooping = true
			clone.right = append(clone.right, localEdge{id: newID, rev: edge.rev})
			clone.left = append(clone.left, localEdge{id: newID, rev: edge.rev})
		default:
			next := e.graph[edge.id]
			back := &next.left
			if edge.rev {
				back = &next.right
			}
			*back = append(*back, localEdge{id: newID, rev: edge.rev})
			clone.right = append(clone.right, localEdge{id: edge.id, rev: edge.rev})
		}
	}

	for i := range n.left {
		edge := &n.left[i]
		switch {
		case edge.id == origID && edge.rev:
			edge.id = newID
			clone.left = append(clone.left, localEdge{id: origID, rev: edge.rev})
			clone.left = append(clone.left, localEdge{id: newID, rev: edge.rev})
		case edge.id != origID:
			next := e.graph[edge.id]
			back := &next.right
			if edge.rev {
				back = &next.left
			}
			*back = append(*back, localEdge{id: newID, rev: edge.rev})
			clone.left = append(clone.left, localEdge{id: edge.id, rev: edge.rev})
		}
	}

	if addLooping {
		if isStart {
			// walk leaves the original outward, loops on the clone
			in := inEdges(clone, p.Rev)
			out := outEdges(n, p.Rev)
			*in = append(*in, localEdge{id: origID})
			*out = append(*out, localEdge{id: newID})
		} else {
			// walk loops on the clone, re-enters the original
			out := outEdges(clone, p.Rev)
			in := inEdges(n, p.Rev)
			*out = append(*out, localEdge{id: origID})
			*in = append(*in, localEdge{id: newID})
		}
	}

	e.idTrans[newID] = origID
	e.nextID++
}

// duplicateSharedReachable splits the shared node three ways: a
// righthand piece keeps the edges past pos1, a lefthand piece keeps the
// edges before pos2, and a cycle piece with the full original sequence
// bridges them so cycles through the node survive the trim. The
// righthand and lefthand ids are remembered as the duplicate starts for
// the pruning sweeps.
func (e *extractor) duplicateSharedReachable() {
	p1, p2 := e.pos1, e.pos2
	n := e.graph[p1.ID]
	origSeq := n.seq
	incl := e.opts.IncludeTerminalPositions

	// righthand piece takes over the edges out of the side the
	// traversal leaves
	rhID := e.nextID
	rh := &localNode{seq: trimmedSeqRight(origSeq, p1.Off, p1.Rev, incl)}
	e.graph[rhID] = rh
	rhEdges := outEdges(rh, p1.Rev)
	moved := outEdges(n, p1.Rev)
	*rhEdges, *moved = *moved, nil

	for i := range *rhEdges {
		edge := &(*rhEdges)[i]
		if edge.id == p1.ID && edge.rev {
			// reversing self-loop: relabel here; edges naming the
			// lefthand side keep the old id until that piece exists
			edge.id = rhID
		} else {
			next := e.graph[edge.id]
			back := &next.left
			if p1.Rev != edge.rev {
				back = &next.right
			}
			if j := findEdge(*back, localEdge{id: p1.ID, rev: edge.rev}); j >= 0 {
				(*back)[j].id = rhID
			}
		}
	}
	e.idTrans[rhID] = p1.ID
	e.nextID++

	// lefthand piece takes over the other side
	lhID := e.nextID
	lh := &localNode{seq: trimmedSeqLeft(origSeq, p2.Off, p2.Rev, incl)}
	e.graph[lhID] = lh
	lhEdges := inEdges(lh, p1.Rev)
	moved = inEdges(n, p1.Rev)
	*lhEdges, *moved = *moved, nil

	for i := range *lhEdges {
		edge := &(*lhEdges)[i]
		if edge.id == p1.ID {
			// only reversing self-loops still carry the old id; the
			// non-reversing ones were rewritten to the righthand piece
			edge.id = lhID
		}
		if !(edge.id == lhID && edge.rev) {
			next := e.graph[edge.id]
			back := &next.right
			if p1.Rev != edge.rev {
				back = &next.left
			}
			if j := findEdge(*back, localEdge{id: p1.ID, rev: edge.rev}); j >= 0 {
				(*back)[j].id = lhID
			}
		}
	}
	e.idTrans[lhID] = p1.ID
	e.nextID++

	// the cycle piece duplicates the whole node between the two
	cycID := e.nextID
	cyc := &localNode{seq: origSeq}
	e.graph[cycID] = cyc

	addLooping := false
	out := outEdges(cyc, p1.Rev)
	in := inEdges(cyc, p1.Rev)

	for i := range *rhEdges {
		edge := &(*rhEdges)[i]
		switch {
		case edge.id == rhID:
			// must be a reversing self-loop: move it onto the cycle piece
			edge.id = cycID
			*out = append(*out, localEdge{id: rhID, rev: edge.rev})
			*out = append(*out, localEdge{id: cycID, rev: edge.rev})
		case edge.id == lhID:
			// the non-reversing self-loop, now a righthand-to-lefthand
			// bridge; wire the cycle piece in afterwards
			addLooping = true
		default:
			next := e.graph[edge.id]
			back := &next.left
			if p1.Rev != edge.rev {
				back = &next.right
			}
			*back = append(*back, localEdge{id: cycID, rev: edge.rev})
			*out = append(*out, localEdge{id: edge.id, rev: edge.rev})
		}
	}

	for i := range *lhEdges {
		edge := &(*lhEdges)[i]
		switch {
		case edge.id == lhID:
			edge.id = cycID
			*in = append(*in, localEdge{id: lhID, rev: edge.rev})
			*in = append(*in, localEdge{id: cycID, rev: edge.rev})
		case edge.id != rhID:
			next := e.graph[edge.id]
			back := &next.right
			if p1.Rev != edge.rev {
				back = &next.left
			}
			*back = append(*back, localEdge{id: cycID, rev: edge.rev})
			*in = append(*in, localEdge{id: edge.id, rev: edge.rev})
		}
	}

	if addLooping {
		// righthand into the cycle piece, cycle piece into lefthand,
		// and the loop itself on the cycle piece alone
		*rhEdges = append(*rhEdges, localEdge{id: cycID})
		*in = append(*in, localEdge{id: rhID})
		*lhEdges = append(*lhEdges, localEdge{id: cycID})
		*out = append(*out, localEdge{id: lhID})
		*out = append(*out, localEdge{id: cycID})
		*in = append(*in, localEdge{id: cycID})
	}

	e.idTrans[cycID] = p1.ID
	e.nextID++

	e.dup1 = rhID
	e.dup2 = lhID
}

// duplicateSharedUnreachable clones the shared node once so that cycles
// passing all the way through it remain representable; the distance
// filter decides later which of them survive.
func (e *extractor) duplicateSharedUnreachable() {
	p1 := e.pos1
	n := e.graph[p1.ID]
	newID := e.nextID
	clone := &localNode{seq: n.seq}
	e.graph[newID] = clone

	newOut, newIn := outEdges(clone, p1.Rev), inEdges(clone, p1.Rev)
	oldOut, oldIn := outEdges(n, p1.Rev), inEdges(n, p1.Rev)

	addLooping := false

	for i := range *oldOut {
		edge := &(*oldOut)[i]
		switch {
		case edge.id == p1.ID && edge.rev:
			edge.id = newID
			*newOut = append(*newOut, localEdge{id: p1.ID, rev: edge.rev})
			*newOut = append(*newOut, localEdge{id: newID, rev: edge.rev})
		case edge.id == p1.ID:
			addLooping = true
		default:
			next := e.graph[edge.id]
			back := &next.left
			if p1.Rev != edge.rev {
				back = &next.right
			}
			*back = append(*back, localEdge{id: newID, rev: edge.rev})
			*newOut = append(*newOut, localEdge{id: edge.id, rev: edge.rev})
		}
	}

	for i := range *oldIn {
		edge := &(*oldIn)[i]
		switch {
		case edge.id == p1.ID && edge.rev:
			edge.id = newID
			*newIn = append(*newIn, localEdge{id: p1.ID, rev: edge.rev})
			*newIn = append(*newIn, localEdge{id: newID, rev: edge.rev})
		case edge.id != p1.ID:
			next := e.graph[edge.id]
			back := &next.right
			if p1.Rev != edge.rev {
				back = &next.left
			}
			*back = append(*back, localEdge{id: newID, rev: edge.rev})
			*newIn = append(*newIn, localEdge{id: edge.id, rev: edge.rev})
		}
	}

	if addLooping {
		// original out to the clone, clone back in to the original,
		// and the loop itself on the clone
		*oldOut = append(*oldOut, localEdge{id: newID})
		*newIn = append(*newIn, localEdge{id: p1.ID})
		*oldIn = append(*oldIn, localEdge{id: newID})
		*newOut = append(*newOut, localEdge{id: p1.ID})
		*newOut = append(*newOut, localEdge{id: newID})
		*newIn = append(*newIn, localEdge{id: newID})
	}

	e.idTrans[newID] = p1.ID
	e.nextID++
}

// duplicateSharedReverse clones the shared node once for the
// opposite-strand colocation. Self-loops of either kind become marked
// bridges between original and clone; left-side cycles on the clone
// keep their strand flip.
func (e *extractor) duplicateSharedReverse() {
	p1 := e.pos1
	n := e.graph[p1.ID]
	newID := e.nextID
	clone := &localNode{seq: n.seq}
	e.graph[newID] = clone

	newOut, newIn := outEdges(clone, p1.Rev), inEdges(clone, p1.Rev)
	oldOut, oldIn := outEdges(n, p1.Rev), inEdges(n, p1.Rev)

	addReversing := false
	addLooping := false

	for i := range *oldOut {
		edge := &(*oldOut)[i]
		switch {
		case edge.id == p1.ID && edge.rev:
			addReversing = true
		case edge.id == p1.ID:
			addLooping = true
		default:
			next := e.graph[edge.id]
			back := &next.left
			if p1.Rev != edge.rev {
				back = &next.right
			}
			*back = append(*back, localEdge{id: newID, rev: edge.rev})
			*newOut = append(*newOut, localEdge{id: edge.id, rev: edge.rev})
		}
	}

	for i := range *oldIn {
		edge := &(*oldIn)[i]
		switch {
		case edge.id == p1.ID && edge.rev:
			// reversing self-loop: the clone gets its own copy
			*newIn = append(*newIn, localEdge{id: newID, rev: edge.rev})
		case edge.id != p1.ID:
			next := e.graph[edge.id]
			back := &next.right
			if p1.Rev != edge.rev {
				back = &next.left
			}
			*back = append(*back, localEdge{id: newID, rev: edge.rev})
			*newIn = append(*newIn, localEdge{id: edge.id, rev: edge.rev})
		}
	}

	if addReversing {
		*oldOut = append(*oldOut, localEdge{id: newID, rev: true})
		*newOut = append(*newOut, localEdge{id: p1.ID, rev: true})
		*newOut = append(*newOut, localEdge{id: newID, rev: true})
	}

	if addLooping {
		*oldOut = append(*oldOut, localEdge{id: newID})
		*newIn = append(*newIn, localEdge{id: p1.ID})
		*newOut = append(*newOut, localEdge{id: newID})
		*newIn = append(*newIn, localEdge{id: newID})
	}

	e.idTrans[newID] = p1.ID
	e.nextID++
}
