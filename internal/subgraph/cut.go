package subgraph

// Node cutting. The endpoint nodes are trimmed to the offsets and
// stripped of their outward edges so that the two positions become tips
// of the extracted graph. Mirror entries on the neighbors are removed
// alongside, keeping every side list consistent.

func (e *extractor) cutTerminalNodes() {
	switch e.colo {
	case separateNodes:
		e.cutSeparate()
	case sharedNodeReachable:
		e.cutSharedReachable()
	case sharedNodeUnreachable:
		e.cutSharedUnreachable()
	case sharedNodeReverse:
		e.cutSharedReverse()
	}
}

// cutSeparate strips the outward side of each endpoint node and trims
// each sequence to the part facing the partner position.
func (e *extractor) cutSeparate() {
	p1, p2 := e.pos1, e.pos2
	incl := e.opts.IncludeTerminalPositions
	n1 := e.graph[p1.ID]
	n2 := e.graph[p2.ID]
	out1 := inEdges(n1, p1.Rev)
	out2 := outEdges(n2, p2.Rev)

	for _, edge := range *out1 {
		if edge.id == p1.ID && edge.rev {
			// reversing self-loop, stored once; nothing to mirror
			continue
		}
		next := e.graph[edge.id]
		back := &next.right
		if p1.Rev != edge.rev {
			back = &next.left
		}
		removeEdge(back, localEdge{id: p1.ID, rev: edge.rev})
	}
	for _, edge := range *out2 {
		if edge.id == p2.ID && edge.rev {
			continue
		}
		next := e.graph[edge.id]
		back := &next.left
		if p2.Rev != edge.rev {
			back = &next.right
		}
		removeEdge(back, localEdge{id: p2.ID, rev: edge.rev})
	}
	*out1 = nil
	*out2 = nil

	n1.seq = trimmedSeqRight(n1.seq, p1.Off, p1.Rev, incl)
	n2.seq = trimmedSeqLeft(n2.seq, p2.Off, p2.Rev, incl)
}

// cutSharedReachable strips both sides of the shared node (duplication
// already rehoused any cycles) and trims the sequence to the span
// between the two offsets.
func (e *extractor) cutSharedReachable() {
	p1, p2 := e.pos1, e.pos2
	t := terminal(e.opts.IncludeTerminalPositions)
	n := e.graph[p1.ID]

	for _, edge := range n.right {
		if edge.id == p1.ID && edge.rev {
			continue
		}
		next := e.graph[edge.id]
		back := &next.left
		if edge.rev {
			back = &next.right
		}
		removeEdge(back, localEdge{id: p1.ID, rev: edge.rev})
	}
	for _, edge := range n.left {
		if edge.id == p2.ID && edge.rev {
			continue
		}
		next := e.graph[edge.id]
		back := &next.right
		if edge.rev {
			back = &next.left
		}
		removeEdge(back, localEdge{id: p2.ID, rev: edge.rev})
	}
	n.right = nil
	n.left = nil

	span := p2.Off - p1.Off - 1 + 2*t
	if p1.Rev {
		start := int64(len(n.seq)) - p2.Off - t
		n.seq = n.seq[start : start+span]
	} else {
		start := p1.Off + 1 - t
		n.seq = n.seq[start : start+span]
	}
}

// cutSharedUnreachable splits the shared node in two: the right-side
// edges move to a fresh node, one half serves pos1 and the other pos2,
// and whichever position the fresh node serves is redirected to it.
func (e *extractor) cutSharedUnreachable() {
	p1 := e.pos1
	incl := e.opts.IncludeTerminalPositions
	n := e.graph[p1.ID]

	newID := e.nextID
	clone := &localNode{seq: n.seq, right: n.right}
	n.right = nil
	e.graph[newID] = clone

	// relabel the mirror entries pointing back into the moved side
	for _, edge := range clone.right {
		next := e.graph[edge.id]
		back := &next.left
		if edge.rev {
			back = &next.right
		}
		for j := range *back {
			if (*back)[j].id == p1.ID {
				(*back)[j].id = newID
				break
			}
		}
	}

	if p1.Rev {
		e.idTrans[newID] = e.pos2.ID
		e.pos2.ID = newID
		n.seq = trimmedSeqRight(n.seq, e.pos1.Off, e.pos1.Rev, incl)
		clone.seq = trimmedSeqLeft(clone.seq, e.pos2.Off, e.pos2.Rev, incl)
	} else {
		e.idTrans[newID] = e.pos1.ID
		e.pos1.ID = newID
		clone.seq = trimmedSeqRight(clone.seq, e.pos1.Off, e.pos1.Rev, incl)
		n.seq = trimmedSeqLeft(n.seq, e.pos2.Off, e.pos2.Rev, incl)
	}

	e.nextID++
}

// cutSharedReverse strips the incoming side of the shared node, clones
// it into a sink that takes over the outgoing edges, and redirects pos2
// onto the clone.
func (e *extractor) cutSharedReverse() {
	p1 := e.pos1
	incl := e.opts.IncludeTerminalPositions
	n := e.graph[p1.ID]

	in := inEdges(n, p1.Rev)
	for _, edge := range *in {
		if edge.id == p1.ID && edge.rev {
			continue
		}
		next := e.graph[edge.id]
		back := &next.right
		if p1.Rev != edge.rev {
			back = &next.left
		}
		removeEdge(back, localEdge{id: p1.ID, rev: edge.rev})
	}
	*in = nil

	newID := e.nextID
	clone := &localNode{seq: n.seq}
	e.graph[newID] = clone

	oldOut := outEdges(n, p1.Rev)
	newOut := outEdges(clone, p1.Rev)

	for i := range *oldOut {
		edge := &(*oldOut)[i]
		if edge.id == p1.ID {
			// the other side is already cleared, so this must be a
			// reversing self-loop; turn it into a connecting edge
			edge.id = newID
			*newOut = append(*newOut, localEdge{id: p1.ID, rev: edge.rev})
		} else {
			next := e.graph[edge.id]
			back := &next.left
			if p1.Rev != edge.rev {
				back = &next.right
			}
			*newOut = append(*newOut, localEdge{id: edge.id, rev: edge.rev})
			*back = append(*back, localEdge{id: newID, rev: edge.rev})
		}
	}

	e.idTrans[newID] = p1.ID
	e.pos2.ID = newID
	e.nextID++

	n.seq = trimmedSeqRight(n.seq, e.pos1.Off, e.pos1.Rev, incl)
	clone.seq = trimmedSeqLeft(clone.seq, e.pos2.Off, e.pos2.Rev, incl)
}
