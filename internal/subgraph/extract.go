// Package subgraph extracts the subgraph of a bidirected sequence graph
// that connects two oriented positions within a distance bound. The
// endpoint positions become tips in the extracted graph, cycles through
// the endpoint nodes can be preserved by duplicating them, and three
// pruning policies trim material that is off every (short enough) path.
package subgraph

import (
	"log"
	"os"

	"github.com/seqslice/seqslice/internal/handlegraph"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Options are the knobs of a connecting-subgraph extraction.
type Options struct {
	// keep the bases at the endpoint positions themselves
	IncludeTerminalPositions bool

	// duplicate the endpoint nodes so cycles through them survive
	// the cutting step
	DetectTerminalCycles bool

	// prune any node that would be a new tip in the result
	NoAdditionalTips bool

	// prune nodes and edges that lie on no path between the endpoints
	OnlyPaths bool

	// prune nodes and edges whose every path between the endpoints
	// is longer than the distance bound
	StrictMaxLen bool
}

// Builder is the surface the extracted graph is written to. AddEdge's
// fromStart means the edge exits the from-node's left side; toEnd means
// it enters the to-node's right side.
type Builder interface {
	NodeCount() int
	EdgeCount() int
	AddNode(id int64, seq string)
	AddEdge(from, to int64, fromStart, toEnd bool)
}

// extractor carries the state of one extraction: the internal
// edge-mirrored node map, the id translator being built, and the ids of
// any endpoint duplicates made for cycle preservation.
type extractor struct {
	source handlegraph.HandleGraph
	maxLen int64
	pos1   Pos
	pos2   Pos
	opts   Options
	colo   colocation

	graph    map[int64]*localNode
	idTrans  map[int64]int64
	observed map[handlegraph.Edge]bool

	maxID  int64
	nextID int64
	dup1   int64
	dup2   int64
}

// ExtractConnecting copies into out the subgraph of source connecting
// pos1 to pos2 by walks of at most maxLen total sequence length, and
// returns a translator from the ids in out back to source ids. If no
// such walk exists, out is left empty and the translator is empty.
//
// out must be empty; extracting into a non-empty graph is a fatal
// programming error.
func ExtractConnecting(source handlegraph.HandleGraph, out Builder, maxLen int64,
	pos1, pos2 Pos, opts Options) map[int64]int64 {
	if out.NodeCount() > 0 || out.EdgeCount() > 0 {
		stderr.Fatal("error: a connecting subgraph must be extracted into an empty graph")
	}

	e := &extractor{
		source:   source,
		maxLen:   maxLen,
		pos1:     pos1,
		pos2:     pos2,
		opts:     opts,
		colo:     classify(pos1, pos2, opts.IncludeTerminalPositions),
		graph:    make(map[int64]*localNode),
		idTrans:  make(map[int64]int64),
		observed: make(map[handlegraph.Edge]bool),
	}

	e.maxID = pos1.ID
	if pos2.ID > e.maxID {
		e.maxID = pos2.ID
	}
	e.graph[pos1.ID] = &localNode{seq: source.Sequence(handlegraph.New(pos1.ID, false))}
	if pos2.ID != pos1.ID {
		e.graph[pos2.ID] = &localNode{seq: source.Sequence(handlegraph.New(pos2.ID, false))}
	}

	// no walk between the positions under the bound: leave out empty
	if !e.forwardSearch() {
		return e.idTrans
	}

	e.backwardSearch()

	e.nextID = e.maxID + 1
	if opts.DetectTerminalCycles {
		e.duplicateTerminalNodes()
	}

	e.cutTerminalNodes()

	switch {
	case opts.StrictMaxLen:
		e.pruneStrict()
	case opts.OnlyPaths:
		e.pruneToPaths()
	case opts.NoAdditionalTips:
		e.pruneTips()
	}

	e.emit(out)
	return e.idTrans
}

// outEdges returns the side list a traversal on the given strand leaves
// from; inEdges the side list it arrives on.
func outEdges(n *localNode, rev bool) *[]localEdge {
	if rev {
		return &n.left
	}
	return &n.right
}

func inEdges(n *localNode, rev bool) *[]localEdge {
	if rev {
		return &n.right
	}
	return &n.left
}

// forwardSearch grows the internal node map outward from pos1 along a
// Dijkstra tree, bounded so that the remaining budget can still cover
// the final approach to pos2. It reports whether pos2's oriented handle
// was reached.
func (e *extractor) forwardSearch() bool {
	// both positions on the same node with the second ahead of the
	// first: reachability is a plain offset comparison, and the search
	// itself runs (if at all) only backward for cycle detection
	if e.colo == sharedNodeReachable {
		return e.pos2.Off-e.pos1.Off <= e.maxLen
	}

	firstTravLen := int64(len(e.graph[e.pos1.ID].seq)) - e.pos1.Off
	forwardMaxLen := e.maxLen - e.pos2.Off

	// never walk out of the start position's handle again, and stop at
	// the target unless its own cycles can only be found through it
	skip := map[handlegraph.Handle]bool{
		handlegraph.New(e.pos1.ID, e.pos1.Rev): true,
	}
	if !(e.colo == sharedNodeReverse && e.opts.DetectTerminalCycles) {
		skip[handlegraph.New(e.pos2.ID, e.pos2.Rev)] = true
	}

	queue := newFilteredQueue()
	if firstTravLen <= forwardMaxLen {
		queue.push(handlegraph.New(e.pos1.ID, e.pos1.Rev), firstTravLen)
	}

	found := false
	for !queue.empty() {
		trav := queue.pop()
		e.search(queue, trav, skip, forwardMaxLen, func(next handlegraph.Handle) {
			if next.ID() == e.pos2.ID && next.IsReverse() == e.pos2.Rev {
				found = true
			}
		})
	}
	return found
}

// backwardSearch runs the symmetric search from the far side of pos2 to
// pick up cycles on the terminal node. It only runs when cycles are
// wanted and the colocation leaves anything new to find.
func (e *extractor) backwardSearch() {
	if !e.opts.DetectTerminalCycles {
		return
	}
	if e.colo != separateNodes && e.colo != sharedNodeReachable {
		return
	}

	lastTravLen := e.pos2.Off
	backwardMaxLen := e.maxLen - (int64(len(e.graph[e.pos1.ID].seq)) - e.pos1.Off)

	skip := map[handlegraph.Handle]bool{
		handlegraph.New(e.pos2.ID, !e.pos2.Rev): true,
		handlegraph.New(e.pos1.ID, !e.pos1.Rev): true,
	}

	queue := newFilteredQueue()
	if lastTravLen <= backwardMaxLen {
		queue.push(handlegraph.New(e.pos2.ID, !e.pos2.Rev), lastTravLen)
	}

	for !queue.empty() {
		trav := queue.pop()
		e.search(queue, trav, skip, backwardMaxLen, nil)
	}
}

// search expands one traversal: it materializes newly seen neighbors,
// re-enqueues the ones still within budget, and records each canonical
// edge once on both endpoints' side lists (once, for a reversing
// self-loop). onNeighbor, when set, observes every neighbor handle.
func (e *extractor) search(queue *filteredQueue, trav traversal,
	skip map[handlegraph.Handle]bool, budget int64, onNeighbor func(handlegraph.Handle)) {
	cur := trav.handle
	e.source.FollowEdges(cur, false, func(next handlegraph.Handle) bool {
		nextID := next.ID()
		nextRev := next.IsReverse()

		if onNeighbor != nil {
			onNeighbor(next)
		}
		if nextID > e.maxID {
			e.maxID = nextID
		}

		n, ok := e.graph[nextID]
		if !ok {
			n = &localNode{seq: e.source.Sequence(next.Forward())}
			e.graph[nextID] = n
		}

		// distance to the far side of the neighbor
		distThru := trav.dist + int64(len(n.seq))
		if !skip[next] && distThru <= budget {
			queue.push(next, distThru)
		}

		reversing := cur.IsReverse() != nextRev
		canonical := handlegraph.CanonicalEdge(cur, next)
		if !e.observed[canonical] {
			e.observed[canonical] = true
			out := outEdges(e.graph[cur.ID()], cur.IsReverse())
			in := inEdges(n, nextRev)
			*out = append(*out, localEdge{id: nextID, rev: reversing})
			// a reversing self-loop lives once on its side
			if !(cur.ID() == nextID && reversing) {
				*in = append(*in, localEdge{id: cur.ID(), rev: reversing})
			}
		}
		return true
	})
}

// emit writes the surviving internal nodes and edges to the builder and
// completes the id translator with identity entries.
func (e *extractor) emit(out Builder) {
	ids := sortedIDs(e.graph)
	for _, id := range ids {
		if _, ok := e.idTrans[id]; !ok {
			e.idTrans[id] = id
		}
		out.AddNode(id, e.graph[id].seq)
	}
	for _, id := range ids {
		n := e.graph[id]
		// break symmetry on each edge so it is emitted from exactly
		// one of its two side lists
		for _, edge := range n.left {
			if edge.id > id || (edge.id == id && edge.rev) {
				out.AddEdge(id, edge.id, true, !edge.rev)
			}
		}
		for _, edge := range n.right {
			if edge.id >= id {
				out.AddEdge(id, edge.id, false, edge.rev)
			}
		}
	}
}
