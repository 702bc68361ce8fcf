// Package handlegraph defines the oriented-node ("handle") view of a
// bidirected sequence graph: nodes carry DNA sequences, edges connect
// node sides, and a handle names one node on one strand. Algorithms
// consume graphs through the HandleGraph capability so they never
// depend on how a graph is stored.
package handlegraph

// Handle is an oriented reference to a node: a node id plus the strand
// it is being traversed on.
type Handle struct {
	id  int64
	rev bool
}

// New returns the handle for a node id on the given strand.
func New(id int64, rev bool) Handle {
	return Handle{id: id, rev: rev}
}

// ID returns the node id the handle refers to.
func (h Handle) ID() int64 {
	return h.id
}

// IsReverse reports whether the handle is on the reverse strand.
func (h Handle) IsReverse() bool {
	return h.rev
}

// Flip returns the same node on the opposite strand.
func (h Handle) Flip() Handle {
	return Handle{id: h.id, rev: !h.rev}
}

// Forward returns the locally-forward orientation of the node.
func (h Handle) Forward() Handle {
	return Handle{id: h.id}
}

// Less orders handles by id, forward strand first.
func (h Handle) Less(o Handle) bool {
	if h.id != o.id {
		return h.id < o.id
	}
	return !h.rev && o.rev
}

// Edge is an ordered pair of handles: a traversal leaving the right
// side of From arrives on the left side of To.
type Edge struct {
	From, To Handle
}

// CanonicalEdge maps the traversals a->b and flip(b)->flip(a), which
// cross the same edge, to a single canonical value.
func CanonicalEdge(a, b Handle) Edge {
	flipped := Edge{From: b.Flip(), To: a.Flip()}
	if flipped.From.Less(a) || (flipped.From == a && flipped.To.Less(b)) {
		return flipped
	}
	return Edge{From: a, To: b}
}

// HandleGraph is the read capability over a bidirected sequence graph.
// Handle lookup and orientation queries live on the Handle type itself
// and edge canonicalization in CanonicalEdge; the graph supplies
// sequences and adjacency.
type HandleGraph interface {
	// NodeCount returns the number of nodes in the graph.
	NodeCount() int

	// HasNode reports whether a node with the given id exists.
	HasNode(id int64) bool

	// Sequence returns the node sequence in the orientation of h.
	Sequence(h Handle) string

	// FollowEdges invokes fn for each edge leaving h: rightward
	// continuations when left is false, leftward when left is true.
	// Iteration stops early if fn returns false; the return value
	// reports whether iteration ran to completion.
	FollowEdges(h Handle, left bool, fn func(Handle) bool) bool

	// ForEachHandle invokes fn with the forward handle of every node,
	// in ascending id order. Iteration stops early if fn returns
	// false; the return value reports whether it ran to completion.
	ForEachHandle(fn func(Handle) bool) bool
}

var complement = [256]byte{
	'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C',
	'a': 't', 't': 'a', 'c': 'g', 'g': 'c',
	'N': 'N', 'n': 'n',
}

// ReverseComplement returns the reverse complement of a DNA sequence.
// Characters without a defined complement pass through unchanged.
func ReverseComplement(seq string) string {
	rc := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c := complement[seq[len(seq)-1-i]]
		if c == 0 {
			c = seq[len(seq)-1-i]
		}
		rc[i] = c
	}
	return string(rc)
}
