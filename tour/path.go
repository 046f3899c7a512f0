// File: path.go
// Role: Path, an uninterrupted depot-free-interior node sequence, used for
// the nodes a Tour gains or loses during a mutation.
//
// Grounded on: original_source/solution/src/path.rs (Path::new,
// new_trusted, new_from_single_node, drop_first, drop_last).
package tour

import (
	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/network"
)

// Path is a sequence of nodes forming a path in the network. Unlike Tour it
// need not start or end at a depot, but it must contain at least one
// non-depot node and no intermediate depots (implied by being a path
// through depot-free service/maintenance nodes).
type Path struct {
	nodes []basetypes.NodeIdx
	nw    *network.Network
}

// NewPath validates that every consecutive pair is reachable and that the
// sequence contains at least one non-depot node.
func NewPath(nodes []basetypes.NodeIdx, nw *network.Network) (*Path, error) {
	for i := 0; i+1 < len(nodes); i++ {
		if !nw.CanReach(nodes[i], nodes[i+1]) {
			return nil, &NotReachableError{A: nodes[i], B: nodes[i+1]}
		}
	}
	p := newTrusted(nodes, nw)
	if p == nil {
		return nil, ErrOnlyDepotsInPath
	}
	return p, nil
}

// newTrusted builds a Path without re-checking reachability. Returns nil if
// the sequence has no non-depot node.
func newTrusted(nodes []basetypes.NodeIdx, nw *network.Network) *Path {
	if len(nodes) == 0 {
		return nil
	}
	hasNonDepot := false
	for _, idx := range nodes {
		if !nw.Node(idx).IsDepot() {
			hasNonDepot = true
			break
		}
	}
	if !hasNonDepot {
		return nil
	}
	return &Path{nodes: cloneNodes(nodes), nw: nw}
}

// NewFromSingleNode builds a one-node Path. node must not be a depot.
func NewFromSingleNode(node basetypes.NodeIdx, nw *network.Network) *Path {
	if nw.Node(node).IsDepot() {
		panic("tour: NewFromSingleNode called with a depot node")
	}
	return &Path{nodes: []basetypes.NodeIdx{node}, nw: nw}
}

// Iter returns the node sequence, a defensive copy.
func (p *Path) Iter() []basetypes.NodeIdx { return cloneNodes(p.nodes) }

// Len reports the number of nodes in the path.
func (p *Path) Len() int { return len(p.nodes) }

// First returns the path's first node.
func (p *Path) First() basetypes.NodeIdx { return p.nodes[0] }

// Last returns the path's last node.
func (p *Path) Last() basetypes.NodeIdx { return p.nodes[len(p.nodes)-1] }

// DropFirst returns the path without its first node, or nil if no non-depot
// node remains.
func (p *Path) DropFirst() *Path {
	return newTrusted(p.nodes[1:], p.nw)
}

// DropLast returns the path without its last node, or nil if no non-depot
// node remains.
func (p *Path) DropLast() *Path {
	return newTrusted(p.nodes[:len(p.nodes)-1], p.nw)
}

// SplitAfter divides p after position pos (0-indexed, inclusive): head
// holds nodes[0..=pos], tail holds the rest (nil if nothing remains).
func SplitAfter(p *Path, pos int) (head *Path, tail *Path) {
	head = newTrusted(p.nodes[:pos+1], p.nw)
	tail = newTrusted(p.nodes[pos+1:], p.nw)
	return head, tail
}

func cloneNodes(s []basetypes.NodeIdx) []basetypes.NodeIdx {
	out := make([]basetypes.NodeIdx, len(s))
	copy(out, s)
	return out
}
