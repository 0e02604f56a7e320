package network

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
)

// Snap is the result of a nearest-node lookup.
type Snap struct {
	Query Coordinate
	Node  Coordinate
	// Distance is the Euclidean offset in degrees between Query and Node.
	Distance float64
	// Ambiguous is set when another node is exactly as close as Node.
	Ambiguous bool
}

// Err returns ErrAmbiguousSnap for ambiguous snaps and nil otherwise.
func (s Snap) Err() error {
	if s.Ambiguous {
		return fmt.Errorf("%w: %s", ErrAmbiguousSnap, s.Query)
	}
	return nil
}

// NodeLocator finds the graph node closest to an arbitrary point. The
// index is built once per Graph and is safe for concurrent reads.
type NodeLocator struct {
	tree  *quadtree.Quadtree
	nodes int
}

// NewNodeLocator indexes the nodes of g.
func NewNodeLocator(g *Graph) (*NodeLocator, error) {
	if g == nil || g.NodeCount() == 0 {
		return nil, ErrEmptyGraph
	}
	tree, err := newPointIndex(g.Nodes(), 0)
	if err != nil {
		return nil, err
	}
	return &NodeLocator{tree: tree, nodes: g.NodeCount()}, nil
}

// Nearest returns the node closest to query in degree space. Queries far
// outside the indexed area still resolve to the closest node. When several
// nodes are equidistant one of them is returned and the snap is flagged
// ambiguous; which one is not specified.
func (l *NodeLocator) Nearest(query Coordinate) (Snap, error) {
	found := l.tree.KNearest(nil, query.Point(), 2)
	if len(found) == 0 {
		return Snap{}, ErrEmptyGraph
	}
	slices.SortFunc(found, func(a, b orb.Pointer) int {
		return cmp.Compare(PlanarDistance(query, a.(Coordinate)), PlanarDistance(query, b.(Coordinate)))
	})

	node := found[0].(Coordinate)
	snap := Snap{
		Query:    query,
		Node:     node,
		Distance: PlanarDistance(query, node),
	}
	if len(found) > 1 && PlanarDistance(query, found[1].(Coordinate)) == snap.Distance {
		snap.Ambiguous = true
	}
	return snap, nil
}
