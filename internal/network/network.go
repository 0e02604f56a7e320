package network

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
)

// Network is an immutable routing network built from a set of segments.
// It is safe for concurrent use.
type Network struct {
	segments  []Segment
	threshold float64
	canonical CanonicalMap
	graph     *Graph
	locator   *NodeLocator
	stats     BuildStats
	bound     orb.Bound
}

// BuildNetwork snaps the coordinates of segments within threshold, builds
// the graph over the largest connected component and indexes its nodes.
func BuildNetwork(segments []Segment, threshold float64, opts ...BuildOption) (*Network, error) {
	var coords []Coordinate
	for _, s := range segments {
		coords = append(coords, s.Coordinates()...)
	}

	canonical, err := BuildCanonicalMap(coords, threshold)
	if err != nil {
		return nil, err
	}

	g, stats, err := BuildGraph(segments, canonical, opts...)
	if err != nil {
		return nil, err
	}
	stats.RawCoordinates = len(coords)

	locator, err := NewNodeLocator(g)
	if err != nil {
		return nil, fmt.Errorf("indexing graph nodes: %w", err)
	}

	bound := g.Nodes()[0].Point().Bound()
	for _, n := range g.Nodes()[1:] {
		bound = bound.Extend(n.Point())
	}

	return &Network{
		segments:  segments,
		threshold: threshold,
		canonical: canonical,
		graph:     g,
		locator:   locator,
		stats:     stats,
		bound:     bound,
	}, nil
}

// FindNearestNode snaps c to the closest node of the network.
func (n *Network) FindNearestNode(c Coordinate) (Snap, error) {
	return n.locator.Nearest(c)
}

// ComputeRoute routes between two nodes of the network.
func (n *Network) ComputeRoute(ctx context.Context, start, end Coordinate) (*RouteResult, error) {
	return Route(ctx, n.graph, n.segments, start, end)
}

func (n *Network) Graph() *Graph {
	return n.graph
}

func (n *Network) CanonicalMap() CanonicalMap {
	return n.canonical
}

func (n *Network) Segments() []Segment {
	return n.segments
}

func (n *Network) Threshold() float64 {
	return n.threshold
}

func (n *Network) Stats() BuildStats {
	return n.stats
}

// Bound is the bounding box of the retained nodes.
func (n *Network) Bound() orb.Bound {
	return n.bound
}
