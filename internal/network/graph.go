package network

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
)

// EdgeWeightPolicy decides which weight survives when several segments
// produce an edge between the same pair of nodes.
type EdgeWeightPolicy int

const (
	// LastWriteWins keeps the weight of the last segment that touched the
	// pair. It can keep a non-minimal weight when snapping merged slightly
	// different physical paths.
	LastWriteWins EdgeWeightPolicy = iota
	// MinimumWeight keeps the smallest weight seen for the pair.
	MinimumWeight
)

func (p EdgeWeightPolicy) String() string {
	switch p {
	case MinimumWeight:
		return "min"
	default:
		return "last"
	}
}

// ParseEdgeWeightPolicy accepts "last" or "min".
func ParseEdgeWeightPolicy(s string) (EdgeWeightPolicy, error) {
	switch s {
	case "", "last":
		return LastWriteWins, nil
	case "min":
		return MinimumWeight, nil
	default:
		return LastWriteWins, fmt.Errorf("unknown edge weight policy %q", s)
	}
}

type buildOptions struct {
	weights EdgeWeightPolicy
}

// BuildOption configures BuildGraph and BuildNetwork.
type BuildOption func(*buildOptions)

// WithEdgeWeightPolicy selects how repeated edges are resolved.
func WithEdgeWeightPolicy(policy EdgeWeightPolicy) BuildOption {
	return func(o *buildOptions) {
		o.weights = policy
	}
}

// BuildStats describes what BuildGraph kept and dropped.
type BuildStats struct {
	Segments           int
	RawCoordinates     int
	CanonicalNodes     int
	Components         int
	DiscardedNodes     int
	DiscardedEdges     int
	OverwrittenEdges   int
	ConflictingWeights int
}

// edgeKey names an undirected edge with its endpoints in coordinate order.
type edgeKey struct {
	a, b Coordinate
}

func makeEdgeKey(a, b Coordinate) edgeKey {
	if b.Less(a) {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// edgeWeights collects edges while segments are scanned, before the
// graph itself is assembled.
type edgeWeights map[edgeKey]float64

// set stores the weight of a-b and reports the weight it replaced.
func (e edgeWeights) set(a, b Coordinate, weight float64) (previous float64, existed bool) {
	key := makeEdgeKey(a, b)
	previous, existed = e[key]
	e[key] = weight
	return previous, existed
}

// costUnits converts kilometre weights into the integer costs the
// shortest path search works with (millimetres).
const costUnits = 1e6

func edgeCost(weight float64) int64 {
	cost := int64(math.Round(weight * costUnits))
	if cost < 1 {
		cost = 1
	}
	return cost
}

// Graph is an undirected weighted graph over canonical coordinates. Edge
// weights are great-circle distances in kilometres. Topology lives in an
// lvlath graph whose vertex IDs are Coordinate.String() values.
type Graph struct {
	core    *core.Graph
	ids     map[string]Coordinate
	weights edgeWeights
	nodes   []Coordinate
}

func newGraph(edges edgeWeights) (*Graph, error) {
	g := &Graph{
		core:    core.NewGraph(core.WithWeighted()),
		ids:     make(map[string]Coordinate),
		weights: make(edgeWeights, len(edges)),
	}
	keys := make([]edgeKey, 0, len(edges))
	for key := range edges {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(x, y edgeKey) int {
		if c := compareCoordinates(x.a, y.a); c != 0 {
			return c
		}
		return compareCoordinates(x.b, y.b)
	})
	for _, key := range keys {
		weight := edges[key]
		for _, c := range []Coordinate{key.a, key.b} {
			if _, ok := g.ids[c.String()]; ok {
				continue
			}
			if err := g.core.AddVertex(c.String()); err != nil {
				return nil, fmt.Errorf("adding node %s: %w", c, err)
			}
			g.ids[c.String()] = c
			g.nodes = append(g.nodes, c)
		}
		if _, err := g.core.AddEdge(key.a.String(), key.b.String(), edgeCost(weight)); err != nil {
			return nil, fmt.Errorf("adding edge %s-%s: %w", key.a, key.b, err)
		}
		g.weights[key] = weight
	}
	slices.SortFunc(g.nodes, compareCoordinates)
	return g, nil
}

// Nodes returns the graph nodes in sorted order. The slice must not be modified.
func (g *Graph) Nodes() []Coordinate {
	return g.nodes
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	return len(g.weights)
}

func (g *Graph) HasNode(c Coordinate) bool {
	_, ok := g.ids[c.String()]
	return ok
}

// Weight returns the weight of the edge a-b.
func (g *Graph) Weight(a, b Coordinate) (float64, bool) {
	w, ok := g.weights[makeEdgeKey(a, b)]
	return w, ok
}

// Neighbors returns the adjacent nodes of c in sorted order.
func (g *Graph) Neighbors(c Coordinate) []Coordinate {
	if !g.HasNode(c) {
		return nil
	}
	id := c.String()
	edges, err := g.core.Neighbors(id)
	if err != nil {
		return nil
	}
	neighbors := make([]Coordinate, 0, len(edges))
	for _, e := range edges {
		other := e.To
		if other == id {
			other = e.From
		}
		neighbors = append(neighbors, g.ids[other])
	}
	slices.SortFunc(neighbors, compareCoordinates)
	return slices.CompactFunc(neighbors, func(x, y Coordinate) bool { return x == y })
}

// ConnectedComponents returns the components of g. Each component is
// sorted and components are ordered by their smallest node.
func (g *Graph) ConnectedComponents() ([][]Coordinate, error) {
	visited := make(map[Coordinate]bool, len(g.nodes))
	var components [][]Coordinate
	for _, start := range g.nodes {
		if visited[start] {
			continue
		}
		res, err := bfs.BFS(g.core, start.String())
		if err != nil {
			return nil, fmt.Errorf("walking component of %s: %w", start, err)
		}
		component := make([]Coordinate, 0, len(res.Order))
		for _, id := range res.Order {
			c := g.ids[id]
			visited[c] = true
			component = append(component, c)
		}
		slices.SortFunc(component, compareCoordinates)
		components = append(components, component)
	}
	return components, nil
}

// subgraph returns a copy of g restricted to nodes.
func (g *Graph) subgraph(nodes []Coordinate) (*Graph, error) {
	keep := make(map[Coordinate]bool, len(nodes))
	for _, n := range nodes {
		keep[n] = true
	}
	edges := make(edgeWeights)
	for key, w := range g.weights {
		if keep[key.a] && keep[key.b] {
			edges[key] = w
		}
	}
	return newGraph(edges)
}

// BuildGraph maps every segment line through canonical and connects
// consecutive canonical coordinates. Only the largest connected component
// is returned; on equal sizes the component holding the smallest
// coordinate wins.
func BuildGraph(segments []Segment, canonical CanonicalMap, opts ...BuildOption) (*Graph, BuildStats, error) {
	options := buildOptions{weights: LastWriteWins}
	for _, opt := range opts {
		opt(&options)
	}

	stats := BuildStats{Segments: len(segments)}
	edges := make(edgeWeights)

	for i, segment := range segments {
		if len(segment.Lines) == 0 {
			return nil, stats, fmt.Errorf("%w: segment %d (%s) has no lines", ErrInvalidGeometry, i, segment.Name)
		}
		for j, line := range segment.Lines {
			if len(line) < 2 {
				return nil, stats, fmt.Errorf("%w: segment %d (%s) line %d has %d coordinate(s)",
					ErrInvalidGeometry, i, segment.Name, j, len(line))
			}
			nodes := make([]Coordinate, len(line))
			for k, p := range line {
				raw := FromPoint(p)
				node, ok := canonical.Canonical(raw)
				if !ok {
					return nil, stats, fmt.Errorf("%w: segment %d (%s) coordinate %s missing from canonical map",
						ErrInvalidGeometry, i, segment.Name, raw)
				}
				nodes[k] = node
			}
			for k := 0; k+1 < len(nodes); k++ {
				a, b := nodes[k], nodes[k+1]
				if a == b {
					continue
				}
				weight := GeodesicDistance(a, b)
				if options.weights == MinimumWeight {
					if existing, ok := edges[makeEdgeKey(a, b)]; ok && existing <= weight {
						weight = existing
					}
				}
				previous, existed := edges.set(a, b, weight)
				if existed {
					stats.OverwrittenEdges++
					if previous != weight {
						stats.ConflictingWeights++
					}
				}
			}
		}
	}

	if len(edges) == 0 {
		return nil, stats, fmt.Errorf("%w: %d segment(s) produced no edges", ErrEmptyGraph, len(segments))
	}
	full, err := newGraph(edges)
	if err != nil {
		return nil, stats, err
	}

	components, err := full.ConnectedComponents()
	if err != nil {
		return nil, stats, err
	}
	largest := components[0]
	for _, component := range components[1:] {
		if len(component) > len(largest) {
			largest = component
		}
	}

	g, err := full.subgraph(largest)
	if err != nil {
		return nil, stats, err
	}
	stats.Components = len(components)
	stats.CanonicalNodes = full.NodeCount()
	stats.DiscardedNodes = full.NodeCount() - g.NodeCount()
	stats.DiscardedEdges = full.EdgeCount() - g.EdgeCount()
	return g, stats, nil
}
