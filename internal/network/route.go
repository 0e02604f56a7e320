package network

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/lvlath/dijkstra"
	"github.com/paulmach/orb"
)

// RouteResult is the outcome of one routing query.
type RouteResult struct {
	// Path runs from source to target over graph nodes.
	Path []Coordinate
	// Distance is the sum of edge weights along Path in kilometres.
	Distance float64
	// Segments holds the sorted, unique names of every segment that the
	// straight lines between consecutive path nodes touch.
	Segments []string
	// AvailableFrom is the latest commissioning year among those segments.
	AvailableFrom Year
}

// ShortestPath runs Dijkstra from source to target and returns the node
// sequence and its total weight. The search works on millimetre costs;
// among predecessors that lie on an equally short path the smallest
// coordinate is taken, so the result is deterministic.
func ShortestPath(g *Graph, source, target Coordinate) ([]Coordinate, float64, error) {
	if !g.HasNode(source) {
		return nil, 0, fmt.Errorf("%w: source %s", ErrNodeNotFound, source)
	}
	if !g.HasNode(target) {
		return nil, 0, fmt.Errorf("%w: target %s", ErrNodeNotFound, target)
	}
	if source == target {
		return []Coordinate{source}, 0, nil
	}

	dist, prev, err := dijkstra.Dijkstra(g.core, dijkstra.Source(source.String()), dijkstra.WithReturnPath())
	if err != nil {
		return nil, 0, fmt.Errorf("searching from %s: %w", source, err)
	}
	if d, ok := dist[target.String()]; !ok || d == math.MaxInt64 {
		return nil, 0, fmt.Errorf("%w: %s to %s", ErrNoPathFound, source, target)
	}

	path := []Coordinate{target}
	var distance float64
	for current := target; current != source; {
		next, ok := g.predecessor(current, dist, prev)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s to %s", ErrNoPathFound, source, target)
		}
		w, _ := g.Weight(next, current)
		distance += w
		path = append(path, next)
		current = next
	}
	slices.Reverse(path)
	return path, distance, nil
}

// predecessor picks the smallest neighbour of node that sits on a
// shortest path to it, falling back to the search's own predecessor.
func (g *Graph) predecessor(node Coordinate, dist map[string]int64, prev map[string]string) (Coordinate, bool) {
	want := dist[node.String()]
	for _, n := range g.Neighbors(node) {
		d, ok := dist[n.String()]
		if !ok || d == math.MaxInt64 {
			continue
		}
		w, _ := g.Weight(n, node)
		if d+edgeCost(w) == want {
			return n, true
		}
	}
	c, ok := g.ids[prev[node.String()]]
	return c, ok
}

// Route finds the shortest path and derives its metadata by testing each
// straight path step against the lines of every segment. A segment that
// merely touches a step counts as traversed.
func Route(ctx context.Context, g *Graph, segments []Segment, source, target Coordinate) (*RouteResult, error) {
	path, distance, err := ShortestPath(g, source, target)
	if err != nil {
		return nil, err
	}

	bounds := make([]orb.Bound, len(segments))
	for j, segment := range segments {
		bounds[j] = segment.Bound()
	}

	matched := make([]bool, len(segments))
	for i := 0; i+1 < len(path); i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scanning route segments: %w", err)
		}
		a, b := path[i].Point(), path[i+1].Point()
		bound := orb.LineString{a, b}.Bound()
		for j, segment := range segments {
			if matched[j] {
				continue
			}
			if !bound.Intersects(bounds[j]) {
				continue
			}
			matched[j] = intersectsSegment(a, b, bound, segment)
		}
	}

	result := &RouteResult{Path: path, Distance: distance, Segments: []string{}}
	for j, segment := range segments {
		if !matched[j] {
			continue
		}
		result.Segments = append(result.Segments, segment.Name)
		if segment.Year.Valid && (!result.AvailableFrom.Valid || segment.Year.Value > result.AvailableFrom.Value) {
			result.AvailableFrom = segment.Year
		}
	}
	slices.Sort(result.Segments)
	result.Segments = slices.Compact(result.Segments)
	return result, nil
}
