package network

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T, segments []Segment, threshold float64) *Graph {
	t.Helper()
	g, _, err := BuildGraph(segments, canonicalFor(t, segments, threshold))
	require.NoError(t, err)
	return g
}

func pathWeight(t *testing.T, g *Graph, path []Coordinate) float64 {
	t.Helper()
	var total float64
	for i := 0; i+1 < len(path); i++ {
		w, ok := g.Weight(path[i], path[i+1])
		require.True(t, ok, "no edge %s-%s", path[i], path[i+1])
		total += w
	}
	return total
}

func TestShortestPath(t *testing.T) {
	t.Run("follows the two legs of an L", func(t *testing.T) {
		segments := []Segment{
			segment("A", KnownYear(2030), line([2]float64{0, 0}, [2]float64{0, 1})),
			segment("B", KnownYear(2035), line([2]float64{0, 1}, [2]float64{1, 1})),
		}
		g := buildGraph(t, segments, 0.11)

		path, distance, err := ShortestPath(g, NewCoordinate(0, 0), NewCoordinate(1, 1))
		require.NoError(t, err)

		w1 := GeodesicDistance(NewCoordinate(0, 0), NewCoordinate(0, 1))
		w2 := GeodesicDistance(NewCoordinate(0, 1), NewCoordinate(1, 1))
		assert.Equal(t, coords([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 1}), path)
		assert.InDelta(t, w1+w2, distance, 1e-9)
	})

	t.Run("prefers the lighter route", func(t *testing.T) {
		segments := []Segment{
			segment("Around", Year{}, line([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 1})),
			segment("Across", Year{}, line([2]float64{0, 0}, [2]float64{1, 1})),
		}
		g := buildGraph(t, segments, 0)

		path, distance, err := ShortestPath(g, NewCoordinate(0, 0), NewCoordinate(1, 1))
		require.NoError(t, err)
		assert.Equal(t, coords([2]float64{0, 0}, [2]float64{1, 1}), path)
		assert.InDelta(t, pathWeight(t, g, path), distance, 1e-9)
	})

	t.Run("source equal to target is a single node path", func(t *testing.T) {
		g := buildGraph(t, []Segment{segment("A", Year{}, line([2]float64{0, 0}, [2]float64{1, 0}))}, 0)
		for _, n := range g.Nodes() {
			path, distance, err := ShortestPath(g, n, n)
			require.NoError(t, err)
			assert.Equal(t, []Coordinate{n}, path)
			assert.Zero(t, distance)
		}
	})

	t.Run("distance equals the sum of edge weights for every pair", func(t *testing.T) {
		segments := []Segment{
			segment("A", Year{}, line([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0}, [2]float64{3, 1})),
			segment("B", Year{}, line([2]float64{1, 0}, [2]float64{1, 1}, [2]float64{2, 1}, [2]float64{3, 1})),
			segment("C", Year{}, line([2]float64{2, 0}, [2]float64{2, 1})),
		}
		g := buildGraph(t, segments, 0)
		for _, source := range g.Nodes() {
			for _, target := range g.Nodes() {
				path, distance, err := ShortestPath(g, source, target)
				require.NoError(t, err, "%s to %s", source, target)
				assert.Equal(t, source, path[0])
				assert.Equal(t, target, path[len(path)-1])
				assert.InDelta(t, pathWeight(t, g, path), distance, 1e-9)
			}
		}
	})

	t.Run("unknown endpoints are rejected", func(t *testing.T) {
		g := buildGraph(t, []Segment{segment("A", Year{}, line([2]float64{0, 0}, [2]float64{1, 0}))}, 0)

		_, _, err := ShortestPath(g, NewCoordinate(5, 5), NewCoordinate(1, 0))
		assert.ErrorIs(t, err, ErrNodeNotFound)
		_, _, err = ShortestPath(g, NewCoordinate(0, 0), NewCoordinate(5, 5))
		assert.ErrorIs(t, err, ErrNodeNotFound)
	})

	t.Run("disconnected nodes have no path", func(t *testing.T) {
		edges := make(edgeWeights)
		edges.set(NewCoordinate(0, 0), NewCoordinate(1, 0), 1)
		edges.set(NewCoordinate(5, 0), NewCoordinate(6, 0), 1)
		g, err := newGraph(edges)
		require.NoError(t, err)

		_, _, err = ShortestPath(g, NewCoordinate(0, 0), NewCoordinate(6, 0))
		assert.ErrorIs(t, err, ErrNoPathFound)
	})

	t.Run("equal length detours resolve to the smaller coordinate", func(t *testing.T) {
		segments := []Segment{
			segment("North", Year{}, line([2]float64{-1, 0}, [2]float64{0, 1}, [2]float64{1, 0})),
			segment("South", Year{}, line([2]float64{-1, 0}, [2]float64{0, -1}, [2]float64{1, 0})),
		}
		g := buildGraph(t, segments, 0)

		for i := 0; i < 5; i++ {
			path, _, err := ShortestPath(g, NewCoordinate(-1, 0), NewCoordinate(1, 0))
			require.NoError(t, err)
			assert.Equal(t, coords([2]float64{-1, 0}, [2]float64{0, -1}, [2]float64{1, 0}), path)
		}
	})
}

func TestRoute(t *testing.T) {
	t.Run("reports traversed segments and the latest year", func(t *testing.T) {
		segments := []Segment{
			segment("A", KnownYear(2030), line([2]float64{0, 0}, [2]float64{0, 1})),
			segment("B", KnownYear(2035), line([2]float64{0, 1}, [2]float64{1, 1})),
			segment("Elsewhere", KnownYear(2050), line([2]float64{0, 1}, [2]float64{-1, 2})),
		}
		g := buildGraph(t, segments, 0.11)

		result, err := Route(context.Background(), g, segments, NewCoordinate(0, 0), NewCoordinate(1, 1))
		require.NoError(t, err)

		assert.Len(t, result.Path, 3)
		// Elsewhere touches the path at (0, 1).
		assert.Equal(t, []string{"A", "B", "Elsewhere"}, result.Segments)
		assert.Equal(t, KnownYear(2050), result.AvailableFrom)
	})

	t.Run("two traversed segments from 2030 and 2035 give 2035", func(t *testing.T) {
		segments := []Segment{
			segment("A", KnownYear(2030), line([2]float64{0, 0}, [2]float64{0, 1})),
			segment("B", KnownYear(2035), line([2]float64{0, 1}, [2]float64{1, 1})),
		}
		g := buildGraph(t, segments, 0.11)

		result, err := Route(context.Background(), g, segments, NewCoordinate(0, 0), NewCoordinate(1, 1))
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, result.Segments)
		assert.Equal(t, 2035, result.AvailableFrom.Value)
		assert.Equal(t, "2035", result.AvailableFrom.String())
	})

	t.Run("segments away from the path are not reported", func(t *testing.T) {
		segments := []Segment{
			segment("Main", KnownYear(2030), line([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0})),
			segment("Branch", KnownYear(2045), line([2]float64{1, 0}, [2]float64{1, 1})),
			segment("Parallel", KnownYear(2050), line([2]float64{0, 0.5}, [2]float64{0.9, 0.5})),
		}
		g := buildGraph(t, segments, 0)

		result, err := Route(context.Background(), g, segments, NewCoordinate(0, 0), NewCoordinate(2, 0))
		require.NoError(t, err)
		// Branch starts on the path, Parallel never meets it.
		assert.Equal(t, []string{"Branch", "Main"}, result.Segments)
		assert.Equal(t, KnownYear(2045), result.AvailableFrom)
	})

	t.Run("unknown years leave availability unknown", func(t *testing.T) {
		segments := []Segment{
			segment("A", Year{}, line([2]float64{0, 0}, [2]float64{1, 0})),
		}
		g := buildGraph(t, segments, 0)

		result, err := Route(context.Background(), g, segments, NewCoordinate(0, 0), NewCoordinate(1, 0))
		require.NoError(t, err)
		assert.False(t, result.AvailableFrom.Valid)
		assert.Equal(t, "unknown", result.AvailableFrom.String())
	})

	t.Run("names are reported once", func(t *testing.T) {
		segments := []Segment{
			segment("Same", KnownYear(2030), line([2]float64{0, 0}, [2]float64{1, 0})),
			segment("Same", KnownYear(2031), line([2]float64{1, 0}, [2]float64{2, 0})),
		}
		g := buildGraph(t, segments, 0)

		result, err := Route(context.Background(), g, segments, NewCoordinate(0, 0), NewCoordinate(2, 0))
		require.NoError(t, err)
		assert.Equal(t, []string{"Same"}, result.Segments)
		assert.Equal(t, KnownYear(2031), result.AvailableFrom)
	})

	t.Run("self route touches the segments at that node", func(t *testing.T) {
		segments := []Segment{segment("A", KnownYear(2030), line([2]float64{0, 0}, [2]float64{1, 0}))}
		g := buildGraph(t, segments, 0)

		result, err := Route(context.Background(), g, segments, NewCoordinate(0, 0), NewCoordinate(0, 0))
		require.NoError(t, err)
		assert.Equal(t, []Coordinate{NewCoordinate(0, 0)}, result.Path)
		assert.Zero(t, result.Distance)
		assert.Empty(t, result.Segments)
	})

	t.Run("cancelled context stops the segment scan", func(t *testing.T) {
		segments := []Segment{segment("A", Year{}, line([2]float64{0, 0}, [2]float64{1, 0}))}
		g := buildGraph(t, segments, 0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Route(ctx, g, segments, NewCoordinate(0, 0), NewCoordinate(1, 0))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 orb.Point
		want           bool
	}{
		{name: "crossing", a1: orb.Point{0, 0}, a2: orb.Point{2, 2}, b1: orb.Point{0, 2}, b2: orb.Point{2, 0}, want: true},
		{name: "shared endpoint", a1: orb.Point{0, 0}, a2: orb.Point{1, 0}, b1: orb.Point{1, 0}, b2: orb.Point{1, 1}, want: true},
		{name: "endpoint on interior", a1: orb.Point{0, 0}, a2: orb.Point{2, 0}, b1: orb.Point{1, 0}, b2: orb.Point{1, 1}, want: true},
		{name: "collinear overlap", a1: orb.Point{0, 0}, a2: orb.Point{2, 0}, b1: orb.Point{1, 0}, b2: orb.Point{3, 0}, want: true},
		{name: "collinear apart", a1: orb.Point{0, 0}, a2: orb.Point{1, 0}, b1: orb.Point{2, 0}, b2: orb.Point{3, 0}, want: false},
		{name: "parallel", a1: orb.Point{0, 0}, a2: orb.Point{1, 0}, b1: orb.Point{0, 1}, b2: orb.Point{1, 1}, want: false},
		{name: "would cross if extended", a1: orb.Point{0, 0}, a2: orb.Point{1, 1}, b1: orb.Point{3, 0}, b2: orb.Point{2, 1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segmentsIntersect(tt.a1, tt.a2, tt.b1, tt.b2))
			assert.Equal(t, tt.want, segmentsIntersect(tt.b1, tt.b2, tt.a1, tt.a2), "symmetric")
		})
	}
}
