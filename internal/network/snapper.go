package network

import (
	"fmt"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
)

// CanonicalMap maps every raw coordinate to the representative all
// coordinates of its snap cluster collapse to. A canonical coordinate maps
// to itself, so applying the map twice is the same as applying it once.
type CanonicalMap map[Coordinate]Coordinate

// Canonical returns the representative of c.
func (m CanonicalMap) Canonical(c Coordinate) (Coordinate, bool) {
	target, ok := m[c]
	return target, ok
}

// Representatives returns the distinct canonical coordinates in sorted order.
func (m CanonicalMap) Representatives() []Coordinate {
	seen := make(map[Coordinate]struct{}, len(m))
	reps := make([]Coordinate, 0)
	for _, target := range m {
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		reps = append(reps, target)
	}
	slices.SortFunc(reps, compareCoordinates)
	return reps
}

// BuildCanonicalMap snaps coordinates that lie within threshold of each
// other onto a single representative.
//
// Coordinates are visited in sorted (lon, lat) order. The first unassigned
// coordinate of a neighbourhood becomes canonical and claims every
// coordinate within threshold that has not been claimed yet. Overlapping
// clusters therefore depend on the visiting order; the result is
// deterministic for a given input but not globally optimal.
//
// The threshold is a Euclidean distance in degrees.
func BuildCanonicalMap(coords []Coordinate, threshold float64) (CanonicalMap, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}

	unique := uniqueSorted(coords)
	canonical := make(CanonicalMap, len(unique))
	if len(unique) == 0 {
		return canonical, nil
	}

	tree, err := newPointIndex(unique, threshold)
	if err != nil {
		return nil, err
	}

	var buf []orb.Pointer
	for _, c := range unique {
		if _, assigned := canonical[c]; assigned {
			continue
		}
		buf = withinRadius(tree, buf[:0], c, threshold)
		for _, p := range buf {
			neighbour := p.(Coordinate)
			if _, assigned := canonical[neighbour]; assigned {
				continue
			}
			canonical[neighbour] = c
		}
	}

	return canonical, nil
}

func uniqueSorted(coords []Coordinate) []Coordinate {
	unique := slices.Clone(coords)
	slices.SortFunc(unique, compareCoordinates)
	return slices.Compact(unique)
}

// newPointIndex builds a quadtree over coords whose bound is padded so that
// radius queries near the edge stay inside it.
func newPointIndex(coords []Coordinate, pad float64) (*quadtree.Quadtree, error) {
	bound := coords[0].Point().Bound()
	for _, c := range coords[1:] {
		bound = bound.Extend(c.Point())
	}
	tree := quadtree.New(bound.Pad(pad + 1))
	for _, c := range coords {
		if err := tree.Add(c); err != nil {
			return nil, fmt.Errorf("indexing coordinate %s: %w", c, err)
		}
	}
	return tree, nil
}

// withinRadius appends to buf every indexed coordinate whose planar
// distance to center is at most radius.
func withinRadius(tree *quadtree.Quadtree, buf []orb.Pointer, center Coordinate, radius float64) []orb.Pointer {
	candidates := tree.InBound(nil, center.Point().Bound().Pad(radius))
	for _, p := range candidates {
		if PlanarDistance(center, p.(Coordinate)) <= radius {
			buf = append(buf, p)
		}
	}
	return buf
}
