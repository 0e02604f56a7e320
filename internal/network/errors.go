package network

import "errors"

var (
	// ErrInvalidGeometry is returned when a segment cannot contribute edges:
	// a line with fewer than two coordinates, a segment without lines, or a
	// coordinate that is missing from the canonical map.
	ErrInvalidGeometry = errors.New("invalid segment geometry")

	// ErrEmptyGraph is returned when no edge could be built from the input.
	ErrEmptyGraph = errors.New("no connectable geometry")

	// ErrNoPathFound is returned when source and target are not connected.
	ErrNoPathFound = errors.New("no path found")

	// ErrNodeNotFound is returned when a route endpoint is not a graph node.
	ErrNodeNotFound = errors.New("node not in graph")

	// ErrInvalidThreshold is returned for a negative snap threshold.
	ErrInvalidThreshold = errors.New("snap threshold must be non-negative")

	// ErrAmbiguousSnap is informational: more than one node is equidistant
	// to a query point. The lookup still returns a node.
	ErrAmbiguousSnap = errors.New("query point is equidistant to several nodes")
)
