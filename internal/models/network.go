package models

import (
	"time"

	"hydroroute.org/internal/network"
)

// NetworkEntry summarises the network currently used for routing.
type NetworkEntry struct {
	Source             string  `json:"source"`
	Segments           int     `json:"segments"`
	SkippedFeatures    int     `json:"skippedFeatures"`
	Nodes              int     `json:"nodes"`
	Edges              int     `json:"edges"`
	SnapThreshold      float64 `json:"snapThreshold"`
	EdgeWeights        string  `json:"edgeWeights"`
	RawCoordinates     int     `json:"rawCoordinates"`
	Components         int     `json:"components"`
	DiscardedNodes     int     `json:"discardedNodes"`
	DiscardedEdges     int     `json:"discardedEdges"`
	OverwrittenEdges   int     `json:"overwrittenEdges"`
	ConflictingWeights int     `json:"conflictingWeights"`
	Bounds             Bounds  `json:"bounds"`
	LastBuilt          int64   `json:"lastBuilt"`
}

// NewNetworkEntry describes n. builtAt is reported in milliseconds.
func NewNetworkEntry(n *network.Network, source string, skipped int, policy network.EdgeWeightPolicy, builtAt time.Time) NetworkEntry {
	stats := n.Stats()
	return NetworkEntry{
		Source:             source,
		Segments:           len(n.Segments()),
		SkippedFeatures:    skipped,
		Nodes:              n.Graph().NodeCount(),
		Edges:              n.Graph().EdgeCount(),
		SnapThreshold:      n.Threshold(),
		EdgeWeights:        policy.String(),
		RawCoordinates:     stats.RawCoordinates,
		Components:         stats.Components,
		DiscardedNodes:     stats.DiscardedNodes,
		DiscardedEdges:     stats.DiscardedEdges,
		OverwrittenEdges:   stats.OverwrittenEdges,
		ConflictingWeights: stats.ConflictingWeights,
		Bounds:             NewBounds(n.Bound()),
		LastBuilt:          builtAt.UnixMilli(),
	}
}

// SegmentEntry is one source pipeline geometry.
type SegmentEntry struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	AvailableFrom string     `json:"availableFrom"`
	Polylines     []Polyline `json:"polylines"`
	Bounds        Bounds     `json:"bounds"`
}

func NewSegmentEntry(s network.Segment) SegmentEntry {
	polylines := make([]Polyline, len(s.Lines))
	for i, line := range s.Lines {
		polylines[i] = NewPolyline(line)
	}
	return SegmentEntry{
		ID:            s.ID,
		Name:          s.Name,
		AvailableFrom: AvailableFrom(s.Year),
		Polylines:     polylines,
		Bounds:        NewBounds(s.Bound()),
	}
}
