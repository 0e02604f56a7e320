package planner

import (
	"fmt"
	"io"

	"hydroroute.org/internal/dataset"
)

// PrintStatistics writes a short summary of the current network to w.
func (manager *Manager) PrintStatistics(w io.Writer) {
	s := manager.Snapshot()
	stats := s.Network.Stats()

	fmt.Fprintf(w, "Source: %s (Remote: %v)\n", s.Dataset.Source, dataset.IsRemote(s.Dataset.Source))
	fmt.Fprintf(w, "Last Built: %s\n", s.BuiltAt)
	fmt.Fprintf(w, "Segments: %d (%d features skipped)\n", len(s.Dataset.Segments), s.Dataset.Skipped)
	fmt.Fprintf(w, "Snap Threshold: %g\n", s.Network.Threshold())
	fmt.Fprintf(w, "Nodes: %d\n", s.Network.Graph().NodeCount())
	fmt.Fprintf(w, "Edges: %d\n", s.Network.Graph().EdgeCount())
	fmt.Fprintf(w, "Components: %d (%d nodes discarded)\n", stats.Components, stats.DiscardedNodes)
}
