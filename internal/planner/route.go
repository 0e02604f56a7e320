package planner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hydroroute.org/internal/logging"
	"hydroroute.org/internal/metrics"
	"hydroroute.org/internal/network"
)

// Plan is a route between two user supplied points together with the
// snaps that moved them onto the network.
type Plan struct {
	Start  network.Snap
	End    network.Snap
	Result *network.RouteResult
}

// Nearest snaps c to the closest node of the current network.
func (manager *Manager) Nearest(c network.Coordinate) (network.Snap, error) {
	snap, err := manager.Network().FindNearestNode(c)
	if err != nil {
		return snap, err
	}
	manager.noteAmbiguous(snap)
	return snap, nil
}

// PlanRoute snaps start and end onto the network and routes between the
// snapped nodes. Both lookups and the route use the same network even if
// a rebuild happens concurrently.
func (manager *Manager) PlanRoute(ctx context.Context, start, end network.Coordinate) (*Plan, error) {
	began := time.Now()
	metrics.RouteRequestsTotal.Inc()

	n := manager.Network()
	plan, err := planRoute(ctx, n, start, end)
	metrics.RouteDurationMs.Observe(float64(time.Since(began).Microseconds()) / 1000)
	if err != nil {
		metrics.RouteFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	manager.noteAmbiguous(plan.Start)
	manager.noteAmbiguous(plan.End)
	metrics.RouteDistanceKm.Observe(plan.Result.Distance)

	logging.FromContext(ctx).Debug("route computed",
		slog.String("component", "network_manager"),
		slog.String("start", plan.Start.Node.String()),
		slog.String("end", plan.End.Node.String()),
		slog.Int("path_nodes", len(plan.Result.Path)),
		slog.Float64("distance_km", plan.Result.Distance))
	return plan, nil
}

func planRoute(ctx context.Context, n *network.Network, start, end network.Coordinate) (*Plan, error) {
	startSnap, err := n.FindNearestNode(start)
	if err != nil {
		return nil, err
	}
	endSnap, err := n.FindNearestNode(end)
	if err != nil {
		return nil, err
	}
	result, err := n.ComputeRoute(ctx, startSnap.Node, endSnap.Node)
	if err != nil {
		return nil, err
	}
	return &Plan{Start: startSnap, End: endSnap, Result: result}, nil
}

func (manager *Manager) noteAmbiguous(snap network.Snap) {
	if err := snap.Err(); err != nil {
		metrics.AmbiguousSnapsTotal.Inc()
		manager.logger.Debug("ambiguous snap", slog.String("error", err.Error()),
			slog.String("node", snap.Node.String()))
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, network.ErrNoPathFound):
		return "no_path"
	case errors.Is(err, network.ErrNodeNotFound):
		return "node_not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
