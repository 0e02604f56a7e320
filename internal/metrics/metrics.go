package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RouteRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hydroroute_route_requests_total",
		Help: "Total number of route requests",
	})
	RouteFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hydroroute_route_failures_total",
		Help: "Route requests that did not produce a route, by reason",
	}, []string{"reason"})
	RouteDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hydroroute_route_duration_ms",
		Help:    "Route computation duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	RouteDistanceKm = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hydroroute_route_distance_km",
		Help:    "Distance of computed routes in kilometres",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
	})
	AmbiguousSnapsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hydroroute_ambiguous_snaps_total",
		Help: "Query points that were equidistant to several nodes",
	})
	NetworkBuildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hydroroute_network_builds_total",
		Help: "Network builds by status",
	}, []string{"status"})
	NetworkBuildDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hydroroute_network_build_duration_ms",
		Help:    "Network build duration in milliseconds",
		Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 30000},
	})
	NetworkNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hydroroute_network_nodes",
		Help: "Nodes in the current network",
	})
	NetworkEdges = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hydroroute_network_edges",
		Help: "Edges in the current network",
	})
	NetworkDiscardedNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hydroroute_network_discarded_nodes",
		Help: "Nodes dropped outside the largest connected component",
	})
)

func init() {
	prometheus.MustRegister(RouteRequestsTotal)
	prometheus.MustRegister(RouteFailuresTotal)
	prometheus.MustRegister(RouteDurationMs)
	prometheus.MustRegister(RouteDistanceKm)
	prometheus.MustRegister(AmbiguousSnapsTotal)
	prometheus.MustRegister(NetworkBuildsTotal)
	prometheus.MustRegister(NetworkBuildDurationMs)
	prometheus.MustRegister(NetworkNodes)
	prometheus.MustRegister(NetworkEdges)
	prometheus.MustRegister(NetworkDiscardedNodes)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
