package models

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"

	"hydroroute.org/internal/network"
)

// DefaultCostRate is the 2040 European Hydrogen Backbone transport cost in
// EUR per kg of hydrogen per 1000 km.
const DefaultCostRate = 0.21

type Polyline struct {
	Length int    `json:"length"`
	Points string `json:"points"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLon float64 `json:"minLon"`
	MaxLat float64 `json:"maxLat"`
	MaxLon float64 `json:"maxLon"`
}

// Snap describes how a user supplied point was moved onto the network.
// Query and Node are the two ends of the snap line drawn on a map.
type Snap struct {
	Query         Coordinate `json:"query"`
	Node          Coordinate `json:"node"`
	OffsetDegrees float64    `json:"offsetDegrees"`
	OffsetKm      float64    `json:"offsetKm"`
	Ambiguous     bool       `json:"ambiguous"`
}

type RouteEntry struct {
	Start         Snap         `json:"start"`
	End           Snap         `json:"end"`
	Path          []Coordinate `json:"path"`
	Polyline      Polyline     `json:"polyline"`
	DistanceKm    float64      `json:"distanceKm"`
	EstimatedCost float64      `json:"estimatedCost"`
	CostUnit      string       `json:"costUnit"`
	AvailableFrom string       `json:"availableFrom"`
	Pipelines     []string     `json:"pipelines"`
}

// EstimatedCost returns the transport cost in EUR/kg for distanceKm at
// rate EUR/kg per 1000 km, rounded to cents.
func EstimatedCost(distanceKm, rate float64) float64 {
	return math.RoundToEven(distanceKm*rate/1000*100) / 100
}

// AvailableFrom formats a commissioning year for responses.
func AvailableFrom(y network.Year) string {
	if !y.Valid {
		return "Unknown"
	}
	return y.String()
}

func NewCoordinate(c network.Coordinate) Coordinate {
	return Coordinate{Lat: c.Lat, Lon: c.Lon}
}

func NewBounds(b orb.Bound) Bounds {
	return Bounds{MinLat: b.Min[1], MinLon: b.Min[0], MaxLat: b.Max[1], MaxLon: b.Max[0]}
}

func NewSnap(s network.Snap) Snap {
	return Snap{
		Query:         NewCoordinate(s.Query),
		Node:          NewCoordinate(s.Node),
		OffsetDegrees: s.Distance,
		OffsetKm:      network.GeodesicDistance(s.Query, s.Node),
		Ambiguous:     s.Ambiguous,
	}
}

// NewPolyline encodes points in the Google polyline format, latitude first.
func NewPolyline(points []orb.Point) Polyline {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p[1], p[0]}
	}
	return Polyline{
		Length: len(points),
		Points: string(polyline.EncodeCoords(coords)),
	}
}

func NewRouteEntry(result *network.RouteResult, start, end network.Snap, costRate float64) RouteEntry {
	path := make([]Coordinate, len(result.Path))
	points := make([]orb.Point, len(result.Path))
	for i, c := range result.Path {
		path[i] = NewCoordinate(c)
		points[i] = c.Point()
	}

	return RouteEntry{
		Start:         NewSnap(start),
		End:           NewSnap(end),
		Path:          path,
		Polyline:      NewPolyline(points),
		DistanceKm:    result.Distance,
		EstimatedCost: EstimatedCost(result.Distance, costRate),
		CostUnit:      "EUR/kg",
		AvailableFrom: AvailableFrom(result.AvailableFrom),
		Pipelines:     result.Segments,
	}
}
