package network

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Precision is the number of decimal places coordinates are rounded to
// before they are compared or hashed.
const Precision = 6

var precisionScale = math.Pow10(Precision)

// Coordinate is a longitude/latitude pair rounded to Precision decimal
// places. It is comparable and safe to use as a map key.
type Coordinate struct {
	Lon float64
	Lat float64
}

// NewCoordinate rounds lon and lat half-to-even to Precision places.
func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{Lon: round(lon), Lat: round(lat)}
}

// FromPoint converts an orb point ([lon, lat]) into a rounded Coordinate.
func FromPoint(p orb.Point) Coordinate {
	return NewCoordinate(p[0], p[1])
}

func round(v float64) float64 {
	return math.RoundToEven(v*precisionScale) / precisionScale
}

// Point implements orb.Pointer.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lon, c.Lat)
}

// Less orders coordinates by longitude, then latitude.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Lon != other.Lon {
		return c.Lon < other.Lon
	}
	return c.Lat < other.Lat
}

func compareCoordinates(a, b Coordinate) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// PlanarDistance is the Euclidean distance in degree space. It is the
// metric used for snapping and nearest-node lookup, not a geodesic one.
func PlanarDistance(a, b Coordinate) float64 {
	return planar.Distance(a.Point(), b.Point())
}

// GeodesicDistance is the great-circle distance between a and b in kilometres.
func GeodesicDistance(a, b Coordinate) float64 {
	return geo.DistanceHaversine(a.Point(), b.Point()) / 1000
}
