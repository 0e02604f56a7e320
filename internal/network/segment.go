package network

import (
	"strconv"

	"github.com/paulmach/orb"
)

// Year is an optional commissioning year.
type Year struct {
	Value int
	Valid bool
}

// KnownYear returns a valid Year.
func KnownYear(v int) Year {
	return Year{Value: v, Valid: true}
}

// String returns the year or "unknown".
func (y Year) String() string {
	if !y.Valid {
		return "unknown"
	}
	return strconv.Itoa(y.Value)
}

// Segment is one source pipeline geometry with its provenance.
type Segment struct {
	ID    string
	Name  string
	Year  Year
	Lines []orb.LineString
}

// Coordinates returns every vertex of the segment, rounded.
func (s Segment) Coordinates() []Coordinate {
	var coords []Coordinate
	for _, line := range s.Lines {
		for _, p := range line {
			coords = append(coords, FromPoint(p))
		}
	}
	return coords
}

// Bound is the bounding box of all lines of the segment.
func (s Segment) Bound() orb.Bound {
	return orb.MultiLineString(s.Lines).Bound()
}
