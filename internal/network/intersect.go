package network

import "github.com/paulmach/orb"

// orientation returns 1 when p, q, r turn counter-clockwise, -1 when they
// turn clockwise and 0 when they are collinear.
func orientation(p, q, r orb.Point) int {
	v := (q[0]-p[0])*(r[1]-p[1]) - (q[1]-p[1])*(r[0]-p[0])
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// onSegment reports whether r, known to be collinear with p-q, lies
// within the bounding box of p-q.
func onSegment(p, q, r orb.Point) bool {
	return min(p[0], q[0]) <= r[0] && r[0] <= max(p[0], q[0]) &&
		min(p[1], q[1]) <= r[1] && r[1] <= max(p[1], q[1])
}

// segmentsIntersect reports whether the closed segments a1-a2 and b1-b2
// share at least one point. Touching endpoints and collinear overlaps count.
func segmentsIntersect(a1, a2, b1, b2 orb.Point) bool {
	o1 := orientation(a1, a2, b1)
	o2 := orientation(a1, a2, b2)
	o3 := orientation(b1, b2, a1)
	o4 := orientation(b1, b2, a2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	switch {
	case o1 == 0 && onSegment(a1, a2, b1):
		return true
	case o2 == 0 && onSegment(a1, a2, b2):
		return true
	case o3 == 0 && onSegment(b1, b2, a1):
		return true
	case o4 == 0 && onSegment(b1, b2, a2):
		return true
	}
	return false
}

// lineIntersects reports whether the straight segment a-b touches line.
func lineIntersects(a, b orb.Point, line orb.LineString) bool {
	if len(line) == 1 {
		return orientation(a, b, line[0]) == 0 && onSegment(a, b, line[0])
	}
	for i := 0; i+1 < len(line); i++ {
		if segmentsIntersect(a, b, line[i], line[i+1]) {
			return true
		}
	}
	return false
}

// intersectsSegment reports whether the straight segment a-b touches any
// line of s. bound is the box of a-b, used to skip lines early.
func intersectsSegment(a, b orb.Point, bound orb.Bound, s Segment) bool {
	for _, line := range s.Lines {
		if len(line) == 0 || !bound.Intersects(line.Bound()) {
			continue
		}
		if lineIntersects(a, b, line) {
			return true
		}
	}
	return false
}
