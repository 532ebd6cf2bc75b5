package geom

// Segment is a directed straight-line segment between two distinct
// points. The kernel only produces axis-aligned segments.
type Segment struct {
	A, B Point // source and target
}

// IsVertical reports whether both endpoints share an x coordinate.
func (s Segment) IsVertical() bool { return s.A.X == s.B.X }

// IsHorizontal reports whether both endpoints share a y coordinate.
func (s Segment) IsHorizontal() bool { return s.A.Y == s.B.Y }

// Dir returns the normalized direction from A to B.
func (s Segment) Dir() Dir {
	return Dir{s.B.X - s.A.X, s.B.Y - s.A.Y}.Normalize()
}

// Opposite returns the segment with source and target swapped.
func (s Segment) Opposite() Segment { return Segment{s.B, s.A} }

// HasEndpoint reports whether p is one of the segment's endpoints.
func (s Segment) HasEndpoint(p Point) bool { return s.A == p || s.B == p }

func minMax(a, b Coord) (Coord, Coord) {
	if a <= b {
		return a, b
	}
	return b, a
}

// IntersectsInterior reports whether the two axis-aligned segments meet
// at any point other than a shared endpoint configuration: it returns
// false when they are disjoint or touch only at their endpoints, and
// true otherwise. Collinear overlap of positive length counts as an
// interior intersection.
func IntersectsInterior(s1, s2 Segment) bool {
	v1, v2 := s1.IsVertical(), s2.IsVertical()

	switch {
	case v1 && v2:
		if s1.A.X != s2.A.X {
			return false
		}
		lo, hi := minMax(s1.A.Y, s1.B.Y)
		return !((s2.A.Y >= hi && s2.B.Y >= hi) || (s2.A.Y <= lo && s2.B.Y <= lo))
	case !v1 && !v2:
		if s1.A.Y != s2.A.Y {
			return false
		}
		lo, hi := minMax(s1.A.X, s1.B.X)
		return !((s2.A.X >= hi && s2.B.X >= hi) || (s2.A.X <= lo && s2.B.X <= lo))
	default:
		h, v := s1, s2
		if v1 {
			h, v = s2, s1
		}
		ylo, yhi := minMax(v.A.Y, v.B.Y)
		if !(h.A.Y > ylo && h.A.Y < yhi) {
			return false
		}
		xlo, xhi := minMax(h.A.X, h.B.X)
		return v.A.X > xlo && v.A.X < xhi
	}
}

// SegmentsIntersect reports whether the two axis-aligned segments share
// at least one point, endpoints included.
func SegmentsIntersect(s1, s2 Segment) bool {
	v1, v2 := s1.IsVertical(), s2.IsVertical()

	switch {
	case v1 && v2:
		if s1.A.X != s2.A.X {
			return false
		}
		lo1, hi1 := minMax(s1.A.Y, s1.B.Y)
		lo2, hi2 := minMax(s2.A.Y, s2.B.Y)
		return lo1 <= hi2 && lo2 <= hi1
	case !v1 && !v2:
		if s1.A.Y != s2.A.Y {
			return false
		}
		lo1, hi1 := minMax(s1.A.X, s1.B.X)
		lo2, hi2 := minMax(s2.A.X, s2.B.X)
		return lo1 <= hi2 && lo2 <= hi1
	default:
		h, v := s1, s2
		if v1 {
			h, v = s2, s1
		}
		xlo, xhi := minMax(h.A.X, h.B.X)
		ylo, yhi := minMax(v.A.Y, v.B.Y)
		return v.A.X >= xlo && v.A.X <= xhi && h.A.Y >= ylo && h.A.Y <= yhi
	}
}

// RayHits returns the points where the axis-aligned ray from origin in
// direction d meets the segment. A perpendicular crossing yields one
// point; a collinear overlap yields the two endpoints of the overlap,
// clipped to the ray. The result is empty when ray and segment are
// disjoint.
func RayHits(origin Point, d Dir, seg Segment) []Point {
	if d.DY != 0 { // vertical ray
		if seg.IsVertical() {
			if seg.A.X != origin.X {
				return nil
			}
			lo, hi := minMax(seg.A.Y, seg.B.Y)
			if d.DY > 0 {
				if hi < origin.Y {
					return nil
				}
				lo = max(lo, origin.Y)
			} else {
				if lo > origin.Y {
					return nil
				}
				hi = min(hi, origin.Y)
			}
			if lo == hi {
				return []Point{{origin.X, lo}}
			}
			return []Point{{origin.X, lo}, {origin.X, hi}}
		}
		y := seg.A.Y
		if (d.DY > 0 && y < origin.Y) || (d.DY < 0 && y > origin.Y) {
			return nil
		}
		lo, hi := minMax(seg.A.X, seg.B.X)
		if origin.X < lo || origin.X > hi {
			return nil
		}
		return []Point{{origin.X, y}}
	}

	// horizontal ray
	if seg.IsHorizontal() {
		if seg.A.Y != origin.Y {
			return nil
		}
		lo, hi := minMax(seg.A.X, seg.B.X)
		if d.DX > 0 {
			if hi < origin.X {
				return nil
			}
			lo = max(lo, origin.X)
		} else {
			if lo > origin.X {
				return nil
			}
			hi = min(hi, origin.X)
		}
		if lo == hi {
			return []Point{{lo, origin.Y}}
		}
		return []Point{{lo, origin.Y}, {hi, origin.Y}}
	}
	x := seg.A.X
	if (d.DX > 0 && x < origin.X) || (d.DX < 0 && x > origin.X) {
		return nil
	}
	lo, hi := minMax(seg.A.Y, seg.B.Y)
	if origin.Y < lo || origin.Y > hi {
		return nil
	}
	return []Point{{x, origin.Y}}
}

// RayPointHit returns the single point where the ray meets the segment,
// if the intersection is exactly one point. Collinear overlaps of
// positive length yield no result.
func RayPointHit(origin Point, d Dir, seg Segment) (Point, bool) {
	hits := RayHits(origin, d, seg)
	if len(hits) != 1 {
		return Point{}, false
	}
	return hits[0], true
}
