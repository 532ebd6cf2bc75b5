package geom

import (
	"slices"

	"github.com/polycover/polycover/pkg/errors"
)

// Ring is a closed rectilinear boundary given by its vertices in order.
// The closing edge from the last vertex back to the first is implicit.
type Ring []Point

// Edge returns the i-th boundary edge.
func (r Ring) Edge(i int) Segment {
	return Segment{r[i], r[(i+1)%len(r)]}
}

// Edges returns all boundary edges, including the closing edge.
func (r Ring) Edges() []Segment {
	edges := make([]Segment, len(r))
	for i := range r {
		edges[i] = r.Edge(i)
	}
	return edges
}

// Area2 returns twice the signed area of the ring. The sign is positive
// for counterclockwise orientation.
func (r Ring) Area2() int64 {
	var sum int64
	for i := range r {
		j := (i + 1) % len(r)
		sum += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return sum
}

// Reverse flips the ring's orientation in place.
func (r Ring) Reverse() {
	slices.Reverse(r)
}

// Validate checks that the ring has at least four vertices, only
// axis-aligned edges of positive length, and nonzero area.
func (r Ring) Validate() error {
	if len(r) < 4 {
		return errors.New(errors.ErrCodeInvalidGeometry, "ring has %d vertices, need at least 4", len(r))
	}
	for i := range r {
		e := r.Edge(i)
		if e.A == e.B {
			return errors.New(errors.ErrCodeInvalidGeometry, "ring has zero-length edge at (%d %d)", e.A.X, e.A.Y)
		}
		if !e.IsVertical() && !e.IsHorizontal() {
			return errors.New(errors.ErrCodeInvalidGeometry,
				"ring edge (%d %d)-(%d %d) is not axis-aligned", e.A.X, e.A.Y, e.B.X, e.B.Y)
		}
	}
	if r.Area2() == 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "ring has zero area")
	}
	return nil
}

// BBox returns the ring's axis-aligned bounding box.
func (r Ring) BBox() Rect {
	bb := Rect{Min: r[0], Max: r[0]}
	for _, p := range r[1:] {
		bb.Min.X = min(bb.Min.X, p.X)
		bb.Min.Y = min(bb.Min.Y, p.Y)
		bb.Max.X = max(bb.Max.X, p.X)
		bb.Max.Y = max(bb.Max.Y, p.Y)
	}
	return bb
}

// Polygon is a simple rectilinear outer boundary with zero or more
// rectilinear holes. NewPolygon normalizes orientation so that the
// outer ring runs counterclockwise and holes run clockwise; the rest of
// the system relies on that invariant.
type Polygon struct {
	Outer Ring
	Holes []Ring
}

// MultiPolygon is an ordered sequence of polygons with holes.
type MultiPolygon []Polygon

// NewPolygon builds a polygon from an outer ring and optional holes,
// validating rectilinearity and normalizing ring orientation.
func NewPolygon(outer Ring, holes ...Ring) (*Polygon, error) {
	if err := outer.Validate(); err != nil {
		return nil, err
	}
	if outer.Area2() < 0 {
		outer.Reverse()
	}
	for i, h := range holes {
		if err := h.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "hole %d", i)
		}
		if h.Area2() > 0 {
			h.Reverse()
		}
	}
	return &Polygon{Outer: outer, Holes: holes}, nil
}

// IsRectangle reports whether the polygon is a plain rectangle: exactly
// four boundary vertices and no holes. Such polygons are trivial for
// the covering problem and are skipped by the runner.
func (p *Polygon) IsRectangle() bool {
	return len(p.Outer) == 4 && len(p.Holes) == 0
}

// BBox returns the bounding box of the outer ring.
func (p *Polygon) BBox() Rect { return p.Outer.BBox() }

// Rings returns the outer ring followed by all holes.
func (p *Polygon) Rings() []Ring {
	rings := make([]Ring, 0, 1+len(p.Holes))
	rings = append(rings, p.Outer)
	return append(rings, p.Holes...)
}

// Edges returns every boundary edge of the polygon, outer ring first.
func (p *Polygon) Edges() []Segment {
	edges := p.Outer.Edges()
	for _, h := range p.Holes {
		edges = append(edges, h.Edges()...)
	}
	return edges
}

// ContainsMidpoint reports whether the point (x2/2, y2/2), given in
// doubled coordinates, lies strictly inside the polygon's region. With
// odd doubled coordinates the test point can never lie on an edge, so a
// plain even-odd crossing count is exact.
func (p *Polygon) ContainsMidpoint(x2, y2 Coord) bool {
	crossings := 0
	for _, ring := range p.Rings() {
		for i := range ring {
			e := ring.Edge(i)
			if !e.IsVertical() {
				continue
			}
			ex2 := 2 * e.A.X
			if ex2 <= x2 {
				continue
			}
			ylo2, yhi2 := minMax(2*e.A.Y, 2*e.B.Y)
			if ylo2 < y2 && y2 < yhi2 {
				crossings++
			}
		}
	}
	return crossings%2 == 1
}

// ContainsRect reports whether the rectangle lies entirely inside the
// polygon's region (boundaries may touch). It checks that no boundary
// edge passes through the rectangle's interior and that the center of
// the rectangle's bottom-left unit square lies inside the region; that
// center has odd doubled coordinates, so the midpoint test is exact.
func (p *Polygon) ContainsRect(r Rect) bool {
	for _, e := range p.Edges() {
		if r.FullyIntersects(e) {
			return false
		}
	}
	return p.ContainsMidpoint(2*r.Min.X+1, 2*r.Min.Y+1)
}

// ConcaveVertices maps each concave vertex of the region to the two
// axis directions that point from the vertex into the interior.
//
// A vertex of a single ring is concave when the boundary turns
// clockwise there, seen along the traversal sense: for an edge followed
// by its successor, the successor's direction equals the edge's
// direction rotated by 270 degrees. The two inward directions are then
// the edge's direction and its 90-degree rotation. A vertex shared by
// the outer ring and a hole cancels and is not concave.
func (p *Polygon) ConcaveVertices() map[Point][2]Dir {
	concave := ringConcaveVertices(p.Outer)
	for _, hole := range p.Holes {
		for v, dirs := range ringConcaveVertices(hole) {
			if _, dup := concave[v]; dup {
				delete(concave, v)
			} else {
				concave[v] = dirs
			}
		}
	}
	return concave
}

func ringConcaveVertices(r Ring) map[Point][2]Dir {
	concave := make(map[Point][2]Dir)
	for i := range r {
		edge, next := r.Edge(i), r.Edge((i+1)%len(r))
		dir := edge.Dir()
		if dir.Rot270() != next.Dir() {
			continue
		}
		concave[edge.B] = [2]Dir{dir, dir.Rot90()}
	}
	return concave
}

// SortedConcaveVertices returns the concave vertices in lexicographic
// order along with their inward directions. Algorithms iterate concave
// vertices through this function to stay deterministic.
func (p *Polygon) SortedConcaveVertices() ([]Point, map[Point][2]Dir) {
	concave := p.ConcaveVertices()
	points := make([]Point, 0, len(concave))
	for v := range concave {
		points = append(points, v)
	}
	slices.SortFunc(points, Point.Cmp)
	return points, concave
}

// ClosestBoundaryHit casts a ray from origin in direction d and returns
// the nearest point where it meets a polygon edge. Edges incident to
// the origin are ignored, so a ray cast from a boundary vertex finds
// the first edge beyond its own corner. The second return value is
// false when the ray escapes the polygon without hitting anything.
func (p *Polygon) ClosestBoundaryHit(origin Point, d Dir) (Point, bool) {
	var hits []Point
	for _, e := range p.Edges() {
		if e.HasEndpoint(origin) {
			continue
		}
		hits = append(hits, RayHits(origin, d, e)...)
	}
	if len(hits) == 0 {
		return Point{}, false
	}
	if d.Positive() {
		return slices.MinFunc(hits, Point.Cmp), true
	}
	return slices.MaxFunc(hits, Point.Cmp), true
}
