// Package geom provides the integer geometry kernel for rectilinear
// polygon covering: points, axis-aligned directions, segments,
// rectangles, rings and polygons with holes.
//
// All coordinates are 64-bit signed integers and every predicate is
// evaluated exactly on integers, so no tolerance or symbolic kernel is
// needed. Points are ordered lexicographically (x first, then y); sets
// keyed by geometric objects rely on this total order to keep results
// deterministic.
package geom

// Coord is the coordinate type used throughout the kernel.
type Coord = int64

// Point is a position on the integer grid.
type Point struct {
	X, Y Coord
}

// Cmp compares two points lexicographically (x first, then y).
// It returns -1, 0 or +1.
func (p Point) Cmp(q Point) int {
	switch {
	case p.X < q.X:
		return -1
	case p.X > q.X:
		return 1
	case p.Y < q.Y:
		return -1
	case p.Y > q.Y:
		return 1
	}
	return 0
}

// Less reports whether p orders strictly before q.
func (p Point) Less(q Point) bool { return p.Cmp(q) < 0 }

// Dir is a direction vector. The kernel only ever works with the four
// normalized axis directions, but Dir can hold any integer vector until
// Normalize is applied.
type Dir struct {
	DX, DY Coord
}

// The four axis directions.
var (
	Up    = Dir{0, 1}
	Right = Dir{1, 0}
	Down  = Dir{0, -1}
	Left  = Dir{-1, 0}
)

// Normalize maps each nonzero component to its sign.
func (d Dir) Normalize() Dir {
	return Dir{sign(d.DX), sign(d.DY)}
}

func sign(v Coord) Coord {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Rot90 rotates the direction by 90 degrees counterclockwise.
func (d Dir) Rot90() Dir { return Dir{-d.DY, d.DX} }

// Rot180 rotates the direction by 180 degrees.
func (d Dir) Rot180() Dir { return Dir{-d.DX, -d.DY} }

// Rot270 rotates the direction by 270 degrees counterclockwise.
func (d Dir) Rot270() Dir { return Dir{d.DY, -d.DX} }

// Positive reports whether the direction points up or right. Used to
// decide whether the lexicographically smallest or largest candidate is
// the closest along a ray.
func (d Dir) Positive() bool { return d.DX+d.DY > 0 }
