package geom

import (
	"fmt"

	"github.com/polycover/polycover/pkg/errors"
)

// Rect is an axis-aligned rectangle with strictly positive extent,
// stored as its bottom-left and top-right corners.
type Rect struct {
	Min, Max Point
}

// NewRect builds a rectangle from its extreme coordinates. It returns
// an INVALID_GEOMETRY error when the extent is zero or negative.
func NewRect(minX, minY, maxX, maxY Coord) (Rect, error) {
	if minX >= maxX || minY >= maxY {
		return Rect{}, errors.New(errors.ErrCodeInvalidGeometry,
			"rectangle has invalid extent: (%d %d) / (%d %d)", minX, minY, maxX, maxY)
	}
	return Rect{Min: Point{minX, minY}, Max: Point{maxX, maxY}}, nil
}

// MustRect is NewRect for statically known coordinates; it panics on a
// degenerate rectangle.
func MustRect(minX, minY, maxX, maxY Coord) Rect {
	r, err := NewRect(minX, minY, maxX, maxY)
	if err != nil {
		panic(err)
	}
	return r
}

// UnitRect returns the 1x1 rectangle whose top-left corner is p.
func UnitRect(topLeft Point) Rect {
	return Rect{
		Min: Point{topLeft.X, topLeft.Y - 1},
		Max: Point{topLeft.X + 1, topLeft.Y},
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() Coord { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() Coord { return r.Max.Y - r.Min.Y }

// Area returns width times height.
func (r Rect) Area() int64 { return r.Width() * r.Height() }

// BottomLeft returns the bottom-left corner.
func (r Rect) BottomLeft() Point { return r.Min }

// TopRight returns the top-right corner.
func (r Rect) TopRight() Point { return r.Max }

// BottomRight returns the bottom-right corner.
func (r Rect) BottomRight() Point { return Point{r.Max.X, r.Min.Y} }

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point { return Point{r.Min.X, r.Max.Y} }

// LeftEdge returns the left edge, directed from the top-left corner
// down to the bottom-left corner.
func (r Rect) LeftEdge() Segment { return Segment{r.TopLeft(), r.Min} }

// BottomEdge returns the bottom edge, directed left to right.
func (r Rect) BottomEdge() Segment { return Segment{r.Min, r.BottomRight()} }

// RightEdge returns the right edge, directed bottom to top.
func (r Rect) RightEdge() Segment { return Segment{r.BottomRight(), r.Max} }

// TopEdge returns the top edge, directed right to left.
func (r Rect) TopEdge() Segment { return Segment{r.Max, r.TopLeft()} }

// Contains reports whether r fully contains other, boundaries included.
func (r Rect) Contains(other Rect) bool {
	return r.Min.X <= other.Min.X && r.Min.Y <= other.Min.Y &&
		r.Max.X >= other.Max.X && r.Max.Y >= other.Max.Y
}

// Intersects reports whether the open interiors of the two rectangles
// overlap. Rectangles that only share an edge or a corner do not
// intersect.
func (r Rect) Intersects(other Rect) bool {
	if other.Max.X <= r.Min.X || r.Max.X <= other.Min.X {
		return false
	}
	if other.Max.Y <= r.Min.Y || r.Max.Y <= other.Min.Y {
		return false
	}
	return true
}

// FullyIntersects reports whether the axis-aligned segment has at least
// one point strictly inside the rectangle. Segments that only touch the
// boundary do not count.
func (r Rect) FullyIntersects(seg Segment) bool {
	if seg.IsVertical() {
		x := seg.A.X
		if x >= r.Max.X || x <= r.Min.X {
			return false
		}
		y1, y2 := seg.A.Y, seg.B.Y
		return !((y1 >= r.Max.Y && y2 >= r.Max.Y) || (y1 <= r.Min.Y && y2 <= r.Min.Y))
	}
	y := seg.A.Y
	if y >= r.Max.Y || y <= r.Min.Y {
		return false
	}
	x1, x2 := seg.A.X, seg.B.X
	return !((x1 >= r.Max.X && x2 >= r.Max.X) || (x1 <= r.Min.X && x2 <= r.Min.X))
}

// Join returns the smallest rectangle containing both r and other.
func (r Rect) Join(other Rect) Rect {
	return Rect{
		Min: Point{min(r.Min.X, other.Min.X), min(r.Min.Y, other.Min.Y)},
		Max: Point{max(r.Max.X, other.Max.X), max(r.Max.Y, other.Max.Y)},
	}
}

// ShrinkTop moves the top edge down by amount.
func (r Rect) ShrinkTop(amount Coord) Rect {
	r.Max.Y -= amount
	return r
}

// ShrinkBottom moves the bottom edge up by amount.
func (r Rect) ShrinkBottom(amount Coord) Rect {
	r.Min.Y += amount
	return r
}

// ShrinkLeft moves the left edge right by amount.
func (r Rect) ShrinkLeft(amount Coord) Rect {
	r.Min.X += amount
	return r
}

// ShrinkRight moves the right edge left by amount.
func (r Rect) ShrinkRight(amount Coord) Rect {
	r.Max.X -= amount
	return r
}

// Cmp orders rectangles by bottom-left corner, then top-right corner.
func (r Rect) Cmp(other Rect) int {
	if c := r.Min.Cmp(other.Min); c != 0 {
		return c
	}
	return r.Max.Cmp(other.Max)
}

// Ring returns the rectangle's boundary as a counterclockwise ring.
func (r Rect) Ring() Ring {
	return Ring{r.Min, r.BottomRight(), r.Max, r.TopLeft()}
}

// String renders the rectangle as "[ (x y) / (x y) ]".
func (r Rect) String() string {
	return fmt.Sprintf("[ (%d %d) / (%d %d) ]", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// CompareRects is a comparison function for sorting rectangle slices.
func CompareRects(a, b Rect) int { return a.Cmp(b) }
