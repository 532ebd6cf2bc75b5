package grid

import (
	"slices"

	"github.com/polycover/polycover/pkg/geom"
)

// RectFaces builds the planar arrangement of the polygon's boundary
// edges and the given cut segments and extracts its bounded rectangular
// faces inside the region. Faces lying in holes or outside the outer
// ring are discarded, as are faces that are not rectangles.
//
// The arrangement is evaluated on the non-uniform grid spanned by the
// segment endpoints: every segment spans whole grid intervals, so a
// face is exactly a flood-fill component of grid cells not separated by
// a segment. A component is a rectangle iff its bounding box area
// equals the sum of its cell areas. All tests are exact on integers.
func RectFaces(p *geom.Polygon, cuts []geom.Segment) []geom.Rect {
	segs := make([]geom.Segment, 0, len(cuts))
	segs = append(segs, cuts...)
	segs = append(segs, p.Edges()...)

	xs, ys := segmentAxes(segs)
	if len(xs) < 2 || len(ys) < 2 {
		return nil
	}
	xi := make(map[geom.Coord]int, len(xs))
	for i, x := range xs {
		xi[x] = i
	}
	yi := make(map[geom.Coord]int, len(ys))
	for i, y := range ys {
		yi[y] = i
	}

	nx, ny := len(xs)-1, len(ys)-1

	// vwall[i][j]: a segment lies on grid line x=xs[i] across cell row j.
	// hwall[j][i]: a segment lies on grid line y=ys[j] across cell column i.
	vwall := make([][]bool, len(xs))
	for i := range vwall {
		vwall[i] = make([]bool, ny)
	}
	hwall := make([][]bool, len(ys))
	for j := range hwall {
		hwall[j] = make([]bool, nx)
	}
	for _, s := range segs {
		if s.IsVertical() {
			i := xi[s.A.X]
			ylo, yhi := s.A.Y, s.B.Y
			if ylo > yhi {
				ylo, yhi = yhi, ylo
			}
			for j := yi[ylo]; j < yi[yhi]; j++ {
				vwall[i][j] = true
			}
		} else {
			j := yi[s.A.Y]
			xlo, xhi := s.A.X, s.B.X
			if xlo > xhi {
				xlo, xhi = xhi, xlo
			}
			for i := xi[xlo]; i < xi[xhi]; i++ {
				hwall[j][i] = true
			}
		}
	}

	inside := make([][]bool, nx)
	for i := range inside {
		inside[i] = make([]bool, ny)
		for j := range inside[i] {
			inside[i][j] = p.ContainsMidpoint(xs[i]+xs[i+1], ys[j]+ys[j+1])
		}
	}

	var rects []geom.Rect
	seen := make([][]bool, nx)
	for i := range seen {
		seen[i] = make([]bool, ny)
	}
	type cell struct{ i, j int }
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if seen[i][j] || !inside[i][j] {
				continue
			}
			// flood-fill one face
			var area int64
			minI, maxI, minJ, maxJ := i, i, j, j
			stack := []cell{{i, j}}
			seen[i][j] = true
			for len(stack) > 0 {
				c := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				area += (xs[c.i+1] - xs[c.i]) * (ys[c.j+1] - ys[c.j])
				minI, maxI = min(minI, c.i), max(maxI, c.i)
				minJ, maxJ = min(minJ, c.j), max(maxJ, c.j)

				push := func(ni, nj int) {
					if !seen[ni][nj] && inside[ni][nj] {
						seen[ni][nj] = true
						stack = append(stack, cell{ni, nj})
					}
				}
				if c.i+1 < nx && !vwall[c.i+1][c.j] {
					push(c.i+1, c.j)
				}
				if c.i > 0 && !vwall[c.i][c.j] {
					push(c.i-1, c.j)
				}
				if c.j+1 < ny && !hwall[c.j+1][c.i] {
					push(c.i, c.j+1)
				}
				if c.j > 0 && !hwall[c.j][c.i] {
					push(c.i, c.j-1)
				}
			}
			bb := geom.Rect{
				Min: geom.Point{X: xs[minI], Y: ys[minJ]},
				Max: geom.Point{X: xs[maxI+1], Y: ys[maxJ+1]},
			}
			if bb.Area() == area {
				rects = append(rects, bb)
			}
		}
	}

	slices.SortFunc(rects, geom.CompareRects)
	return rects
}

func segmentAxes(segs []geom.Segment) (xs, ys []geom.Coord) {
	for _, s := range segs {
		xs = append(xs, s.A.X, s.B.X)
		ys = append(ys, s.A.Y, s.B.Y)
	}
	slices.Sort(xs)
	slices.Sort(ys)
	return slices.Compact(xs), slices.Compact(ys)
}
