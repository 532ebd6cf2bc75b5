package runner

import (
	"slices"

	clipper "github.com/ctessum/go.clipper"

	"github.com/polycover/polycover/pkg/geom"
)

// IsValidCover checks a cover by joining and differencing: the union of
// the rectangles, XORed with the polygon's region, must be empty. Any
// uncovered sliver of the polygon and any rectangle part outside the
// polygon both survive the symmetric difference, so emptiness is an
// exact equality test. Degenerate rectangles invalidate the cover
// outright.
func IsValidCover(rects []geom.Rect, p *geom.Polygon) bool {
	if len(rects) == 0 {
		return false
	}
	sorted := slices.Clone(rects)
	slices.SortFunc(sorted, geom.CompareRects)

	c := clipper.NewClipper(clipper.IoNone)
	for _, r := range sorted {
		if r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y {
			return false
		}
		c.AddPath(rectClipperPath(r), clipper.PtSubject, true)
	}
	for _, ring := range p.Rings() {
		c.AddPath(ringClipperPath(ring), clipper.PtClip, true)
	}

	difference, ok := c.Execute1(clipper.CtXor, clipper.PftNonZero, clipper.PftNonZero)
	return ok && len(difference) == 0
}

// VerifyCover is the subtract-and-check variant: every rectangle must
// lie inside the polygon, and subtracting all rectangles from the
// polygon must leave nothing. It works on the non-uniform grid spanned
// by all rectangle and polygon coordinates, where cover and region are
// unions of grid cells, so comparing cell midpoints is exact.
func VerifyCover(rects []geom.Rect, p *geom.Polygon) bool {
	if len(rects) == 0 {
		return false
	}

	var xs, ys []geom.Coord
	for _, r := range rects {
		if r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y {
			return false
		}
		xs = append(xs, r.Min.X, r.Max.X)
		ys = append(ys, r.Min.Y, r.Max.Y)
	}
	for _, ring := range p.Rings() {
		for _, v := range ring {
			xs = append(xs, v.X)
			ys = append(ys, v.Y)
		}
	}
	slices.Sort(xs)
	slices.Sort(ys)
	xs = slices.Compact(xs)
	ys = slices.Compact(ys)

	for i := 0; i+1 < len(xs); i++ {
		for j := 0; j+1 < len(ys); j++ {
			mx, my := xs[i]+xs[i+1], ys[j]+ys[j+1]
			inPolygon := p.ContainsMidpoint(mx, my)
			inCover := false
			for _, r := range rects {
				if 2*r.Min.X < mx && mx < 2*r.Max.X && 2*r.Min.Y < my && my < 2*r.Max.Y {
					inCover = true
					break
				}
			}
			if inPolygon != inCover {
				return false
			}
		}
	}
	return true
}

func rectClipperPath(r geom.Rect) clipper.Path {
	return clipper.Path{
		&clipper.IntPoint{X: clipper.CInt(r.Min.X), Y: clipper.CInt(r.Min.Y)},
		&clipper.IntPoint{X: clipper.CInt(r.Max.X), Y: clipper.CInt(r.Min.Y)},
		&clipper.IntPoint{X: clipper.CInt(r.Max.X), Y: clipper.CInt(r.Max.Y)},
		&clipper.IntPoint{X: clipper.CInt(r.Min.X), Y: clipper.CInt(r.Max.Y)},
	}
}

func ringClipperPath(ring geom.Ring) clipper.Path {
	path := make(clipper.Path, len(ring))
	for i, p := range ring {
		path[i] = &clipper.IntPoint{X: clipper.CInt(p.X), Y: clipper.CInt(p.Y)}
	}
	return path
}
