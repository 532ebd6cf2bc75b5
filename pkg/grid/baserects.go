// Package grid implements the base-rectangle decomposition of a
// rectilinear polygon and the grid graph built on top of it.
//
// The decomposition casts two rays from every concave vertex along its
// inward directions, each terminated at the first boundary edge it
// meets. The arrangement of boundary and cut segments splits the region
// into interior-disjoint axis-aligned cells, the base rectangles. Every
// axis-aligned rectangle that is exactly a union of base rectangles is
// a super-rectangle; the Graph type links each cell to its unique
// neighbor on each side and enumerates super-rectangles from there.
package grid

import (
	"github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/geom"
)

// BaseRects computes the base rectangles of the polygon, sorted by
// bottom-left then top-right corner. The polygon must not be a plain
// rectangle: those are trivial and handled by the caller.
func BaseRects(p *geom.Polygon) ([]geom.Rect, error) {
	if p.IsRectangle() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"polygon is a hole-free rectangle, no decomposition needed")
	}

	vertices, concave := p.SortedConcaveVertices()
	cuts := make([]geom.Segment, 0, 2*len(vertices))
	for _, v := range vertices {
		for _, dir := range concave[v] {
			hit, ok := p.ClosestBoundaryHit(v, dir)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidGeometry,
					"ray from concave vertex (%d %d) escapes the polygon", v.X, v.Y)
			}
			cuts = append(cuts, geom.Segment{A: v, B: hit})
		}
	}

	rects := RectFaces(p, cuts)
	if len(rects) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "polygon decomposes into no cells")
	}
	return rects, nil
}
