package cover

import (
	clipper "github.com/ctessum/go.clipper"

	"github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/geom"
)

// rectPath converts a rectangle to a counterclockwise clipper path.
func rectPath(r geom.Rect) clipper.Path {
	return clipper.Path{
		&clipper.IntPoint{X: clipper.CInt(r.Min.X), Y: clipper.CInt(r.Min.Y)},
		&clipper.IntPoint{X: clipper.CInt(r.Max.X), Y: clipper.CInt(r.Min.Y)},
		&clipper.IntPoint{X: clipper.CInt(r.Max.X), Y: clipper.CInt(r.Max.Y)},
		&clipper.IntPoint{X: clipper.CInt(r.Min.X), Y: clipper.CInt(r.Max.Y)},
	}
}

// ringPath converts a ring to a clipper path.
func ringPath(ring geom.Ring) clipper.Path {
	path := make(clipper.Path, len(ring))
	for i, p := range ring {
		path[i] = &clipper.IntPoint{X: clipper.CInt(p.X), Y: clipper.CInt(p.Y)}
	}
	return path
}

func pathRing(path clipper.Path) geom.Ring {
	ring := make(geom.Ring, len(path))
	for i, p := range path {
		ring[i] = geom.Point{X: geom.Coord(p.X), Y: geom.Coord(p.Y)}
	}
	return ring
}

// unionRects joins the given rectangles into polygons with holes.
// Connected groups of rectangles become one polygon each; a ring of
// rectangles around uncovered area yields a hole.
func unionRects(rects []geom.Rect) ([]geom.Polygon, error) {
	if len(rects) == 0 {
		return nil, nil
	}
	c := clipper.NewClipper(clipper.IoNone)
	for _, r := range rects {
		c.AddPath(rectPath(r), clipper.PtSubject, true)
	}
	tree, ok := c.Execute2(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "rectangle union failed")
	}

	var polygons []geom.Polygon
	if err := collectPolygons(tree.Childs(), &polygons); err != nil {
		return nil, err
	}
	return polygons, nil
}

// collectPolygons walks the clipper nesting tree: top-level nodes are
// outer boundaries, their children holes, and any deeper nodes are
// islands that start new polygons.
func collectPolygons(outers []*clipper.PolyNode, polygons *[]geom.Polygon) error {
	for _, outerNode := range outers {
		outer := pathRing(outerNode.Contour())
		var holes []geom.Ring
		for _, holeNode := range outerNode.Childs() {
			holes = append(holes, pathRing(holeNode.Contour()))
			if err := collectPolygons(holeNode.Childs(), polygons); err != nil {
				return err
			}
		}
		p, err := geom.NewPolygon(outer, holes...)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "union produced an invalid polygon")
		}
		*polygons = append(*polygons, *p)
	}
	return nil
}
