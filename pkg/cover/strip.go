package cover

import (
	"github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/geom"
	"github.com/polycover/polycover/pkg/grid"
)

// Strip covers the polygon with maximal horizontal strips read off the
// grid graph: for every cell without a top neighbor, the strip at the
// cell's full column height is extended sideways as far as the
// neighboring columns are at least as deep. The result is a cover, not
// a partition, and is a subset of the maximal super-rectangles.
type Strip struct{}

// CoverFor implements Provider.
func (Strip) CoverFor(p *geom.Polygon, costs Costs, env *Env) ([]geom.Rect, error) {
	if err := env.EnsureGraph(p); err != nil {
		return nil, err
	}
	g := env.Graph
	nodes := g.Nodes()
	if len(nodes) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry,
			"grid graph has %d cell(s), expected a non-trivial polygon", len(nodes))
	}

	heights := g.Heights()
	set := make(map[geom.Rect]struct{})
	for i := range nodes {
		if nodes[i].Top != grid.None {
			continue
		}
		h := heights[i]
		left := i
		for nodes[left].Left != grid.None && heights[nodes[left].Left] >= h {
			left = nodes[left].Left
		}
		right := i
		for nodes[right].Right != grid.None && heights[nodes[right].Right] >= h {
			right = nodes[right].Right
		}
		bottomLeft := left
		for range h {
			bottomLeft = nodes[bottomLeft].Bottom
		}
		set[geom.Rect{
			Min: nodes[bottomLeft].Rect.BottomLeft(),
			Max: nodes[right].Rect.TopRight(),
		}] = struct{}{}
	}
	return sortedRectSet(set), nil
}
