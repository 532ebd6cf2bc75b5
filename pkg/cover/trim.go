package cover

import (
	"github.com/polycover/polycover/pkg/geom"
	"github.com/polycover/polycover/pkg/grid"
)

// Trimmer shrinks each cover rectangle into its redundant borders: a
// boundary row or column whose cells are all covered at least twice is
// peeled off and the multiplicities decremented, until a side hits a
// row or column the rectangle covers uniquely. The four sides are
// trimmed independently.
//
// Trimming assumes no rectangle is fully redundant; run Pruner first,
// otherwise a completely redundant rectangle would be shrunk past zero
// extent.
type Trimmer struct {
	prev Provider
}

// NewTrimmer wraps prev with a trimming pass.
func NewTrimmer(prev Provider) *Trimmer { return &Trimmer{prev: prev} }

// CoverFor implements Provider.
func (pp *Trimmer) CoverFor(p *geom.Polygon, costs Costs, env *Env) ([]geom.Rect, error) {
	cover, err := pp.prev.CoverFor(p, costs, env)
	if err != nil {
		return nil, err
	}

	env.PixelCoverageInvalidated = true
	coverage, err := env.EnsureCoverage(p, cover)
	if err != nil {
		return nil, err
	}
	g := env.Graph

	for i := range cover {
		cover[i] = trimTop(cover[i], g, coverage)
		cover[i] = trimBottom(cover[i], g, coverage)
		cover[i] = trimRight(cover[i], g, coverage)
		cover[i] = trimLeft(cover[i], g, coverage)
	}
	return cover, nil
}

// trimTop peels redundant cell rows off the top edge. Each round walks
// the top row right to left; if every cell in it has multiplicity > 1
// the row is removed and the walk restarts one row further down.
func trimTop(r geom.Rect, g *grid.Graph, coverage []int) geom.Rect {
	nodes := g.Nodes()
	curr := g.NodeAtTopRight(r.TopRight())
	for {
		rowAnchor := nodes[curr]
		topLeft := r.TopLeft()
		var seen []int
		redundant := true
		for {
			if coverage[curr] == 1 {
				redundant = false
				break
			}
			seen = append(seen, curr)
			if nodes[curr].Rect.TopLeft() == topLeft {
				break
			}
			curr = nodes[curr].Left
		}
		if !redundant {
			return r
		}
		r = r.ShrinkTop(rowAnchor.Rect.Height())
		curr = rowAnchor.Bottom
		for _, idx := range seen {
			coverage[idx]--
		}
	}
}

// trimBottom peels redundant cell rows off the bottom edge, walking
// each candidate row left to right.
func trimBottom(r geom.Rect, g *grid.Graph, coverage []int) geom.Rect {
	nodes := g.Nodes()
	curr := g.NodeAtBottomLeft(r.BottomLeft())
	for {
		rowAnchor := nodes[curr]
		bottomRight := r.BottomRight()
		var seen []int
		redundant := true
		for {
			if coverage[curr] == 1 {
				redundant = false
				break
			}
			seen = append(seen, curr)
			if nodes[curr].Rect.BottomRight() == bottomRight {
				break
			}
			curr = nodes[curr].Right
		}
		if !redundant {
			return r
		}
		r = r.ShrinkBottom(rowAnchor.Rect.Height())
		curr = rowAnchor.Top
		for _, idx := range seen {
			coverage[idx]--
		}
	}
}

// trimRight peels redundant cell columns off the right edge, walking
// each candidate column top to bottom.
func trimRight(r geom.Rect, g *grid.Graph, coverage []int) geom.Rect {
	nodes := g.Nodes()
	curr := g.NodeAtTopRight(r.TopRight())
	for {
		columnAnchor := nodes[curr]
		bottomRight := r.BottomRight()
		var seen []int
		redundant := true
		for {
			if coverage[curr] == 1 {
				redundant = false
				break
			}
			seen = append(seen, curr)
			if nodes[curr].Rect.BottomRight() == bottomRight {
				break
			}
			curr = nodes[curr].Bottom
		}
		if !redundant {
			return r
		}
		r = r.ShrinkRight(columnAnchor.Rect.Width())
		curr = columnAnchor.Left
		for _, idx := range seen {
			coverage[idx]--
		}
	}
}

// trimLeft peels redundant cell columns off the left edge, walking each
// candidate column bottom to top.
func trimLeft(r geom.Rect, g *grid.Graph, coverage []int) geom.Rect {
	nodes := g.Nodes()
	curr := g.NodeAtBottomLeft(r.BottomLeft())
	for {
		columnAnchor := nodes[curr]
		topLeft := r.TopLeft()
		var seen []int
		redundant := true
		for {
			if coverage[curr] == 1 {
				redundant = false
				break
			}
			seen = append(seen, curr)
			if nodes[curr].Rect.TopLeft() == topLeft {
				break
			}
			curr = nodes[curr].Top
		}
		if !redundant {
			return r
		}
		r = r.ShrinkLeft(columnAnchor.Rect.Width())
		curr = columnAnchor.Right
		for _, idx := range seen {
			coverage[idx]--
		}
	}
}
