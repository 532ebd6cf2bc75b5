package cover

import (
	"slices"

	"github.com/polycover/polycover/pkg/geom"
)

// Joiner merges aligned rectangles when the merge is cheaper.
// Rectangles sharing the same vertical span form a horizontal alignment
// class, rectangles sharing the same horizontal span a vertical one.
// Within a class, sorted along the free axis, neighboring rectangles
// are replaced by their bounding rectangle whenever that is cheaper and
// stays inside the polygon. Horizontal classes are processed first,
// then vertical classes on the updated cover.
type Joiner struct {
	prev Provider
}

// NewJoiner wraps prev with an aligned-join pass.
func NewJoiner(prev Provider) *Joiner { return &Joiner{prev: prev} }

// CoverFor implements Provider.
func (pp *Joiner) CoverFor(p *geom.Polygon, costs Costs, env *Env) ([]geom.Rect, error) {
	cover, err := pp.prev.CoverFor(p, costs, env)
	if err != nil {
		return nil, err
	}

	cover = joinAlignmentPass(p, cover, costs, false)
	cover = joinAlignmentPass(p, cover, costs, true)

	// The merged rectangles may cover additional cells; let the next
	// consumer recompute multiplicities from the current cover.
	env.Coverage = nil
	return cover, nil
}

// joinAlignmentPass joins one orientation of alignment classes.
// vertical selects vertical classes (same x span, stacked in y).
func joinAlignmentPass(p *geom.Polygon, cover []geom.Rect, costs Costs, vertical bool) []geom.Rect {
	type span struct{ lo, hi geom.Coord }
	classes := make(map[span][]int)
	for i, r := range cover {
		if vertical {
			classes[span{r.Min.X, r.Max.X}] = append(classes[span{r.Min.X, r.Max.X}], i)
		} else {
			classes[span{r.Min.Y, r.Max.Y}] = append(classes[span{r.Min.Y, r.Max.Y}], i)
		}
	}

	keys := make([]span, 0, len(classes))
	for k := range classes {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b span) int {
		if a.lo != b.lo {
			if a.lo < b.lo {
				return -1
			}
			return 1
		}
		if a.hi != b.hi {
			if a.hi < b.hi {
				return -1
			}
			return 1
		}
		return 0
	})

	joined := make(map[int]bool)
	for _, key := range keys {
		indices := classes[key]
		slices.SortFunc(indices, func(a, b int) int {
			ca, cb := cover[a].Min.X, cover[b].Min.X
			if vertical {
				ca, cb = cover[a].Min.Y, cover[b].Min.Y
			}
			switch {
			case ca < cb:
				return -1
			case ca > cb:
				return 1
			}
			return 0
		})
		cover = joinAlignedClass(p, cover, indices, costs, joined)
	}

	kept := make([]geom.Rect, 0, len(cover))
	for i, r := range cover {
		if !joined[i] {
			kept = append(kept, r)
		}
	}
	return kept
}

// joinAlignedClass attempts to join neighboring rectangles of one
// alignment class. In a chain a-b-c, a successful join of a and b makes
// the combined rectangle the candidate against c; a failed join moves
// the candidate to b. Joined source indices are recorded in joined, and
// merge results are appended to the cover.
func joinAlignedClass(p *geom.Polygon, cover []geom.Rect, indices []int, costs Costs, joined map[int]bool) []geom.Rect {
	if len(indices) <= 1 {
		return cover
	}

	prev := indices[0]
	for _, curr := range indices[1:] {
		currentCost := CoverCost([]geom.Rect{cover[prev], cover[curr]}, costs).Total()
		proposal := cover[prev].Join(cover[curr])
		proposedCost := RectCost(proposal, costs).Total()

		if proposedCost < currentCost && p.ContainsRect(proposal) {
			joined[prev] = true
			joined[curr] = true
			cover = append(cover, proposal)
			prev = len(cover) - 1
		} else {
			prev = curr
		}
	}
	return cover
}
