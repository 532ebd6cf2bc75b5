package cover

import (
	"github.com/polycover/polycover/pkg/geom"
)

// Pruner removes fully redundant rectangles from a cover: rectangles
// all of whose cells are covered at least twice. Removal decrements the
// affected multiplicities, so a single forward pass suffices: removing
// a rectangle can only make others less redundant, never more.
type Pruner struct {
	prev Provider
}

// NewPruner wraps prev with a pruning pass.
func NewPruner(prev Provider) *Pruner { return &Pruner{prev: prev} }

// CoverFor implements Provider.
func (pp *Pruner) CoverFor(p *geom.Polygon, costs Costs, env *Env) ([]geom.Rect, error) {
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

	i := 0
	for i < len(cover) {
		redundant := true
		for idx := range g.Cells(cover[i]) {
			if coverage[idx] == 1 {
				redundant = false
				break
			}
		}
		if !redundant {
			i++
			continue
		}
		for idx := range g.Cells(cover[i]) {
			coverage[idx]--
		}
		cover[i] = cover[len(cover)-1]
		cover = cover[:len(cover)-1]
	}
	return cover, nil
}
