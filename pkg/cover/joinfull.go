package cover

import (
	"github.com/polycover/polycover/pkg/geom"
)

// JoinerFull merges arbitrary rectangle pairs when the merge pays off.
// For every rectangle it scans all others, proposes replacing the pair
// by its bounding rectangle, and keeps the partner that maximizes the
// cost reduction, provided the reduction is strictly positive and the
// joined rectangle lies inside the polygon. After a merge the scan
// restarts at the same position; otherwise it advances.
type JoinerFull struct {
	prev Provider
}

// NewJoinerFull wraps prev with an any-pair join pass.
func NewJoinerFull(prev Provider) *JoinerFull { return &JoinerFull{prev: prev} }

// CoverFor implements Provider.
func (pp *JoinerFull) CoverFor(p *geom.Polygon, costs Costs, env *Env) ([]geom.Rect, error) {
	cover, err := pp.prev.CoverFor(p, costs, env)
	if err != nil {
		return nil, err
	}

	i := 0
	for i < len(cover) {
		bestPartner := -1
		var bestReduction int64
		var bestJoined geom.Rect

		for j := i + 1; j < len(cover); j++ {
			joined := cover[i].Join(cover[j])
			originalCost := RectCost(cover[i], costs).Total() + RectCost(cover[j], costs).Total()
			reduction := originalCost - RectCost(joined, costs).Total()
			if reduction <= 0 || (bestPartner >= 0 && reduction <= bestReduction) {
				continue
			}
			if !p.ContainsRect(joined) {
				continue
			}
			bestPartner = j
			bestReduction = reduction
			bestJoined = joined
		}

		if bestPartner < 0 {
			i++
			continue
		}
		// Swap-remove both halves, highest index first, then append
		// the merge and retry from the same position.
		cover[bestPartner] = cover[len(cover)-1]
		cover = cover[:len(cover)-1]
		cover[i] = cover[len(cover)-1]
		cover = cover[:len(cover)-1]
		cover = append(cover, bestJoined)
	}

	env.Coverage = nil
	return cover, nil
}
