package cover

import (
	"math"

	"github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/geom"
)

// Greedy runs a priority-based weighted set cover over all
// super-rectangles. Each candidate tracks the area it would cover that
// no picked rectangle covers yet; in every round the candidate with the
// lowest cost per uncovered unit wins, ties going to the larger
// remaining area. The first pick is the candidate of maximum raw area,
// which guarantees progress even when both cost coefficients are zero.
type Greedy struct{}

// greedyEntry is one candidate super-rectangle in the selection queue.
type greedyEntry struct {
	rect          geom.Rect
	area          int64
	effectiveArea int64 // area not yet covered by picked rectangles
	cost          int64
	costPerUnit   float64
}

func newGreedyEntry(r geom.Rect, costs Costs) greedyEntry {
	area := r.Area()
	cost := RectCost(r, costs).Total()
	return greedyEntry{
		rect:          r,
		area:          area,
		effectiveArea: area,
		cost:          cost,
		costPerUnit:   float64(cost) / float64(area),
	}
}

// update adjusts the entry after picked was added to the cover.
// newlyCovered lists the base rectangles that picked covered first.
func (e *greedyEntry) update(picked geom.Rect, newlyCovered []geom.Rect) {
	if !picked.Intersects(e.rect) {
		return
	}
	if picked.Contains(e.rect) {
		e.effectiveArea = 0
		return
	}
	for _, base := range newlyCovered {
		if e.rect.Contains(base) {
			e.effectiveArea -= base.Area()
		}
	}
	if e.effectiveArea > 0 {
		e.costPerUnit = float64(e.cost) / float64(e.effectiveArea)
	}
}

// CoverFor implements Provider.
func (Greedy) CoverFor(p *geom.Polygon, costs Costs, env *Env) ([]geom.Rect, error) {
	if err := env.EnsureGraph(p); err != nil {
		return nil, err
	}
	g := env.Graph
	nodes := g.Nodes()

	queue := make([]greedyEntry, 0, g.CountAllRects())
	for _, r := range g.AllRects() {
		queue = append(queue, newGreedyEntry(r, costs))
	}
	if len(queue) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "polygon yields no candidate rectangles")
	}

	best := 0
	for i := range queue {
		if queue[i].area > queue[best].area {
			best = i
		}
	}

	covered := make([]bool, len(nodes))
	coveredCount := 0
	var cover []geom.Rect

	for {
		picked := queue[best].rect

		var newlyCovered []geom.Rect
		for idx := range g.Cells(picked) {
			if !covered[idx] {
				covered[idx] = true
				coveredCount++
				newlyCovered = append(newlyCovered, nodes[idx].Rect)
			}
		}
		cover = append(cover, picked)
		queue[best] = queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if coveredCount == len(nodes) {
			return cover, nil
		}

		best = -1
		bestCost := math.Inf(1)
		i := 0
		for i < len(queue) {
			entry := &queue[i]
			entry.update(picked, newlyCovered)
			if entry.effectiveArea == 0 {
				queue[i] = queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				continue
			}
			if entry.costPerUnit < bestCost ||
				(entry.costPerUnit == bestCost && entry.effectiveArea > queue[best].effectiveArea) {
				best = i
				bestCost = entry.costPerUnit
			}
			i++
		}
		if best < 0 {
			return nil, errors.New(errors.ErrCodeInternal,
				"greedy queue exhausted with %d of %d cells uncovered", len(nodes)-coveredCount, len(nodes))
		}
	}
}
