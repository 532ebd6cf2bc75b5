package cover

import (
	"slices"

	"github.com/polycover/polycover/pkg/geom"
)

// splitFunc proposes a replacement cover for the cells a rectangle
// covers uniquely.
type splitFunc func(r geom.Rect, costs Costs, env *Env) ([]geom.Rect, error)

// splitter is the shared postprocessing pass of the two split
// strategies: each rectangle is replaced by the proposed split whenever
// the split is cheaper. Cells of a replaced rectangle that no split
// rectangle covers lose one unit of multiplicity.
type splitter struct {
	prev  Provider
	split splitFunc
}

func (pp *splitter) CoverFor(p *geom.Polygon, costs Costs, env *Env) ([]geom.Rect, error) {
	cover, err := pp.prev.CoverFor(p, costs, env)
	if err != nil {
		return nil, err
	}

	if _, err := env.EnsureCoverage(p, cover); err != nil {
		return nil, err
	}
	env.PixelCoverageInvalidated = true

	var added []geom.Rect
	i := 0
	for i < len(cover) {
		split, err := pp.split(cover[i], costs, env)
		if err != nil {
			return nil, err
		}
		currentCost := RectCost(cover[i], costs).Total()
		if CoverCost(split, costs).Total() >= currentCost {
			i++
			continue
		}
		added = append(added, split...)
		reduceCoverage(cover[i], split, env)
		cover[i] = cover[len(cover)-1]
		cover = cover[:len(cover)-1]
	}
	cover = append(cover, added...)

	// Overlapping replacement bounding boxes can raise multiplicities
	// in ways the incremental bookkeeping above does not track, so the
	// next consumer recomputes from scratch.
	env.Coverage = nil
	return cover, nil
}

// reduceCoverage decrements the multiplicity of every cell of the
// replaced rectangle that none of the split rectangles still covers.
func reduceCoverage(replaced geom.Rect, split []geom.Rect, env *Env) {
	nodes := env.Graph.Nodes()
	for idx := range env.Graph.Cells(replaced) {
		covered := false
		for _, r := range split {
			if r.Contains(nodes[idx].Rect) {
				covered = true
				break
			}
		}
		if !covered {
			env.Coverage[idx]--
		}
	}
}

// uniquePolygons unions the cells covered only by r into polygons.
func uniquePolygons(r geom.Rect, env *Env) ([]geom.Polygon, error) {
	var unique []geom.Rect
	nodes := env.Graph.Nodes()
	for idx := range env.Graph.Cells(r) {
		if env.Coverage[idx] == 1 {
			unique = append(unique, nodes[idx].Rect)
		}
	}
	slices.SortFunc(unique, geom.CompareRects)
	return unionRects(unique)
}

// BBoxSplitter replaces a rectangle by the bounding boxes of its
// uniquely covered regions when that is cheaper.
type BBoxSplitter struct {
	splitter
}

// NewBBoxSplitter wraps prev with a bounding-box split pass.
func NewBBoxSplitter(prev Provider) *BBoxSplitter {
	pp := &BBoxSplitter{}
	pp.prev = prev
	pp.split = bboxSplit
	return pp
}

func bboxSplit(r geom.Rect, costs Costs, env *Env) ([]geom.Rect, error) {
	polygons, err := uniquePolygons(r, env)
	if err != nil {
		return nil, err
	}
	boxes := make([]geom.Rect, 0, len(polygons))
	for _, p := range polygons {
		boxes = append(boxes, p.BBox())
	}
	return boxes, nil
}

// PartitionSplitter replaces a rectangle by a rectangle partition of
// its uniquely covered regions when that is cheaper.
type PartitionSplitter struct {
	splitter
}

// NewPartitionSplitter wraps prev with a partition split pass.
func NewPartitionSplitter(prev Provider) *PartitionSplitter {
	pp := &PartitionSplitter{}
	pp.prev = prev
	pp.split = partitionSplit
	return pp
}

func partitionSplit(r geom.Rect, costs Costs, env *Env) ([]geom.Rect, error) {
	polygons, err := uniquePolygons(r, env)
	if err != nil {
		return nil, err
	}
	var rects []geom.Rect
	var algorithm Partition
	for i := range polygons {
		p := &polygons[i]
		if p.IsRectangle() {
			rects = append(rects, p.BBox())
			continue
		}
		// The partition runs on a fresh sub-polygon; the shared
		// environment describes the enclosing polygon and must not be
		// clobbered.
		part, err := algorithm.CoverFor(p, costs, &Env{})
		if err != nil {
			return nil, err
		}
		rects = append(rects, part...)
	}
	return rects, nil
}
