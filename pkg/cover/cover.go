// Package cover implements the covering algorithms and cost-reducing
// postprocessors for the weighted rectilinear rectangle covering
// problem.
//
// # Architecture
//
// Everything that can produce a cover implements Provider. The three
// heuristic algorithms (Greedy, Strip, Partition) produce an initial
// cover from the polygon; postprocessors (Pruner, Trimmer, Joiner,
// JoinerFull, BBoxSplitter, PartitionSplitter) each wrap another
// Provider and rewrite its cover in place. Chaining postprocessors
// composes their effects:
//
//	provider, _ := cover.NewAlgorithm("greedy")
//	provider, _ = cover.NewPostprocessor("prune", provider)
//	provider, _ = cover.NewPostprocessor("trim", provider)
//	rects, err := provider.CoverFor(polygon, costs, &cover.Env{})
//
// # Runtime environment
//
// All providers share a per-polygon Env so the base rectangles, the
// grid graph and the coverage-multiplicity vector are computed at most
// once per polygon. The Env is owned by the caller, passed down the
// provider chain, and reset between polygons. Nothing in this package
// keeps state across calls, and providers execute strictly
// sequentially, so no synchronization is needed.
package cover

import (
	"slices"

	"github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/geom"
	"github.com/polycover/polycover/pkg/grid"
)

// Costs holds the two cost coefficients of a problem instance: a fixed
// cost per created rectangle and a cost per unit of rectangle area.
type Costs struct {
	Creation int64 `json:"creation" toml:"creation_cost"`
	Area     int64 `json:"area" toml:"area_cost"`
}

// Add accumulates other into c and returns the sum.
func (c Costs) Add(other Costs) Costs {
	return Costs{Creation: c.Creation + other.Creation, Area: c.Area + other.Area}
}

// Total returns creation plus area cost.
func (c Costs) Total() int64 { return c.Creation + c.Area }

// RectCost returns the cost breakdown of a single rectangle:
// the creation coefficient plus the area coefficient times its area.
func RectCost(r geom.Rect, costs Costs) Costs {
	return Costs{Creation: costs.Creation, Area: costs.Area * r.Area()}
}

// CoverCost returns the summed cost breakdown of a whole cover.
func CoverCost(rects []geom.Rect, costs Costs) Costs {
	var total Costs
	for _, r := range rects {
		total = total.Add(RectCost(r, costs))
	}
	return total
}

// Provider is anything that can produce a rectangle cover for a
// polygon: an algorithm, or a postprocessor wrapping another Provider.
// The union of the returned rectangles must equal the polygon's region.
type Provider interface {
	CoverFor(p *geom.Polygon, costs Costs, env *Env) ([]geom.Rect, error)
}

// TimeoutReporter is implemented by providers that can give up on a
// polygon when a configured time budget runs out. The runner checks it
// after each polygon.
type TimeoutReporter interface {
	TimedOut() bool
}

// Env is the per-polygon runtime state shared along a provider chain.
// It caches the base rectangles, the grid graph and the per-cell
// coverage multiplicity of the current cover. The zero value is ready
// to use; Reset prepares it for the next polygon.
type Env struct {
	BaseRects []geom.Rect
	Graph     *grid.Graph

	// Coverage[i] is the number of cover rectangles containing base
	// rectangle i, or nil when it has not been computed for the
	// current cover. Postprocessors that cannot maintain it
	// incrementally set it to nil so the next consumer recomputes it.
	Coverage []int

	// PixelCoverageInvalidated records that a postprocessor changed
	// which rectangles cover which cells, so any per-pixel bookkeeping
	// derived from the cover is stale.
	PixelCoverageInvalidated bool
}

// Reset clears all cached state for the next polygon.
func (e *Env) Reset() {
	e.BaseRects = nil
	e.Graph = nil
	e.Coverage = nil
	e.PixelCoverageInvalidated = false
}

// EnsureBaseRects computes and caches the polygon's base rectangles.
func (e *Env) EnsureBaseRects(p *geom.Polygon) error {
	if len(e.BaseRects) > 0 {
		return nil
	}
	rects, err := grid.BaseRects(p)
	if err != nil {
		return err
	}
	e.BaseRects = rects
	return nil
}

// EnsureGraph computes and caches the grid graph.
func (e *Env) EnsureGraph(p *geom.Polygon) error {
	if e.Graph != nil && !e.Graph.Empty() {
		return nil
	}
	if err := e.EnsureBaseRects(p); err != nil {
		return err
	}
	e.Graph = grid.NewGraph(e.BaseRects)
	return nil
}

// EnsureCoverage computes and caches the coverage-multiplicity vector
// for the given cover: for every base rectangle, the number of cover
// rectangles containing it.
func (e *Env) EnsureCoverage(p *geom.Polygon, cover []geom.Rect) ([]int, error) {
	if e.Coverage != nil {
		return e.Coverage, nil
	}
	if err := e.EnsureGraph(p); err != nil {
		return nil, err
	}
	coverage := make([]int, e.Graph.Len())
	for _, r := range cover {
		for idx := range e.Graph.Cells(r) {
			coverage[idx]++
		}
	}
	e.Coverage = coverage
	return coverage, nil
}

// Algorithm and postprocessor names accepted by the factories. The
// exact provider lives in the exact subpackage and is registered by the
// CLI, since it needs a timeout.
var (
	AlgorithmNames     = []string{"greedy", "strip", "partition"}
	PostprocessorNames = []string{"prune", "trim", "join", "join-full", "bbox-split", "partition-split"}
)

// NewAlgorithm returns the heuristic algorithm with the given name.
func NewAlgorithm(name string) (Provider, error) {
	switch name {
	case "greedy":
		return &Greedy{}, nil
	case "strip":
		return &Strip{}, nil
	case "partition":
		return &Partition{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidChain, "unknown algorithm %q (valid: %v)", name, AlgorithmNames)
}

// NewPostprocessor wraps prev with the postprocessor of the given name.
func NewPostprocessor(name string, prev Provider) (Provider, error) {
	switch name {
	case "prune":
		return NewPruner(prev), nil
	case "trim":
		return NewTrimmer(prev), nil
	case "join":
		return NewJoiner(prev), nil
	case "join-full":
		return NewJoinerFull(prev), nil
	case "bbox-split":
		return NewBBoxSplitter(prev), nil
	case "partition-split":
		return NewPartitionSplitter(prev), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidChain, "unknown postprocessor %q (valid: %v)", name, PostprocessorNames)
}

// sortedRectSet returns the set's elements in canonical order.
func sortedRectSet(set map[geom.Rect]struct{}) []geom.Rect {
	rects := make([]geom.Rect, 0, len(set))
	for r := range set {
		rects = append(rects, r)
	}
	slices.SortFunc(rects, geom.CompareRects)
	return rects
}
