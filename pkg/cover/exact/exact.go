// Package exact solves the weighted rectangle covering problem to
// optimality by reduction to weighted partial MaxSAT.
//
// One boolean variable is created per super-rectangle. Every base
// rectangle contributes a hard clause requiring at least one of the
// super-rectangles containing it to be selected; every super-rectangle
// contributes a soft clause against its own selection, weighted by its
// cost. A minimum-weight model of this formula is a minimum-cost cover.
//
// Unlike the polynomial heuristics, the exact solver honors a
// per-polygon timeout: when the budget runs out the polygon's result is
// reported as a timeout and the run continues with the next polygon.
package exact

import (
	"fmt"
	"time"

	"github.com/crillab/gophersat/maxsat"

	"github.com/polycover/polycover/pkg/cover"
	"github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/geom"
	"github.com/polycover/polycover/pkg/grid"
)

// Algorithm is the exact set-cover provider.
type Algorithm struct {
	// UsePixels switches the basis from base rectangles to unit cells.
	// This exists to demonstrate that the base-rectangle formulation is
	// equivalent to the per-pixel one; it is far too slow for large
	// instances and should stay confined to tests.
	UsePixels bool

	// Timeout bounds the solve time per polygon. Zero means no limit.
	Timeout time.Duration

	timedOut bool
}

// New returns an exact provider with the given basis mode and timeout.
func New(usePixels bool, timeout time.Duration) *Algorithm {
	return &Algorithm{UsePixels: usePixels, Timeout: timeout}
}

// TimedOut reports whether the most recent solve hit the timeout.
func (a *Algorithm) TimedOut() bool { return a.timedOut }

// CoverFor implements cover.Provider.
func (a *Algorithm) CoverFor(p *geom.Polygon, costs cover.Costs, env *cover.Env) ([]geom.Rect, error) {
	a.timedOut = false

	if err := env.EnsureBaseRects(p); err != nil {
		return nil, err
	}
	baseRects := env.BaseRects

	var candidates []geom.Rect
	if a.UsePixels {
		baseRects = explodeToPixels(baseRects)
		candidates = grid.NewGraph(baseRects).AllRects()
	} else {
		if err := env.EnsureGraph(p); err != nil {
			return nil, err
		}
		candidates = env.Graph.AllRects()
	}

	constrs := make([]maxsat.Constr, 0, len(baseRects)+len(candidates))
	for i, candidate := range candidates {
		weight := int(cover.RectCost(candidate, costs).Total())
		if weight > 0 {
			constrs = append(constrs,
				maxsat.WeightedClause([]maxsat.Lit{maxsat.Not(varName(i))}, weight))
		}
	}
	for _, base := range baseRects {
		var lits []maxsat.Lit
		for i, candidate := range candidates {
			if candidate.Contains(base) {
				lits = append(lits, maxsat.Var(varName(i)))
			}
		}
		if len(lits) == 0 {
			return nil, errors.New(errors.ErrCodeInternal,
				"base rectangle %v is covered by no candidate", base)
		}
		constrs = append(constrs, maxsat.HardClause(lits...))
	}

	model, ok := a.solve(maxsat.New(constrs...))
	if a.timedOut {
		return nil, nil
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "covering formula is unsatisfiable")
	}

	var result []geom.Rect
	for i, candidate := range candidates {
		if model[varName(i)] {
			result = append(result, candidate)
		}
	}
	return result, nil
}

// solve runs the MaxSAT solver, racing it against the timeout.
func (a *Algorithm) solve(problem *maxsat.Problem) (map[string]bool, bool) {
	if a.Timeout <= 0 {
		model, _ := problem.Solve()
		return model, model != nil
	}

	done := make(chan map[string]bool, 1)
	go func() {
		model, _ := problem.Solve()
		done <- model
	}()
	select {
	case model := <-done:
		return model, model != nil
	case <-time.After(a.Timeout):
		a.timedOut = true
		return nil, false
	}
}

func varName(i int) string { return fmt.Sprintf("r%d", i) }

// explodeToPixels replaces each base rectangle by its unit cells.
func explodeToPixels(baseRects []geom.Rect) []geom.Rect {
	var pixels []geom.Rect
	for _, base := range baseRects {
		for y := base.Min.Y; y < base.Max.Y; y++ {
			for x := base.Min.X; x < base.Max.X; x++ {
				pixels = append(pixels, geom.UnitRect(geom.Point{X: x, Y: y + 1}))
			}
		}
	}
	return pixels
}
