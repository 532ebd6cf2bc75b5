// Package runner executes a cover provider on a problem instance,
// times and verifies each polygon, and aggregates the per-polygon
// results.
package runner

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/polycover/polycover/pkg/cover"
	"github.com/polycover/polycover/pkg/geom"
	"github.com/polycover/polycover/pkg/instance"
)

// Validity classifies the outcome of one polygon (or of the aggregate).
type Validity int

// Validity states, in the order of the original result encoding.
const (
	Invalid Validity = iota
	Valid
	Unchecked
	Timeout
)

// String renders the validity for logs and tables.
func (v Validity) String() string {
	switch v {
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	case Timeout:
		return "timeout"
	default:
		return "unchecked"
	}
}

// Result is the outcome of running a provider on one polygon. The
// first element of a run's result slice is the aggregate over all
// polygons; its cover concatenates the per-polygon covers.
type Result struct {
	CoverSize     int
	Cost          cover.Costs
	ExecutionTime time.Duration
	Validity      Validity
	Cover         []geom.Rect
}

// Runner drives a provider across the polygons of an instance.
type Runner struct {
	logger *log.Logger
	verify bool
}

// New creates a runner. A nil logger discards all output; verify
// controls whether each polygon's cover is checked for exactness
// (verification time does not count toward execution time).
func New(logger *log.Logger, verify bool) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{logger: logger, verify: verify}
}

// Run executes the provider on every polygon of the instance.
//
// Hole-free rectangles are trivial covers and are skipped entirely;
// they contribute neither a result nor aggregate cost. The returned
// slice holds the aggregate at index 0 followed by one Result per
// processed polygon. Malformed geometry aborts the run with an error;
// a provider timeout only marks the polygon and the aggregate.
func (r *Runner) Run(provider cover.Provider, inst *instance.Instance) ([]Result, error) {
	results := make([]Result, 1, len(inst.MultiPolygon)+1)
	if r.verify {
		results[0].Validity = Valid
	} else {
		results[0].Validity = Unchecked
	}

	env := &cover.Env{}
	skipped := 0
	for i := range inst.MultiPolygon {
		polygon := &inst.MultiPolygon[i]
		if polygon.IsRectangle() {
			r.logger.Info("Polygon is hole-free rectangle, skipping", "polygon", i+1)
			skipped++
			continue
		}

		env.Reset()
		r.logger.Info("Computing cover", "polygon", len(results), "total", len(inst.MultiPolygon))

		start := time.Now()
		partial, err := provider.CoverFor(polygon, inst.Costs, env)
		duration := time.Since(start)
		if err != nil {
			return nil, err
		}

		validity := Unchecked
		if reporter, ok := provider.(cover.TimeoutReporter); ok && reporter.TimedOut() {
			validity = Timeout
		} else if r.verify {
			if IsValidCover(partial, polygon) {
				validity = Valid
			} else {
				validity = Invalid
			}
		}

		cost := cover.CoverCost(partial, inst.Costs)
		r.logger.Info("Finished polygon",
			"duration", duration.Round(time.Microsecond), "validity", validity, "size", len(partial))

		results = append(results, Result{
			CoverSize:     len(partial),
			Cost:          cost,
			ExecutionTime: duration,
			Validity:      validity,
			Cover:         partial,
		})

		results[0].CoverSize += len(partial)
		results[0].Cost = results[0].Cost.Add(cost)
		results[0].ExecutionTime += duration
		results[0].Cover = append(results[0].Cover, partial...)
		if validity == Timeout {
			results[0].Validity = Timeout
		} else if validity == Invalid && results[0].Validity != Timeout {
			results[0].Validity = Invalid
		}
	}
	r.logger.Info("Run finished", "skipped", skipped, "processed", len(results)-1)

	return results, nil
}
