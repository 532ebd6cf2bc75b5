package cover

import (
	"slices"

	"github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/geom"
	"github.com/polycover/polycover/pkg/grid"
)

// Partition computes a rectangle partition of the polygon: a cover
// whose rectangles are pairwise interior-disjoint, with the fewest
// rectangles possible for the chosen cut structure.
//
// The construction follows the classic good-diagonal approach: connect
// pairs of concave vertices by axis-parallel diagonals that stay inside
// the polygon, drop a minimum set of mutually intersecting diagonals
// (a minimum vertex cover of the bipartite vertical/horizontal
// intersection graph, found via max-flow), cut along the survivors, and
// resolve every remaining concave vertex with one arbitrary inward cut.
// The rectangular faces of the resulting arrangement are the partition.
type Partition struct{}

// CoverFor implements Provider.
func (Partition) CoverFor(p *geom.Polygon, costs Costs, env *Env) ([]geom.Rect, error) {
	vertices, concave := p.SortedConcaveVertices()
	handled := make(map[geom.Point]bool)

	good := findGoodDiagonals(p, vertices, concave)
	pairs := intersectingDiagonals(good)
	cuts := idealDiagonalSet(pairs, handled)

	inPair := make(map[geom.Segment]bool)
	for _, pair := range pairs {
		inPair[pair[0]] = true
		inPair[pair[1]] = true
	}
	for _, diagonal := range good {
		if !inPair[diagonal] {
			cuts = append(cuts, diagonal)
			handled[diagonal.A] = true
			handled[diagonal.B] = true
		}
	}

	for _, v := range vertices {
		if handled[v] {
			continue
		}
		cut, err := pickCut(p, v, concave[v], cuts)
		if err != nil {
			return nil, err
		}
		handled[v] = true
		cuts = append(cuts, cut)
	}

	partition := grid.RectFaces(p, cuts)
	if len(partition) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "partition produced no rectangles")
	}
	return partition, nil
}

// findGoodDiagonals returns the axis-parallel segments connecting two
// concave vertices that lie entirely inside the polygon. Candidates are
// formed between vertices adjacent in their shared row or column, and
// only when the lower vertex opens toward the upper one and vice versa.
func findGoodDiagonals(p *geom.Polygon, vertices []geom.Point, concave map[geom.Point][2]geom.Dir) []geom.Segment {
	xAligned := make(map[geom.Coord][]geom.Coord) // y -> xs of concave vertices in that row
	yAligned := make(map[geom.Coord][]geom.Coord) // x -> ys of concave vertices in that column
	for _, v := range vertices {
		xAligned[v.Y] = append(xAligned[v.Y], v.X)
		yAligned[v.X] = append(yAligned[v.X], v.Y)
	}

	var diagonals []geom.Segment
	scanAligned(p, geom.Up, yAligned, concave, &diagonals)
	scanAligned(p, geom.Right, xAligned, concave, &diagonals)
	return diagonals
}

func scanAligned(p *geom.Polygon, positive geom.Dir, aligned map[geom.Coord][]geom.Coord,
	concave map[geom.Point][2]geom.Dir, diagonals *[]geom.Segment) {

	negative := positive.Rot180()
	horizontal := positive.DY == 0

	fixedCoords := make([]geom.Coord, 0, len(aligned))
	for c := range aligned {
		fixedCoords = append(fixedCoords, c)
	}
	slices.Sort(fixedCoords)

	for _, fixed := range fixedCoords {
		coords := aligned[fixed]
		if len(coords) <= 1 {
			continue
		}
		slices.Sort(coords)

		at := func(variable geom.Coord) geom.Point {
			if horizontal {
				return geom.Point{X: variable, Y: fixed}
			}
			return geom.Point{X: fixed, Y: variable}
		}

		i := 0
		for i < len(coords)-1 {
			point := at(coords[i])
			if !opensToward(concave[point], positive) {
				// Not open in the positive direction: if this vertex
				// formed a diagonal with its predecessor, we found it
				// on the previous step already.
				i++
				continue
			}
			other := at(coords[i+1])
			if !opensToward(concave[other], negative) {
				i++
				continue
			}
			candidate := geom.Segment{A: point, B: other}
			if isValidGoodDiagonal(candidate, p) {
				*diagonals = append(*diagonals, candidate)
			}
			// The next vertex already closed a diagonal with this one,
			// so it cannot open another along the same axis.
			i++
			if i != len(coords)-1 {
				i++
			}
		}
	}
}

func opensToward(dirs [2]geom.Dir, d geom.Dir) bool {
	return dirs[0] == d || dirs[1] == d
}

// isValidGoodDiagonal reports whether the candidate diagonal stays
// inside the polygon: no boundary edge may cross it anywhere except at
// its endpoints.
func isValidGoodDiagonal(candidate geom.Segment, p *geom.Polygon) bool {
	for _, edge := range p.Edges() {
		if geom.IntersectsInterior(edge, candidate) {
			return false
		}
	}
	return true
}

// intersectingDiagonals returns every (vertical, horizontal) pair of
// good diagonals that share at least one point.
func intersectingDiagonals(diagonals []geom.Segment) [][2]geom.Segment {
	var verticals, horizontals []geom.Segment
	for _, d := range diagonals {
		if d.IsHorizontal() {
			horizontals = append(horizontals, d)
		} else {
			verticals = append(verticals, d)
		}
	}

	var pairs [][2]geom.Segment
	for _, v := range verticals {
		for _, h := range horizontals {
			if geom.SegmentsIntersect(v, h) {
				pairs = append(pairs, [2]geom.Segment{v, h})
			}
		}
	}
	return pairs
}

// idealDiagonalSet selects the largest subset of pairwise disjoint
// diagonals among the intersecting pairs. Verticals and horizontals
// form a bipartite intersection graph; the complement of its minimum
// vertex cover (König's theorem over a unit-capacity max flow) is a
// maximum independent set. Endpoints of chosen diagonals are marked
// handled.
func idealDiagonalSet(pairs [][2]geom.Segment, handled map[geom.Point]bool) []geom.Segment {
	if len(pairs) == 0 {
		return nil
	}

	const source, sink = 0, 1
	vertexOf := make(map[geom.Segment]int)
	var order []geom.Segment // diagonals in first-seen order

	network := newFlowNetwork(2)
	vertex := func(s geom.Segment, vertical bool) int {
		if v, ok := vertexOf[s]; ok {
			return v
		}
		v := len(network.adj)
		network.adj = append(network.adj, nil)
		vertexOf[s] = v
		order = append(order, s)
		if vertical {
			network.addEdge(source, v, 1)
		} else {
			network.addEdge(v, sink, 1)
		}
		return v
	}

	for _, pair := range pairs {
		v := vertex(pair[0], true)
		h := vertex(pair[1], false)
		network.addEdge(v, h, flowInf)
	}

	network.maxFlow(source, sink)
	reach := network.reachable(source)

	var chosen []geom.Segment
	for _, s := range order {
		v := vertexOf[s]
		vertical := !s.IsHorizontal()
		// Source-side verticals and sink-side horizontals are outside
		// the minimum vertex cover, so they survive.
		if (vertical && reach[v]) || (!vertical && !reach[v]) {
			chosen = append(chosen, s)
			handled[s.A] = true
			handled[s.B] = true
		}
	}
	return chosen
}

// pickCut resolves a concave vertex that no good diagonal handles by
// cutting along the first of its two inward directions, up to the
// nearest point intersection with the boundary or an earlier cut.
func pickCut(p *geom.Polygon, v geom.Point, dirs [2]geom.Dir, previousCuts []geom.Segment) (geom.Segment, error) {
	d := dirs[0]

	hitSet := make(map[geom.Point]struct{})
	for _, edge := range p.Edges() {
		if hit, ok := geom.RayPointHit(v, d, edge); ok {
			hitSet[hit] = struct{}{}
		}
	}
	for _, cut := range previousCuts {
		if hit, ok := geom.RayPointHit(v, d, cut); ok {
			hitSet[hit] = struct{}{}
		}
	}
	// The ray grazes the vertex's own corner.
	delete(hitSet, v)

	if len(hitSet) == 0 {
		return geom.Segment{}, errors.New(errors.ErrCodeInvalidGeometry,
			"cut from concave vertex (%d %d) escapes the polygon", v.X, v.Y)
	}
	hits := make([]geom.Point, 0, len(hitSet))
	for hit := range hitSet {
		hits = append(hits, hit)
	}
	closest := slices.MinFunc(hits, geom.Point.Cmp)
	if !d.Positive() {
		closest = slices.MaxFunc(hits, geom.Point.Cmp)
	}
	return geom.Segment{A: v, B: closest}, nil
}
