package grid

import (
	"iter"
	"slices"

	"github.com/polycover/polycover/pkg/geom"
)

// None marks a missing neighbor reference in a Node.
const None = -1

// Node is one base rectangle together with the indices of its four
// neighbors in the graph. Neighbor references use None when the cell
// touches the polygon boundary on that side. Vertical and horizontal
// adjacency of base rectangles is unique, which is what makes a single
// index per side sufficient.
type Node struct {
	Rect                     geom.Rect
	Left, Right, Top, Bottom int
}

// Graph links the base rectangles of one polygon into a grid: every
// node knows its unique neighbor on each side, and two point-to-index
// maps locate a cell by its bottom-left or top-right corner.
//
// A Graph is built once per polygon and then shared read-only by
// algorithms and postprocessors through the runtime environment.
type Graph struct {
	nodes      []Node
	bottomLeft map[geom.Point]int
	topRight   map[geom.Point]int
}

// NewGraph builds the grid graph for the given base rectangles.
func NewGraph(baseRects []geom.Rect) *Graph {
	g := &Graph{}
	g.Build(baseRects)
	return g
}

// Build (re)constructs the graph from the given base rectangles.
//
// Nodes are inserted in sorted top-left order (x ascending, y
// descending). Under that order a node's left neighbor and top neighbor
// are always inserted first, so one lookup of the node's top-left
// corner in each map wires both directions of each adjacency.
func (g *Graph) Build(baseRects []geom.Rect) {
	rects := slices.Clone(baseRects)
	slices.SortFunc(rects, func(a, b geom.Rect) int {
		ta, tb := a.TopLeft(), b.TopLeft()
		if ta.X != tb.X {
			if ta.X < tb.X {
				return -1
			}
			return 1
		}
		if ta.Y != tb.Y {
			if ta.Y > tb.Y {
				return -1
			}
			return 1
		}
		return 0
	})

	g.nodes = make([]Node, 0, len(rects))
	g.bottomLeft = make(map[geom.Point]int, len(rects))
	g.topRight = make(map[geom.Point]int, len(rects))

	for _, rect := range rects {
		id := len(g.nodes)
		node := Node{Rect: rect, Left: None, Right: None, Top: None, Bottom: None}
		tl := rect.TopLeft()
		if left, ok := g.topRight[tl]; ok {
			node.Left = left
			g.nodes[left].Right = id
		}
		if top, ok := g.bottomLeft[tl]; ok {
			node.Top = top
			g.nodes[top].Bottom = id
		}
		g.nodes = append(g.nodes, node)
		g.bottomLeft[rect.BottomLeft()] = id
		g.topRight[rect.TopRight()] = id
	}
}

// Nodes returns the node slice. Callers must not modify it.
func (g *Graph) Nodes() []Node { return g.nodes }

// Len returns the number of cells.
func (g *Graph) Len() int { return len(g.nodes) }

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() bool { return len(g.nodes) == 0 }

// NodeAtBottomLeft returns the index of the cell whose bottom-left
// corner is p, or None.
func (g *Graph) NodeAtBottomLeft(p geom.Point) int {
	if id, ok := g.bottomLeft[p]; ok {
		return id
	}
	return None
}

// NodeAtTopRight returns the index of the cell whose top-right corner
// is p, or None.
func (g *Graph) NodeAtTopRight(p geom.Point) int {
	if id, ok := g.topRight[p]; ok {
		return id
	}
	return None
}

// Cells iterates over the indices of every cell contained in r, which
// must be a union of base rectangles. The walk starts at the cell whose
// top-right corner is r.Max, descends a column until it leaves r, then
// steps the column start one cell to the left and repeats. Each cell is
// yielded exactly once; no allocation happens per step.
func (g *Graph) Cells(r geom.Rect) iter.Seq[int] {
	return func(yield func(int) bool) {
		left, ok := g.topRight[r.Max]
		if !ok {
			return
		}
		down := left
		for {
			if !yield(down) {
				return
			}
			switch {
			case g.nodes[down].Rect.Min.Y > r.Min.Y && g.nodes[down].Bottom != None:
				down = g.nodes[down].Bottom
			case g.nodes[left].Rect.Min.X > r.Min.X && g.nodes[left].Left != None:
				left = g.nodes[left].Left
				down = left
			default:
				return
			}
		}
	}
}

// Heights returns, for every node, the number of cells strictly below
// it in its vertical run; equivalently the node's position in its
// column counted from the bottom.
func (g *Graph) Heights() []int {
	heights := make([]int, len(g.nodes))
	for i := range g.nodes {
		if g.nodes[i].Bottom != None {
			continue
		}
		h := 0
		for top := g.nodes[i].Top; top != None; top = g.nodes[top].Top {
			h++
			heights[top] = h
		}
	}
	return heights
}

// AllRects enumerates every super-rectangle: every axis-aligned
// rectangle that is exactly a union of base rectangles. For each node
// taken as the top-right cell, the enumeration walks its left chain and
// emits one rectangle per feasible depth. The output order is fixed by
// the node order, so repeated runs produce identical slices.
func (g *Graph) AllRects() []geom.Rect {
	var rects []geom.Rect
	heights := g.Heights()
	for i := range g.nodes {
		tr := g.nodes[i].Rect.TopRight()
		maxHeight := heights[i]
		for left := i; left != None; left = g.nodes[left].Left {
			maxHeight = min(maxHeight, heights[left])
			down := left
			for h := 0; h <= maxHeight; h++ {
				rects = append(rects, geom.Rect{Min: g.nodes[down].Rect.BottomLeft(), Max: tr})
				down = g.nodes[down].Bottom
			}
		}
	}
	return rects
}

// CountAllRects returns the number of super-rectangles without
// materializing them.
func (g *Graph) CountAllRects() int {
	count := 0
	heights := g.Heights()
	for i := range g.nodes {
		maxHeight := heights[i]
		for left := i; left != None; left = g.nodes[left].Left {
			maxHeight = min(maxHeight, heights[left])
			count += maxHeight + 1
		}
	}
	return count
}

// RectsWithin enumerates the super-rectangles contained in r, which
// must itself be a union of base rectangles.
func (g *Graph) RectsWithin(r geom.Rect) []geom.Rect {
	cells := slices.Collect(g.Cells(r))
	var rects []geom.Rect
	for i, trCell := range cells {
		tr := g.nodes[trCell].Rect.TopRight()
		for _, blCell := range cells[i:] {
			bl := g.nodes[blCell].Rect.BottomLeft()
			if bl.Y < tr.Y {
				rects = append(rects, geom.Rect{Min: bl, Max: tr})
			}
		}
	}
	return rects
}

// MaximalRects enumerates the super-rectangles that cannot be extended
// in any direction and remain unions of base rectangles. For every
// column top and every depth, the strip is extended sideways as long as
// the neighbors are deep enough; it is emitted when the minimum depth
// seen equals the requested depth, meaning no vertical growth is
// possible. Duplicates are removed and the result sorted.
func (g *Graph) MaximalRects() []geom.Rect {
	heights := g.Heights()
	set := make(map[geom.Rect]struct{})
	for i := range g.nodes {
		if g.nodes[i].Top != None {
			continue
		}
		for h := 0; h <= heights[i]; h++ {
			left, right := i, i
			minHeight := heights[i]
			for g.nodes[left].Left != None && heights[g.nodes[left].Left] >= h {
				minHeight = min(minHeight, heights[g.nodes[left].Left])
				left = g.nodes[left].Left
			}
			for g.nodes[right].Right != None && heights[g.nodes[right].Right] >= h {
				minHeight = min(minHeight, heights[g.nodes[right].Right])
				right = g.nodes[right].Right
			}
			if minHeight != h {
				continue
			}
			bottomLeft := left
			for range h {
				bottomLeft = g.nodes[bottomLeft].Bottom
			}
			rect := geom.Rect{
				Min: g.nodes[bottomLeft].Rect.BottomLeft(),
				Max: g.nodes[right].Rect.TopRight(),
			}
			set[rect] = struct{}{}
		}
	}
	rects := make([]geom.Rect, 0, len(set))
	for r := range set {
		rects = append(rects, r)
	}
	slices.SortFunc(rects, geom.CompareRects)
	return rects
}
