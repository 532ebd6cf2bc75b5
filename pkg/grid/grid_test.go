package grid

import (
	"slices"
	"testing"

	"github.com/polycover/polycover/pkg/geom"
)

func lShape(t *testing.T) *geom.Polygon {
	t.Helper()
	p, err := geom.NewPolygon(geom.Ring{{0, 0}, {10, 0}, {10, 4}, {4, 4}, {4, 10}, {0, 10}})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	return p
}

func squareWithHole(t *testing.T) *geom.Polygon {
	t.Helper()
	p, err := geom.NewPolygon(
		geom.Ring{{0, 0}, {6, 0}, {6, 6}, {0, 6}},
		geom.Ring{{2, 2}, {2, 4}, {4, 4}, {4, 2}},
	)
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	return p
}

func totalArea(rects []geom.Rect) int64 {
	var area int64
	for _, r := range rects {
		area += r.Area()
	}
	return area
}

func TestBaseRects_LShape(t *testing.T) {
	rects, err := BaseRects(lShape(t))
	if err != nil {
		t.Fatalf("BaseRects: %v", err)
	}

	want := []geom.Rect{
		geom.MustRect(0, 0, 4, 4),
		geom.MustRect(0, 4, 4, 10),
		geom.MustRect(4, 0, 10, 4),
	}
	if !slices.Equal(rects, want) {
		t.Errorf("BaseRects = %v, want %v", rects, want)
	}
}

func TestBaseRects_SquareWithHole(t *testing.T) {
	rects, err := BaseRects(squareWithHole(t))
	if err != nil {
		t.Fatalf("BaseRects: %v", err)
	}

	if len(rects) != 8 {
		t.Fatalf("got %d cells, want 8 (3x3 grid minus the hole)", len(rects))
	}
	if got := totalArea(rects); got != 32 {
		t.Errorf("total cell area = %d, want 32", got)
	}
	hole := geom.MustRect(2, 2, 4, 4)
	for _, r := range rects {
		if r.Intersects(hole) {
			t.Errorf("cell %v overlaps the hole", r)
		}
	}
}

func TestBaseRects_RejectsTrivialRectangle(t *testing.T) {
	square, err := geom.NewPolygon(geom.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	if _, err := BaseRects(square); err == nil {
		t.Fatal("BaseRects accepted a hole-free rectangle")
	}
}

func TestGraph_Neighbors_LShape(t *testing.T) {
	rects, err := BaseRects(lShape(t))
	if err != nil {
		t.Fatalf("BaseRects: %v", err)
	}
	g := NewGraph(rects)
	nodes := g.Nodes()

	// Sorted by top-left (x ascending, y descending):
	// 0: (0 4)/(4 10), 1: (0 0)/(4 4), 2: (4 0)/(10 4)
	if nodes[0].Rect != geom.MustRect(0, 4, 4, 10) {
		t.Fatalf("node 0 = %v, unexpected build order", nodes[0].Rect)
	}
	if nodes[1].Top != 0 || nodes[0].Bottom != 1 {
		t.Error("cells 0 and 1 should be vertical neighbors")
	}
	if nodes[2].Left != 1 || nodes[1].Right != 2 {
		t.Error("cells 1 and 2 should be horizontal neighbors")
	}
	if nodes[0].Left != None || nodes[0].Top != None || nodes[2].Right != None {
		t.Error("boundary sides should have no neighbors")
	}
}

func TestGraph_Heights(t *testing.T) {
	g := NewGraph(mustBaseRects(t, lShape(t)))
	heights := g.Heights()

	want := []int{1, 0, 0}
	if !slices.Equal(heights, want) {
		t.Errorf("Heights() = %v, want %v", heights, want)
	}
}

func TestGraph_Cells(t *testing.T) {
	g := NewGraph(mustBaseRects(t, lShape(t)))

	got := slices.Collect(g.Cells(geom.MustRect(0, 0, 4, 10)))
	if !slices.Equal(got, []int{0, 1}) {
		t.Errorf("Cells([0 0 4 10]) = %v, want [0 1]", got)
	}

	got = slices.Collect(g.Cells(geom.MustRect(0, 0, 10, 4)))
	slices.Sort(got)
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Cells([0 0 10 4]) = %v, want {1 2}", got)
	}

	got = slices.Collect(g.Cells(geom.MustRect(4, 0, 10, 4)))
	if !slices.Equal(got, []int{2}) {
		t.Errorf("Cells([4 0 10 4]) = %v, want [2]", got)
	}
}

func TestGraph_AllRects(t *testing.T) {
	g := NewGraph(mustBaseRects(t, lShape(t)))

	rects := g.AllRects()
	want := []geom.Rect{
		geom.MustRect(0, 4, 4, 10),
		geom.MustRect(0, 0, 4, 10),
		geom.MustRect(0, 0, 4, 4),
		geom.MustRect(4, 0, 10, 4),
		geom.MustRect(0, 0, 10, 4),
	}
	if !slices.Equal(rects, want) {
		t.Errorf("AllRects() = %v, want %v", rects, want)
	}
	if got := g.CountAllRects(); got != len(want) {
		t.Errorf("CountAllRects() = %d, want %d", got, len(want))
	}
}

func TestGraph_MaximalRects(t *testing.T) {
	g := NewGraph(mustBaseRects(t, lShape(t)))

	rects := g.MaximalRects()
	want := []geom.Rect{
		geom.MustRect(0, 0, 4, 10),
		geom.MustRect(0, 0, 10, 4),
	}
	if !slices.Equal(rects, want) {
		t.Errorf("MaximalRects() = %v, want %v", rects, want)
	}
}

func TestGraph_RectsWithin(t *testing.T) {
	g := NewGraph(mustBaseRects(t, lShape(t)))

	rects := g.RectsWithin(geom.MustRect(0, 0, 4, 10))
	for _, r := range rects {
		if !geom.MustRect(0, 0, 4, 10).Contains(r) {
			t.Errorf("rect %v escapes the bounds", r)
		}
	}
	if len(rects) == 0 {
		t.Error("expected at least one rectangle within the left column")
	}
}

func TestRectFaces_Determinism(t *testing.T) {
	p := squareWithHole(t)
	first, err := BaseRects(p)
	if err != nil {
		t.Fatalf("BaseRects: %v", err)
	}
	second, err := BaseRects(p)
	if err != nil {
		t.Fatalf("BaseRects: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Error("BaseRects is not deterministic")
	}
}

func mustBaseRects(t *testing.T, p *geom.Polygon) []geom.Rect {
	t.Helper()
	rects, err := BaseRects(p)
	if err != nil {
		t.Fatalf("BaseRects: %v", err)
	}
	return rects
}
