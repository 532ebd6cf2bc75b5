package geom

import (
	"testing"
)

// lShape is the outer ring (0,0)(10,0)(10,4)(4,4)(4,10)(0,10): an L
// with one concave vertex at (4,4).
func lShape(t *testing.T) *Polygon {
	t.Helper()
	p, err := NewPolygon(Ring{{0, 0}, {10, 0}, {10, 4}, {4, 4}, {4, 10}, {0, 10}})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	return p
}

// squareWithHole is a 6x6 square with a 2x2 hole in the middle.
func squareWithHole(t *testing.T) *Polygon {
	t.Helper()
	p, err := NewPolygon(
		Ring{{0, 0}, {6, 0}, {6, 6}, {0, 6}},
		Ring{{2, 2}, {2, 4}, {4, 4}, {4, 2}},
	)
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	return p
}

func TestNewPolygon_NormalizesOrientation(t *testing.T) {
	// Outer given clockwise, hole given counterclockwise.
	p, err := NewPolygon(
		Ring{{0, 0}, {0, 6}, {6, 6}, {6, 0}},
		Ring{{2, 2}, {4, 2}, {4, 4}, {2, 4}},
	)
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	if p.Outer.Area2() <= 0 {
		t.Error("outer ring should be counterclockwise after normalization")
	}
	if p.Holes[0].Area2() >= 0 {
		t.Error("hole ring should be clockwise after normalization")
	}
}

func TestNewPolygon_RejectsNonRectilinear(t *testing.T) {
	_, err := NewPolygon(Ring{{0, 0}, {4, 0}, {2, 3}, {0, 3}})
	if err == nil {
		t.Fatal("NewPolygon accepted a diagonal edge")
	}
}

func TestPolygon_IsRectangle(t *testing.T) {
	square, err := NewPolygon(Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	if !square.IsRectangle() {
		t.Error("plain square should be a rectangle")
	}
	if lShape(t).IsRectangle() {
		t.Error("L-shape should not be a rectangle")
	}
	if squareWithHole(t).IsRectangle() {
		t.Error("square with hole should not be a rectangle")
	}
}

func TestConcaveVertices_LShape(t *testing.T) {
	concave := lShape(t).ConcaveVertices()

	if len(concave) != 1 {
		t.Fatalf("got %d concave vertices, want 1", len(concave))
	}
	dirs, ok := concave[Point{4, 4}]
	if !ok {
		t.Fatal("(4 4) should be concave")
	}
	if dirs != [2]Dir{Left, Down} {
		t.Errorf("inward directions = %v, want [left down]", dirs)
	}
}

func TestConcaveVertices_Hole(t *testing.T) {
	concave := squareWithHole(t).ConcaveVertices()

	if len(concave) != 4 {
		t.Fatalf("got %d concave vertices, want 4 (the hole corners)", len(concave))
	}
	want := map[Point][2]Dir{
		{2, 2}: {Left, Down},
		{2, 4}: {Up, Left},
		{4, 4}: {Right, Up},
		{4, 2}: {Down, Right},
	}
	for v, dirs := range want {
		if concave[v] != dirs {
			t.Errorf("concave[%v] = %v, want %v", v, concave[v], dirs)
		}
	}
}

func TestConcaveVertices_SharedVertexCancels(t *testing.T) {
	// A vertex reported concave by both the outer ring and a hole must
	// cancel: it is a boundary contact point, not a concave corner of
	// the region.
	p := &Polygon{
		Outer: Ring{{0, 0}, {10, 0}, {10, 4}, {4, 4}, {4, 10}, {0, 10}},
		Holes: []Ring{{{4, 2}, {4, 4}, {6, 4}, {6, 2}}},
	}
	concave := p.ConcaveVertices()

	if _, ok := concave[Point{4, 4}]; ok {
		t.Error("(4 4) appears in both rings, must cancel")
	}
	if len(concave) != 3 {
		t.Errorf("got %d concave vertices, want the 3 remaining hole corners", len(concave))
	}
}

func TestContainsMidpoint(t *testing.T) {
	p := squareWithHole(t)

	if !p.ContainsMidpoint(1, 1) { // (0.5, 0.5)
		t.Error("(0.5 0.5) should be inside")
	}
	if p.ContainsMidpoint(6, 6) { // (3, 3) is in the hole
		t.Error("(3 3) lies in the hole, should be outside the region")
	}
	if p.ContainsMidpoint(13, 1) { // (6.5, 0.5)
		t.Error("(6.5 0.5) should be outside")
	}
}

func TestContainsRect(t *testing.T) {
	p := squareWithHole(t)

	if !p.ContainsRect(MustRect(0, 0, 6, 2)) {
		t.Error("bottom band should be inside the region")
	}
	if p.ContainsRect(MustRect(1, 1, 5, 5)) {
		t.Error("rectangle across the hole should not be inside the region")
	}
	if p.ContainsRect(MustRect(5, 5, 7, 6)) {
		t.Error("overhanging rectangle should not be inside the region")
	}
}

func TestClosestBoundaryHit(t *testing.T) {
	p := lShape(t)

	hit, ok := p.ClosestBoundaryHit(Point{4, 4}, Left)
	if !ok || hit != (Point{0, 4}) {
		t.Errorf("left ray from (4 4): hit = %v ok=%v, want (0 4)", hit, ok)
	}
	hit, ok = p.ClosestBoundaryHit(Point{4, 4}, Down)
	if !ok || hit != (Point{4, 0}) {
		t.Errorf("down ray from (4 4): hit = %v ok=%v, want (4 0)", hit, ok)
	}
}

func TestDir_Rotations(t *testing.T) {
	if Up.Rot90() != Left || Up.Rot180() != Down || Up.Rot270() != Right {
		t.Error("rotations of Up are wrong")
	}
	if (Dir{5, 0}).Normalize() != Right || (Dir{0, -3}).Normalize() != Down {
		t.Error("Normalize should map components to signs")
	}
}
