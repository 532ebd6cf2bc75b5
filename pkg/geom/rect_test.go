package geom

import "testing"

func TestNewRect_RejectsDegenerate(t *testing.T) {
	cases := [][4]Coord{
		{0, 0, 0, 1},
		{0, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 3, 1, 1},
	}
	for _, c := range cases {
		if _, err := NewRect(c[0], c[1], c[2], c[3]); err == nil {
			t.Errorf("NewRect(%v) succeeded, want error", c)
		}
	}
}

func TestRect_Accessors(t *testing.T) {
	r := MustRect(1, 2, 4, 7)

	if got := r.Width(); got != 3 {
		t.Errorf("Width() = %d, want 3", got)
	}
	if got := r.Height(); got != 5 {
		t.Errorf("Height() = %d, want 5", got)
	}
	if got := r.Area(); got != 15 {
		t.Errorf("Area() = %d, want 15", got)
	}
	if got := r.TopLeft(); got != (Point{1, 7}) {
		t.Errorf("TopLeft() = %v, want (1 7)", got)
	}
	if got := r.BottomRight(); got != (Point{4, 2}) {
		t.Errorf("BottomRight() = %v, want (4 2)", got)
	}
}

func TestRect_Contains(t *testing.T) {
	outer := MustRect(0, 0, 10, 10)

	if !outer.Contains(MustRect(0, 0, 10, 10)) {
		t.Error("rectangle should contain itself")
	}
	if !outer.Contains(MustRect(2, 3, 5, 7)) {
		t.Error("outer should contain inner rectangle")
	}
	if outer.Contains(MustRect(5, 5, 11, 7)) {
		t.Error("outer should not contain overhanging rectangle")
	}
}

func TestRect_Intersects(t *testing.T) {
	r := MustRect(0, 0, 4, 4)

	if !r.Intersects(MustRect(2, 2, 6, 6)) {
		t.Error("overlapping rectangles should intersect")
	}
	if r.Intersects(MustRect(4, 0, 8, 4)) {
		t.Error("edge-sharing rectangles should not intersect")
	}
	if r.Intersects(MustRect(4, 4, 8, 8)) {
		t.Error("corner-touching rectangles should not intersect")
	}
	if r.Intersects(MustRect(5, 0, 8, 4)) {
		t.Error("disjoint rectangles should not intersect")
	}
}

func TestRect_FullyIntersects(t *testing.T) {
	r := MustRect(0, 0, 4, 4)

	through := Segment{Point{2, -1}, Point{2, 5}}
	if !r.FullyIntersects(through) {
		t.Error("segment through the interior should fully intersect")
	}
	onEdge := Segment{Point{0, 0}, Point{0, 4}}
	if r.FullyIntersects(onEdge) {
		t.Error("segment on the boundary should not fully intersect")
	}
	outside := Segment{Point{5, 0}, Point{5, 4}}
	if r.FullyIntersects(outside) {
		t.Error("segment outside should not fully intersect")
	}
	horizontal := Segment{Point{-1, 2}, Point{5, 2}}
	if !r.FullyIntersects(horizontal) {
		t.Error("horizontal segment through the interior should fully intersect")
	}
}

func TestRect_Join(t *testing.T) {
	a := MustRect(0, 0, 2, 2)
	b := MustRect(3, 1, 5, 4)

	joined := a.Join(b)
	want := MustRect(0, 0, 5, 4)
	if joined != want {
		t.Errorf("Join() = %v, want %v", joined, want)
	}
}

func TestUnitRect(t *testing.T) {
	r := UnitRect(Point{3, 5})
	want := MustRect(3, 4, 4, 5)
	if r != want {
		t.Errorf("UnitRect((3 5)) = %v, want %v", r, want)
	}
}

func TestRect_Shrink(t *testing.T) {
	r := MustRect(0, 0, 10, 10)

	if got := r.ShrinkTop(2); got != MustRect(0, 0, 10, 8) {
		t.Errorf("ShrinkTop(2) = %v", got)
	}
	if got := r.ShrinkBottom(2); got != MustRect(0, 2, 10, 10) {
		t.Errorf("ShrinkBottom(2) = %v", got)
	}
	if got := r.ShrinkLeft(2); got != MustRect(2, 0, 10, 10) {
		t.Errorf("ShrinkLeft(2) = %v", got)
	}
	if got := r.ShrinkRight(2); got != MustRect(0, 0, 8, 10) {
		t.Errorf("ShrinkRight(2) = %v", got)
	}
}
