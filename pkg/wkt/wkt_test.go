package wkt

import (
	"testing"

	"github.com/polycover/polycover/pkg/geom"
)

func TestParse_Polygon(t *testing.T) {
	mp, err := Parse("POLYGON ((0 0, 10 0, 10 4, 4 4, 4 10, 0 10, 0 0))")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(mp) != 1 {
		t.Fatalf("got %d polygons, want 1", len(mp))
	}
	if len(mp[0].Outer) != 6 {
		t.Errorf("outer ring has %d vertices, want 6 after dropping the closing point", len(mp[0].Outer))
	}
}

func TestParse_MultiPolygonWithHole(t *testing.T) {
	text := "MULTIPOLYGON (((0 0, 6 0, 6 6, 0 6, 0 0), (2 2, 2 4, 4 4, 4 2, 2 2)), ((10 0, 12 0, 12 2, 10 2, 10 0)))"
	mp, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(mp) != 2 {
		t.Fatalf("got %d polygons, want 2", len(mp))
	}
	if len(mp[0].Holes) != 1 {
		t.Fatalf("first polygon has %d holes, want 1", len(mp[0].Holes))
	}
	if !mp[1].IsRectangle() {
		t.Error("second polygon should be a plain rectangle")
	}
}

func TestParse_NegativeCoordinates(t *testing.T) {
	mp, err := Parse("POLYGON ((-2 -3, 2 -3, 2 3, -2 3, -2 -3))")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if mp[0].Outer[0] != (geom.Point{X: -2, Y: -3}) {
		t.Errorf("first vertex = %v, want (-2 -3)", mp[0].Outer[0])
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []string{
		"LINESTRING (0 0, 1 1)",
		"POLYGON ((0 0, 10 0, 10 10))",          // too few vertices
		"POLYGON ((0 0, 1.5 0, 1.5 1, 0 1, 0 0))", // non-integer
		"POLYGON ((0 0, 10 0, 5 5, 0 0))",       // diagonal edges
		"POLYGON (0 0, 10 0)",                   // malformed nesting
	}
	for _, text := range cases {
		if _, err := Parse(text); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", text)
		}
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	text := "MULTIPOLYGON (((0 0, 6 0, 6 6, 0 6, 0 0), (2 2, 2 4, 4 4, 4 2, 2 2)))"
	mp, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	again, err := Parse(Format(mp))
	if err != nil {
		t.Fatalf("Parse(Format()): %v", err)
	}
	if len(again) != len(mp) || len(again[0].Holes) != 1 {
		t.Error("round trip lost structure")
	}
	if again[0].Outer.Area2() != mp[0].Outer.Area2() {
		t.Error("round trip changed the outer ring")
	}
}

func TestFormat_Empty(t *testing.T) {
	if got := Format(nil); got != "MULTIPOLYGON EMPTY" {
		t.Errorf("Format(nil) = %q", got)
	}
}

func TestFormatRects(t *testing.T) {
	text := FormatRects([]geom.Rect{geom.MustRect(0, 0, 2, 2)})
	mp, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(FormatRects()): %v", err)
	}
	if len(mp) != 1 || !mp[0].IsRectangle() {
		t.Errorf("FormatRects round trip = %v, want one rectangle", mp)
	}
}
