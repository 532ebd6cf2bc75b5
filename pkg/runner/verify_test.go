package runner_test

import (
	"testing"

	"github.com/polycover/polycover/pkg/geom"
	"github.com/polycover/polycover/pkg/runner"
)

func TestVerifiers_AcceptExactCover(t *testing.T) {
	polygon := lShape(t)
	partition := []geom.Rect{
		geom.MustRect(0, 0, 10, 4),
		geom.MustRect(0, 4, 4, 10),
	}

	if !runner.IsValidCover(partition, &polygon) {
		t.Error("IsValidCover rejected an exact partition")
	}
	if !runner.VerifyCover(partition, &polygon) {
		t.Error("VerifyCover rejected an exact partition")
	}

	overlapping := []geom.Rect{
		geom.MustRect(0, 0, 4, 10),
		geom.MustRect(0, 0, 10, 4),
	}
	if !runner.IsValidCover(overlapping, &polygon) {
		t.Error("IsValidCover rejected an exact overlapping cover")
	}
	if !runner.VerifyCover(overlapping, &polygon) {
		t.Error("VerifyCover rejected an exact overlapping cover")
	}
}

func TestVerifiers_RejectGaps(t *testing.T) {
	polygon := lShape(t)
	gap := []geom.Rect{geom.MustRect(0, 0, 10, 4)}

	if runner.IsValidCover(gap, &polygon) {
		t.Error("IsValidCover accepted a cover with an uncovered arm")
	}
	if runner.VerifyCover(gap, &polygon) {
		t.Error("VerifyCover accepted a cover with an uncovered arm")
	}
}

func TestVerifiers_RejectOverhang(t *testing.T) {
	polygon := lShape(t)
	overhang := []geom.Rect{
		geom.MustRect(0, 0, 10, 4),
		geom.MustRect(0, 4, 5, 10), // pokes into the notch
	}

	if runner.IsValidCover(overhang, &polygon) {
		t.Error("IsValidCover accepted a rectangle outside the polygon")
	}
	if runner.VerifyCover(overhang, &polygon) {
		t.Error("VerifyCover accepted a rectangle outside the polygon")
	}
}

func TestVerifiers_RejectEmptyAndDegenerate(t *testing.T) {
	polygon := lShape(t)

	if runner.IsValidCover(nil, &polygon) || runner.VerifyCover(nil, &polygon) {
		t.Error("an empty cover must be invalid for a non-empty polygon")
	}

	degenerate := []geom.Rect{
		geom.MustRect(0, 0, 10, 4),
		geom.MustRect(0, 4, 4, 10),
		{Min: geom.Point{1, 1}, Max: geom.Point{1, 3}},
	}
	if runner.IsValidCover(degenerate, &polygon) || runner.VerifyCover(degenerate, &polygon) {
		t.Error("a cover with a degenerate rectangle must be invalid")
	}
}

func TestVerifiers_Hole(t *testing.T) {
	polygon := mustPolygon(t,
		geom.Ring{{0, 0}, {6, 0}, {6, 6}, {0, 6}},
		geom.Ring{{2, 2}, {2, 4}, {4, 4}, {4, 2}},
	)
	pinwheel := []geom.Rect{
		geom.MustRect(0, 0, 4, 2),
		geom.MustRect(4, 0, 6, 4),
		geom.MustRect(2, 4, 6, 6),
		geom.MustRect(0, 2, 2, 6),
	}
	if !runner.IsValidCover(pinwheel, &polygon) {
		t.Error("IsValidCover rejected an exact pinwheel partition around the hole")
	}
	if !runner.VerifyCover(pinwheel, &polygon) {
		t.Error("VerifyCover rejected an exact pinwheel partition around the hole")
	}

	acrossHole := []geom.Rect{
		geom.MustRect(0, 0, 6, 6),
	}
	if runner.IsValidCover(acrossHole, &polygon) || runner.VerifyCover(acrossHole, &polygon) {
		t.Error("a rectangle covering the hole must be invalid")
	}
}
