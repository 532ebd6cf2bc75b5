package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/polycover/polycover/pkg/cover"
	"github.com/polycover/polycover/pkg/geom"
	"github.com/polycover/polycover/pkg/instance"
	"github.com/polycover/polycover/pkg/runner"
)

func testInstance(t *testing.T) *instance.Instance {
	t.Helper()
	p, err := geom.NewPolygon(geom.Ring{{0, 0}, {10, 0}, {10, 4}, {4, 4}, {4, 10}, {0, 10}})
	if err != nil {
		t.Fatal(err)
	}
	return instance.New("test_l", geom.MultiPolygon{*p}, cover.Costs{Creation: 1, Area: 1})
}

func testResults() []runner.Result {
	rects := []geom.Rect{
		geom.MustRect(0, 0, 10, 4),
		geom.MustRect(0, 4, 4, 10),
	}
	polygon := runner.Result{
		CoverSize:     2,
		Cost:          cover.Costs{Creation: 2, Area: 64},
		ExecutionTime: 1500 * time.Microsecond,
		Validity:      runner.Valid,
		Cover:         rects,
	}
	aggregate := polygon
	return []runner.Result{aggregate, polygon}
}

func TestBuild(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := Build(testInstance(t), testResults(), "strip+prune", start, start.Add(2*time.Second))

	if doc.Algorithm != "strip+prune" {
		t.Errorf("Algorithm = %q", doc.Algorithm)
	}
	if doc.TimeStart != "2025-03-01 12:00:00" {
		t.Errorf("TimeStart = %q", doc.TimeStart)
	}
	if doc.TotalCost != 66 || doc.CreationPart != 2 || doc.AreaPart != 64 {
		t.Errorf("costs = %d/%d/%d", doc.TotalCost, doc.CreationPart, doc.AreaPart)
	}
	if doc.IsValid != true {
		t.Errorf("IsValid = %v, want true", doc.IsValid)
	}
	if len(doc.Polygons) != 1 || doc.Polygons[0].Polygon != 1 {
		t.Errorf("Polygons = %+v", doc.Polygons)
	}
	if doc.RunID == "" {
		t.Error("RunID should be set")
	}
	if !strings.HasPrefix(doc.Cover, "MULTIPOLYGON") {
		t.Errorf("Cover = %q, want WKT", doc.Cover)
	}
}

func TestWrite_JSON(t *testing.T) {
	inst := testInstance(t)
	results := testResults()
	doc := Build(inst, results, "strip", time.Now(), time.Now())

	path := filepath.Join(t.TempDir(), "out", "result.json")
	if err := Write(path, inst, results, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var back Document
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("result file is not valid JSON: %v", err)
	}
	if back.InstanceName != "test_l" || back.CoverSize != 2 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestWrite_CSVAppends(t *testing.T) {
	inst := testInstance(t)
	results := testResults()
	doc := Build(inst, results, "strip", time.Now(), time.Now())

	path := filepath.Join(t.TempDir(), "results.csv")
	if err := Write(path, inst, results, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(path, inst, results, doc); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// One header plus two runs of two rows each.
	if len(lines) != 5 {
		t.Fatalf("got %d CSV lines, want 5:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "time_start,") {
		t.Errorf("missing header: %q", lines[0])
	}
	if strings.HasPrefix(lines[1], "time_start,") {
		t.Error("header repeated on append")
	}
	if !strings.HasSuffix(lines[1], ",true") {
		t.Errorf("aggregate row should end with validity: %q", lines[1])
	}
}

func TestValidityEncodings(t *testing.T) {
	if validityJSON(runner.Timeout) != "timeout" || validityCSV(runner.Timeout) != "timeout" {
		t.Error("timeout encoding wrong")
	}
	if validityJSON(runner.Unchecked) != nil || validityCSV(runner.Unchecked) != "null" {
		t.Error("unchecked encoding wrong")
	}
	if validityJSON(runner.Invalid) != false || validityCSV(runner.Invalid) != "false" {
		t.Error("invalid encoding wrong")
	}
}
