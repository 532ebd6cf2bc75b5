// Package report serializes run results to JSON documents or appending
// CSV files.
//
// The JSON document carries the full context of a run: input polygon
// and cover in WKT, cost coefficients, per-polygon breakdowns. A
// result file is self-contained. The CSV form is one row per result
// (aggregate first) and appends to an existing file, making it suitable
// for collecting experiment batches.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/polycover/polycover/pkg/cover"
	"github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/instance"
	"github.com/polycover/polycover/pkg/runner"
	"github.com/polycover/polycover/pkg/wkt"
)

// timeLayout matches the human-readable timestamps of result files.
const timeLayout = "2006-01-02 15:04:05"

// Document is the JSON result form of one run.
type Document struct {
	RunID        string          `json:"run_id"`
	TimeStart    string          `json:"time_start"`
	TimeEnd      string          `json:"time_end"`
	Algorithm    string          `json:"algorithm"`
	InstanceName string          `json:"instance_name"`
	InputPolygon string          `json:"input_polygon"`
	CreationCost int64           `json:"creation_cost"`
	AreaCost     int64           `json:"area_cost"`
	Cover        string          `json:"cover"`
	CoverSize    int             `json:"cover_size"`
	TotalCost    int64           `json:"total_cost"`
	CreationPart int64           `json:"total_creation_cost"`
	AreaPart     int64           `json:"total_area_cost"`
	Seconds      int64           `json:"execution_time_seconds"`
	Milliseconds int64           `json:"execution_time_milliseconds"`
	Nanoseconds  int64           `json:"execution_time_nanoseconds"`
	IsValid      any             `json:"is_valid"`
	Polygons     []PolygonResult `json:"polygon"`
}

// PolygonResult is the JSON result form of one polygon.
type PolygonResult struct {
	Polygon      int   `json:"polygon"`
	CoverSize    int   `json:"cover_size"`
	TotalCost    int64 `json:"total_cost"`
	CreationPart int64 `json:"total_creation_cost"`
	AreaPart     int64 `json:"total_area_cost"`
	Seconds      int64 `json:"execution_time_seconds"`
	Milliseconds int64 `json:"execution_time_milliseconds"`
	Nanoseconds  int64 `json:"execution_time_nanoseconds"`
	IsValid      any   `json:"is_valid"`
}

// Build assembles the result document for one run. The results slice
// must carry the aggregate at index 0, as produced by runner.Run.
func Build(inst *instance.Instance, results []runner.Result, algorithm string, start, end time.Time) Document {
	aggregate := results[0]
	doc := Document{
		RunID:        uuid.NewString(),
		TimeStart:    start.Format(timeLayout),
		TimeEnd:      end.Format(timeLayout),
		Algorithm:    algorithm,
		InstanceName: inst.Name,
		InputPolygon: wkt.Format(inst.MultiPolygon),
		CreationCost: inst.Costs.Creation,
		AreaCost:     inst.Costs.Area,
		Cover:        wkt.FormatRects(aggregate.Cover),
		CoverSize:    aggregate.CoverSize,
		TotalCost:    aggregate.Cost.Total(),
		CreationPart: aggregate.Cost.Creation,
		AreaPart:     aggregate.Cost.Area,
		Seconds:      int64(aggregate.ExecutionTime.Seconds()),
		Milliseconds: aggregate.ExecutionTime.Milliseconds(),
		Nanoseconds:  aggregate.ExecutionTime.Nanoseconds(),
		IsValid:      validityJSON(aggregate.Validity),
	}
	for i, result := range results[1:] {
		doc.Polygons = append(doc.Polygons, PolygonResult{
			Polygon:      i + 1,
			CoverSize:    result.CoverSize,
			TotalCost:    result.Cost.Total(),
			CreationPart: result.Cost.Creation,
			AreaPart:     result.Cost.Area,
			Seconds:      int64(result.ExecutionTime.Seconds()),
			Milliseconds: result.ExecutionTime.Milliseconds(),
			Nanoseconds:  result.ExecutionTime.Nanoseconds(),
			IsValid:      validityJSON(result.Validity),
		})
	}
	return doc
}

// Write serializes the document to the given path. A ".csv" extension
// selects the appending CSV form, anything else writes a JSON file.
// Missing parent directories are created.
func Write(path string, inst *instance.Instance, results []runner.Result, doc Document) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create output directory %q", dir)
		}
	}
	if filepath.Ext(path) == ".csv" {
		return writeCSV(path, inst, results, doc)
	}
	return writeJSON(path, doc)
}

func writeJSON(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %q", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode result JSON")
	}
	return nil
}

// csvHeader lists the CSV columns, one row per result with the
// aggregate as polygon_id 0.
var csvHeader = []string{
	"time_start", "time_end", "instance_name", "num_polygons", "polygon_id",
	"algorithm", "creation_cost", "area_cost", "cover_size",
	"total_creation_cost", "total_area_cost", "total_cost",
	"execution_time_seconds", "execution_time_milliseconds", "execution_time_nanoseconds",
	"valid",
}

func writeCSV(path string, inst *instance.Instance, results []runner.Result, doc Document) error {
	_, statErr := os.Stat(path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open %q", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write(csvHeader); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write CSV header")
		}
	}
	for i, result := range results {
		row := []string{
			doc.TimeStart,
			doc.TimeEnd,
			inst.Name,
			strconv.Itoa(len(results) - 1),
			strconv.Itoa(i),
			doc.Algorithm,
			strconv.FormatInt(inst.Costs.Creation, 10),
			strconv.FormatInt(inst.Costs.Area, 10),
			strconv.Itoa(result.CoverSize),
			strconv.FormatInt(result.Cost.Creation, 10),
			strconv.FormatInt(result.Cost.Area, 10),
			strconv.FormatInt(result.Cost.Total(), 10),
			strconv.FormatInt(int64(result.ExecutionTime.Seconds()), 10),
			strconv.FormatInt(result.ExecutionTime.Milliseconds(), 10),
			strconv.FormatInt(result.ExecutionTime.Nanoseconds(), 10),
			validityCSV(result.Validity),
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write CSV row %d", i)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "flush CSV")
	}
	return nil
}

// validityJSON maps validity onto the JSON result encoding: booleans
// for checked covers, "timeout" for timeouts, null when unchecked.
func validityJSON(v runner.Validity) any {
	switch v {
	case runner.Valid:
		return true
	case runner.Invalid:
		return false
	case runner.Timeout:
		return "timeout"
	}
	return nil
}

func validityCSV(v runner.Validity) string {
	switch v {
	case runner.Valid:
		return "true"
	case runner.Invalid:
		return "false"
	case runner.Timeout:
		return "timeout"
	}
	return "null"
}

// Rows rebuilds result rows from a document so a cached document can be
// re-serialized to CSV. Covers are not reconstructed.
func Rows(doc Document) []runner.Result {
	results := make([]runner.Result, 0, len(doc.Polygons)+1)
	results = append(results, runner.Result{
		CoverSize:     doc.CoverSize,
		Cost:          cover.Costs{Creation: doc.CreationPart, Area: doc.AreaPart},
		ExecutionTime: time.Duration(doc.Nanoseconds),
		Validity:      validityFromJSON(doc.IsValid),
	})
	for _, p := range doc.Polygons {
		results = append(results, runner.Result{
			CoverSize:     p.CoverSize,
			Cost:          cover.Costs{Creation: p.CreationPart, Area: p.AreaPart},
			ExecutionTime: time.Duration(p.Nanoseconds),
			Validity:      validityFromJSON(p.IsValid),
		})
	}
	return results
}

func validityFromJSON(v any) runner.Validity {
	switch value := v.(type) {
	case bool:
		if value {
			return runner.Valid
		}
		return runner.Invalid
	case string:
		if value == "timeout" {
			return runner.Timeout
		}
	}
	return runner.Unchecked
}

// Summary is a one-line human description of a document, used by the
// CLI after writing a result file.
func Summary(doc Document) string {
	return fmt.Sprintf("%s: %d rectangle(s), total cost %d", doc.InstanceName, doc.CoverSize, doc.TotalCost)
}
