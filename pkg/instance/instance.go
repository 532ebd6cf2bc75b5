// Package instance represents one problem instance of the weighted
// rectangle covering problem: a rectilinear multi-polygon to cover and
// the two cost coefficients.
package instance

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/polycover/polycover/pkg/cover"
	"github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/geom"
	"github.com/polycover/polycover/pkg/wkt"
)

// Instance is a single covering problem: the region to cover and the
// costs that score candidate covers. The multi-polygon is immutable for
// the duration of a run.
type Instance struct {
	Name         string
	Path         string
	MultiPolygon geom.MultiPolygon
	Costs        cover.Costs
}

// Load reads a problem instance from a WKT file.
func Load(path string, costs cover.Costs) (*Instance, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input WKT file %q not found", path)
	}
	if filepath.Ext(path) != ".wkt" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "file %q is not a .wkt file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %q", path)
	}
	mp, err := wkt.Parse(string(data))
	if err != nil {
		return nil, err
	}
	return &Instance{
		Name:         NameFromPath(path),
		Path:         path,
		MultiPolygon: mp,
		Costs:        costs,
	}, nil
}

// New builds an instance from an in-memory multi-polygon.
func New(name string, mp geom.MultiPolygon, costs cover.Costs) *Instance {
	return &Instance{Name: name, MultiPolygon: mp, Costs: costs}
}

// NameFromPath converts a WKT file path into a compact instance name:
// the parent directory joined with the file stem, with separators and
// spaces collapsed to underscores.
func NameFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parent := filepath.Base(filepath.Dir(path))
	if parent == "." || parent == string(filepath.Separator) {
		parent = ""
	}
	name := parent + "_" + stem
	replacer := strings.NewReplacer("\\", "_", "/", "_", " ", "_")
	return replacer.Replace(name)
}
