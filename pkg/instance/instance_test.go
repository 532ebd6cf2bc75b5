package instance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/polycover/polycover/pkg/cover"
	"github.com/polycover/polycover/pkg/errors"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "floor.wkt")
	text := "MULTIPOLYGON (((0 0, 10 0, 10 4, 4 4, 4 10, 0 10, 0 0)))"
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	inst, err := Load(path, cover.Costs{Creation: 2, Area: 3})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(inst.MultiPolygon) != 1 {
		t.Errorf("got %d polygons, want 1", len(inst.MultiPolygon))
	}
	if inst.Costs != (cover.Costs{Creation: 2, Area: 3}) {
		t.Errorf("costs = %+v", inst.Costs)
	}
	if inst.Name == "" {
		t.Error("instance name should not be empty")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.wkt"), cover.Costs{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoad_WrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "floor.txt")
	if err := os.WriteFile(path, []byte("MULTIPOLYGON EMPTY"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path, cover.Costs{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestNameFromPath(t *testing.T) {
	cases := map[string]string{
		"data/floors/building a.wkt": "floors_building_a",
		"simple.wkt":                 "_simple",
	}
	for path, want := range cases {
		if got := NameFromPath(path); got != want {
			t.Errorf("NameFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
