package cli

import (
	"io"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/polycover/polycover/pkg/cover"
	"github.com/polycover/polycover/pkg/errors"
)

func discardLogger() *charmlog.Logger {
	return charmlog.NewWithOptions(io.Discard, charmlog.Options{})
}

func TestParseCosts(t *testing.T) {
	costs, err := parseCosts("5,1")
	if err != nil {
		t.Fatalf("parseCosts: %v", err)
	}
	if costs != (cover.Costs{Creation: 5, Area: 1}) {
		t.Errorf("costs = %+v", costs)
	}

	if _, err := parseCosts("5"); err == nil {
		t.Error("single value should be rejected")
	}
	if _, err := parseCosts("-1,2"); err == nil {
		t.Error("negative costs should be rejected")
	}
	if _, err := parseCosts("a,b"); err == nil {
		t.Error("non-numeric costs should be rejected")
	}
}

func TestBuildProvider_ChainName(t *testing.T) {
	_, name, err := buildProvider("greedy+prune", []string{"trim", "join"}, 0, discardLogger())
	if err != nil {
		t.Fatalf("buildProvider: %v", err)
	}
	if name != "greedy+prune+trim+join" {
		t.Errorf("chain name = %q", name)
	}
}

func TestBuildProvider_Exact(t *testing.T) {
	provider, name, err := buildProvider("exact", nil, 0, discardLogger())
	if err != nil {
		t.Fatalf("buildProvider: %v", err)
	}
	if name != "exact" {
		t.Errorf("chain name = %q", name)
	}
	if _, ok := provider.(cover.TimeoutReporter); !ok {
		t.Error("exact provider should report timeouts")
	}
}

func TestBuildProvider_Unknown(t *testing.T) {
	if _, _, err := buildProvider("simplex", nil, 0, discardLogger()); !errors.Is(err, errors.ErrCodeInvalidChain) {
		t.Errorf("err = %v, want INVALID_CHAIN", err)
	}
	if _, _, err := buildProvider("greedy+compact", nil, 0, discardLogger()); !errors.Is(err, errors.ErrCodeInvalidChain) {
		t.Errorf("err = %v, want INVALID_CHAIN", err)
	}
}
