package cli

import (
	"strconv"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/polycover/polycover/pkg/cover"
	"github.com/polycover/polycover/pkg/cover/exact"
	"github.com/polycover/polycover/pkg/errors"
)

// parseCosts reads a "creation,area" pair of non-negative integers.
func parseCosts(s string) (cover.Costs, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return cover.Costs{}, errors.New(errors.ErrCodeInvalidInput,
			"costs must be a \"creation,area\" pair, got %q", s)
	}
	creation, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return cover.Costs{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "creation cost")
	}
	area, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return cover.Costs{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "area cost")
	}
	if creation < 0 || area < 0 {
		return cover.Costs{}, errors.New(errors.ErrCodeInvalidInput, "costs must be non-negative")
	}
	return cover.Costs{Creation: creation, Area: area}, nil
}

// buildProvider assembles the provider chain from an algorithm spec and
// a postprocessor list. The algorithm spec may carry postprocessors
// inline, joined by '+' ("greedy+prune+trim"); inline names run before
// the separately listed ones.
//
// The returned string is the full chain name used for reporting and
// cache keys.
func buildProvider(algorithmSpec string, postprocessors []string, timeout time.Duration,
	logger *charmlog.Logger) (cover.Provider, string, error) {

	tokens := strings.Split(algorithmSpec, "+")
	algorithmName := strings.ToLower(strings.TrimSpace(tokens[0]))

	var provider cover.Provider
	switch algorithmName {
	case "exact":
		provider = exact.New(false, timeout)
	case "exact-pixel":
		provider = exact.New(true, timeout)
	default:
		var err error
		provider, err = cover.NewAlgorithm(algorithmName)
		if err != nil {
			return nil, "", err
		}
	}

	chain := make([]string, 0, len(tokens)-1+len(postprocessors))
	for _, t := range tokens[1:] {
		chain = append(chain, strings.ToLower(strings.TrimSpace(t)))
	}
	for _, t := range postprocessors {
		chain = append(chain, strings.ToLower(strings.TrimSpace(t)))
	}

	pruneSeen := false
	for _, name := range chain {
		if name == "trim" && !pruneSeen {
			logger.Warn("'trim' assumes no fully redundant rectangles remain; " +
				"consider running 'prune' first")
		}
		if name == "prune" {
			pruneSeen = true
		}
		var err error
		provider, err = cover.NewPostprocessor(name, provider)
		if err != nil {
			return nil, "", err
		}
	}

	fullName := algorithmName
	if len(chain) > 0 {
		fullName += "+" + strings.Join(chain, "+")
	}
	return provider, fullName, nil
}
