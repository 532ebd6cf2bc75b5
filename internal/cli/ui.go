package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/polycover/polycover/pkg/runner"
)

var (
	styleHeader  = lipgloss.NewStyle().Bold(true)
	styleDim     = lipgloss.NewStyle().Faint(true)
	styleValid   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleInvalid = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleTimeout = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// renderResults renders the per-polygon results and the aggregate as a
// table for terminal output.
func renderResults(results []runner.Result, chainName string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("POLYGON", "SIZE", "CREATION", "AREA", "TOTAL", "TIME", "VALID")

	for i, r := range results[1:] {
		t.Row(
			strconv.Itoa(i+1),
			strconv.Itoa(r.CoverSize),
			strconv.FormatInt(r.Cost.Creation, 10),
			strconv.FormatInt(r.Cost.Area, 10),
			strconv.FormatInt(r.Cost.Total(), 10),
			r.ExecutionTime.String(),
			validityCell(r.Validity),
		)
	}
	aggregate := results[0]
	t.Row(
		"total",
		strconv.Itoa(aggregate.CoverSize),
		strconv.FormatInt(aggregate.Cost.Creation, 10),
		strconv.FormatInt(aggregate.Cost.Area, 10),
		strconv.FormatInt(aggregate.Cost.Total(), 10),
		aggregate.ExecutionTime.String(),
		validityCell(aggregate.Validity),
	)

	header := styleHeader.Render(fmt.Sprintf("Results for %s", chainName))
	return header + "\n" + t.Render()
}

func validityCell(v runner.Validity) string {
	switch v {
	case runner.Valid:
		return styleValid.Render(v.String())
	case runner.Invalid:
		return styleInvalid.Render(v.String())
	case runner.Timeout:
		return styleTimeout.Render(v.String())
	}
	return styleDim.Render(v.String())
}
