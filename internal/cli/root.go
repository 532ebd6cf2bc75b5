package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/polycover/polycover/pkg/buildinfo"
)

// ExitError carries a process exit code through cobra's error path.
// The cover command uses it to encode run outcomes: bit 0 is set when
// any polygon's cover was invalid, bit 1 when any polygon timed out.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("run finished with exit code %d", e.Code)
}

// Execute runs the polycover CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "polycover",
		Short:        "polycover covers rectilinear polygons with cheap rectangle sets",
		Long: `polycover computes rectangle covers of rectilinear polygons with holes,
minimizing a weighted sum of per-rectangle creation cost and per-unit
area cost. It bundles polynomial heuristics (greedy set cover, strips,
good-diagonal partition), an exact MaxSAT backend, and chainable
cost-reducing postprocessors.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	root.AddCommand(newCoverCmd())
	root.AddCommand(newVisualizeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
