package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polycover/polycover/pkg/cover"
	"github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/grid"
	"github.com/polycover/polycover/pkg/instance"
	"github.com/polycover/polycover/pkg/render/gridviz"
)

func newVisualizeCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		polygonIdx int
	)

	cmd := &cobra.Command{
		Use:   "visualize",
		Short: "Render the base-rectangle grid graph of a polygon",
		Long: `Visualize decomposes one polygon of a WKT instance into base
rectangles and renders the resulting grid graph as DOT, SVG or PNG,
selected by the output file extension.`,
		Example: `  polycover visualize -i floor.wkt -o cells.svg
  polycover visualize -i floor.wkt --polygon 2 -o cells.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			inst, err := instance.Load(inputPath, cover.Costs{})
			if err != nil {
				return err
			}
			if polygonIdx < 1 || polygonIdx > len(inst.MultiPolygon) {
				return errors.New(errors.ErrCodeInvalidInput,
					"polygon index %d out of range 1..%d", polygonIdx, len(inst.MultiPolygon))
			}
			polygon := &inst.MultiPolygon[polygonIdx-1]
			if polygon.IsRectangle() {
				return errors.New(errors.ErrCodeInvalidInput,
					"polygon %d is a hole-free rectangle with a single cell", polygonIdx)
			}

			baseRects, err := grid.BaseRects(polygon)
			if err != nil {
				return err
			}
			logger.Info("Decomposed polygon", "polygon", polygonIdx, "cells", len(baseRects))
			dot := gridviz.ToDOT(grid.NewGraph(baseRects))

			var data []byte
			switch strings.ToLower(filepath.Ext(outputPath)) {
			case ".dot":
				data = []byte(dot)
			case ".svg":
				data, err = gridviz.RenderSVG(cmd.Context(), dot)
			case ".png":
				data, err = gridviz.RenderPNG(cmd.Context(), dot)
			default:
				return errors.New(errors.ErrCodeInvalidInput,
					"unsupported output extension %q (use .dot, .svg or .png)", filepath.Ext(outputPath))
			}
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "render grid graph")
			}

			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %q", outputPath)
			}
			logger.Info("Visualization written", "path", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the instance's WKT file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (.dot, .svg or .png)")
	cmd.Flags().IntVar(&polygonIdx, "polygon", 1, "1-based polygon index within the instance")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
