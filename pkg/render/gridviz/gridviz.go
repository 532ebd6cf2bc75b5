// Package gridviz renders the base-rectangle grid graph of a polygon
// as a node-link diagram, useful for debugging decompositions.
//
// Each cell becomes a box labeled with its corner coordinates; right
// and bottom neighbor links become edges, with rank constraints keeping
// cells of one column stacked. The DOT text can be rendered to SVG or
// PNG via Graphviz.
package gridviz

import (
	"bytes"
	"context"
	"fmt"

	graphviz "github.com/goccy/go-graphviz"

	"github.com/polycover/polycover/pkg/grid"
)

// ToDOT serializes the grid graph as a Graphviz digraph.
func ToDOT(g *grid.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph cells {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fontsize=10];\n")
	buf.WriteString("\n")

	nodes := g.Nodes()
	for i, n := range nodes {
		label := fmt.Sprintf("%d\\n(%d %d) / (%d %d)", i,
			n.Rect.Min.X, n.Rect.Min.Y, n.Rect.Max.X, n.Rect.Max.Y)
		fmt.Fprintf(&buf, "  c%d [label=\"%s\"];\n", i, label)
	}

	buf.WriteString("\n")
	for i, n := range nodes {
		if n.Right != grid.None {
			fmt.Fprintf(&buf, "  c%d -> c%d [dir=none, constraint=false];\n", i, n.Right)
		}
		if n.Bottom != grid.None {
			fmt.Fprintf(&buf, "  c%d -> c%d;\n", i, n.Bottom)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
