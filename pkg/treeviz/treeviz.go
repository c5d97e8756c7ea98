// Package treeviz exports the bounding-volume hierarchy of a compiled scene
// as a Graphviz diagram, used by scene inspection to show how the geometry
// was partitioned.
package treeviz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/lumentrace/lumen/pkg/geom"
)

// ToDOT converts a BVH to Graphviz DOT format. Interior nodes are plain
// boxes; leaves are filled and labeled with their shape count.
func ToDOT(bvh *geom.BVH) string {
	var buf bytes.Buffer
	buf.WriteString("digraph BVH {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	bvh.Walk(func(id, parent, depth, shapeCount int) {
		if shapeCount > 0 {
			fmt.Fprintf(&buf, "  n%d [label=\"%d shapes\", fillcolor=lightblue];\n", id, shapeCount)
		} else {
			fmt.Fprintf(&buf, "  n%d [label=\"split\"];\n", id)
		}
		if parent >= 0 {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", parent, id)
		}
	})

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
