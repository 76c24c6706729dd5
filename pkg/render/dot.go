// Package render draws cell chains as Graphviz diagrams.
//
// The chain is laid out left to right, one box per cell, with arrows
// following the right links. Stubborn cells get a dashed outline so
// blocked neighborhoods are easy to spot.
//
// Convert a tissue to DOT source, then optionally render it in
// process:
//
//	dot := render.ToDOT(render.Snapshot(ts), render.Options{})
//	svg, err := render.ToSVG(dot)
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cellsort/pkg/tissue"
)

// Cell is the renderer's view of one chain member.
type Cell struct {
	ID       string
	Label    string
	Stubborn bool
}

// Options configures diagram generation.
type Options struct {
	// Detailed includes the cell ID in node labels in addition to the
	// value.
	Detailed bool
}

// Snapshot flattens a tissue into renderable cells, head to tail.
func Snapshot[T any](t *tissue.Tissue[T]) []Cell {
	cells := make([]Cell, 0, t.Len())
	for c := t.Head(); c != nil; c = c.Right() {
		cells = append(cells, Cell{
			ID:       c.ShortID(),
			Label:    fmt.Sprint(c.Value()),
			Stubborn: c.Stubborn(),
		})
	}
	return cells
}

// ToDOT converts a chain snapshot to Graphviz DOT format.
// The resulting string can be rendered with [ToSVG] or saved for
// external Graphviz tooling.
func ToDOT(cells []Cell, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph tissue {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, c := range cells {
		label := c.Label
		if opts.Detailed {
			label = c.Label + "\n" + c.ID
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if c.Stubborn {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := 0; i+1 < len(cells); i++ {
		fmt.Fprintf(&buf, "  %q -> %q;\n", cells[i].ID, cells[i+1].ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToSVG renders DOT source to SVG using in-process Graphviz.
func ToSVG(dot string) ([]byte, error) {
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
