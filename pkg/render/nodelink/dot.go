package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
	"github.com/matzehuels/gqlcanvas/pkg/layout"
)

// Options configures diagram generation.
type Options struct {
	// Mode selects pinned (precomputed) or engine-driven (deferred) layout.
	Mode layout.Mode

	// Detailed adds field arguments and variable values to labels.
	Detailed bool
}

// ToDOT converts a canvas to Graphviz DOT.
func ToDOT(r *graph.ParsedResult, opts Options) string {
	pinned := opts.Mode != layout.ModeDeferred

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if pinned {
		buf.WriteString("  inputscale=72;\n")
		buf.WriteString("  splines=line;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
		buf.WriteString("  ranksep=0.5;\n")
		buf.WriteString("  nodesep=0.3;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#64748b\", arrowsize=0.7];\n")
	buf.WriteString("\n")

	for _, n := range r.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		if pinned {
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(n.Position.X), fmtCoord(-n.Position.Y)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range r.Edges {
		if e.Kind == graph.EdgeKindFragment {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	switch n.Kind {
	case graph.KindField:
		if len(n.Data.Arguments) == 0 {
			return n.Label
		}
		parts := make([]string, 0, len(n.Data.Arguments))
		for _, k := range slices.Sorted(maps.Keys(n.Data.Arguments)) {
			parts = append(parts, fmt.Sprintf("%s: %v", k, n.Data.Arguments[k]))
		}
		return n.Label + "\n(" + strings.Join(parts, ", ") + ")"
	case graph.KindVariable:
		if len(n.Data.Value) == 0 {
			return n.Label
		}
		return n.Label + " = " + string(n.Data.Value)
	}
	return n.Label
}

func fmtAttrs(n graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Kind {
	case graph.KindOperation:
		attrs = append(attrs, "style=\"filled,bold\"", "fillcolor=\"#e0e7ff\"")
	case graph.KindFieldGroup:
		attrs = append(attrs, "shape=note", "style=filled", "fillcolor=\"#f8fafc\"")
	case graph.KindFragment:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=\"#fef3c7\"")
	case graph.KindVariable:
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=\"#dcfce7\"")
	}
	return attrs
}

// EngineFor returns the Graphviz engine that honours the given mode.
func EngineFor(mode layout.Mode) graphviz.Layout {
	if mode == layout.ModeDeferred {
		return graphviz.DOT
	}
	return graphviz.NEATO
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string, engine graphviz.Layout) ([]byte, error) {
	data, err := renderDOT(ctx, dot, engine, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders a DOT graph to PNG. A scale of 2.0 doubles the
// resolution for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, engine graphviz.Layout, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	dpi := fmt.Sprintf("digraph G {\n  dpi=%s;\n", fmtCoord(72*scale))
	return renderDOT(ctx, strings.Replace(dot, "digraph G {\n", dpi, 1), engine, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, engine graphviz.Layout, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engine)

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

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element to a zero-origin viewBox with
// matching pixel size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
