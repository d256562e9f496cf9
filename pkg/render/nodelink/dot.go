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

	"github.com/Babdus/protolanguage-v2/pkg/render"
	"github.com/Babdus/protolanguage-v2/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes branch lengths and metadata in node labels.
	// When false, only the node name is shown.
	Detailed bool
	// Engine is the Graphviz layout engine. Empty means twopi.
	Engine string
}

var engines = map[string]graphviz.Layout{
	"twopi": graphviz.TWOPI,
	"circo": graphviz.CIRCO,
	"dot":   graphviz.DOT,
	"neato": graphviz.NEATO,
	"fdp":   graphviz.FDP,
}

// ToDOT converts a tree to an undirected Graphviz graph rooted at the
// center. Node IDs are assigned in pre-order so repeated names stay
// distinct; leaves are drawn as plain text.
func ToDOT(root *tree.Node, opts Options) string {
	engine := opts.Engine
	if engine == "" {
		engine = "twopi"
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", engine)
	buf.WriteString("  root=\"n0\";\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, color=steelblue, penwidth=3, fontname=\"sans-serif\", fontsize=14, label=\"\", width=0.15];\n")
	buf.WriteString("  edge [color=\"#cccccc\", penwidth=3];\n")
	buf.WriteString("\n")

	if root == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	ids := make(map[*tree.Node]string)
	var edges []string
	root.Walk(func(n, parent *tree.Node, _ int) bool {
		id := "n" + strconv.Itoa(len(ids))
		ids[n] = id
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		if parent != nil {
			edges = append(edges, fmt.Sprintf("  %s -- %s;\n", ids[parent], id))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *tree.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}

	parts := []string{fmt.Sprintf("distance: %s", strconv.FormatFloat(n.Distance, 'g', 4, 64))}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	return n.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *tree.Node, detailed bool) []string {
	if n.IsLeaf() {
		return []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed)), "shape=plaintext", "style=\"\""}
	}
	if detailed {
		return []string{fmt.Sprintf("tooltip=%q", fmtLabel(n, detailed))}
	}
	return []string{fmt.Sprintf("tooltip=%q", n.Name)}
}

// RenderSVG renders a DOT graph to SVG using Graphviz. The layout engine is
// taken from the graph's layout attribute, defaulting to twopi.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

	gv.SetLayout(engineOf(dot))

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	layoutRe  = regexp.MustCompile(`(?m)^\s*layout=(\w+);`)
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func engineOf(dot string) graphviz.Layout {
	if m := layoutRe.FindStringSubmatch(dot); m != nil {
		if l, ok := engines[m[1]]; ok {
			return l
		}
	}
	return graphviz.TWOPI
}

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

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
