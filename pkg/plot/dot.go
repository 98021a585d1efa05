// Package plot renders pedigrees as node-link diagrams via Graphviz.
//
// [ToDOT] converts a pedigree to Graphviz DOT format with conventional
// pedigree-drawing shapes: squares for males, ellipses for females, diamonds
// for members of unknown sex. [RenderSVG] and [RenderPNG] rasterize the DOT
// string with the embedded Graphviz engine.
package plot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/thoree/pedtools/pkg/marker"
	"github.com/thoree/pedtools/pkg/observability"
	"github.com/thoree/pedtools/pkg/pedigree"
)

// Options configures pedigree diagram rendering.
type Options struct {
	// Labels overrides the display label per member (aligned with storage
	// order). When nil, member labels are used.
	Labels []string

	// Fill gives a Graphviz fill color per member, typically used to mark
	// affection status. When nil or an entry is empty, nodes are white.
	Fill []string

	// Marker, when set, appends each member's genotype to its label.
	Marker *marker.Marker
}

// ToDOT converts a pedigree to Graphviz DOT format.
// Sexes map to shapes: male=box, female=ellipse, unknown=diamond.
func ToDOT(ped *pedigree.Ped, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph pedigree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for pos := 1; pos <= ped.Size(); pos++ {
		m := ped.Member(pos)
		attrs := []string{
			fmt.Sprintf("label=%q", nodeLabel(ped, pos, opts)),
			fmt.Sprintf("shape=%s", sexShape(m.Sex)),
		}
		if len(opts.Fill) >= pos && opts.Fill[pos-1] != "" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", opts.Fill[pos-1]))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", m.Label, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for pos := 1; pos <= ped.Size(); pos++ {
		m := ped.Member(pos)
		if m.IsFounder() {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", ped.Member(m.Father).Label, m.Label)
		fmt.Fprintf(&buf, "  %q -> %q;\n", ped.Member(m.Mother).Label, m.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(ped *pedigree.Ped, pos int, opts Options) string {
	label := ped.Member(pos).Label
	if len(opts.Labels) >= pos && opts.Labels[pos-1] != "" {
		label = opts.Labels[pos-1]
	}
	if opts.Marker != nil && opts.Marker.RowCount() >= pos {
		label += "\n" + opts.Marker.GenotypeString(pos)
	}
	return label
}

func sexShape(sex pedigree.Sex) string {
	switch sex {
	case pedigree.Male:
		return "box"
	case pedigree.Female:
		return "ellipse"
	default:
		return "diamond"
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	start := time.Now()
	observability.Render().OnRenderStart(ctx, string(format))

	out, err := renderGraphviz(ctx, dot, format)
	observability.Render().OnRenderComplete(ctx, string(format), len(out), time.Since(start), err)
	return out, err
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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
