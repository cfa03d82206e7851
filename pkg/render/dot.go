package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/careless-canvas/canvasnml/pkg/canvas"
)

// Options configures canvas rendering.
type Options struct {
	// Detailed includes tags and content previews in page labels.
	// When false, only the display title is shown.
	Detailed bool

	// Theme picks the background and font colors. Defaults to the
	// document's own view theme when left empty.
	Theme canvas.Theme
}

// fillColors maps page colors to Graphviz fill colors. The palette is
// muted so black label text stays readable on every fill.
var fillColors = map[canvas.PageColor]string{
	canvas.ColorRed:    "#fecaca",
	canvas.ColorBlue:   "#bfdbfe",
	canvas.ColorGreen:  "#bbf7d0",
	canvas.ColorYellow: "#fef08a",
	canvas.ColorPurple: "#e9d5ff",
	canvas.ColorGray:   "#e5e7eb",
}

// ToDOT converts a canvas snapshot to Graphviz DOT format.
// The resulting DOT string can be rendered with [SVG] or [PNG].
//
// Dangling connections (endpoints that name no page) are skipped here:
// Graphviz would otherwise invent bare nodes for the missing ids.
func ToDOT(snap canvas.Snapshot, opts Options) string {
	theme := opts.Theme
	if theme == "" {
		theme = snap.View.Theme
	}

	var buf bytes.Buffer
	buf.WriteString("digraph canvas {\n")
	buf.WriteString("  rankdir=LR;\n")
	if theme == canvas.ThemeDark {
		buf.WriteString("  bgcolor=\"#1f2937\";\n")
		buf.WriteString("  edge [color=\"#d1d5db\", fontcolor=\"#d1d5db\"];\n")
	} else {
		buf.WriteString("  bgcolor=\"transparent\";\n")
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	known := make(map[string]bool, len(snap.Pages))
	for i := range snap.Pages {
		p := &snap.Pages[i]
		known[p.ID] = true
		attrs := pageAttrs(p, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range snap.Connections {
		if !known[c.From] || !known[c.To] {
			continue
		}
		attrs := edgeAttrs(c)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.From, c.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.From, c.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pageAttrs(p *canvas.Page, detailed bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", pageLabel(p, detailed)),
		fmt.Sprintf("fillcolor=%q", fillColors[p.Color]),
	}
	return attrs
}

func pageLabel(p *canvas.Page, detailed bool) string {
	if !detailed {
		return p.DisplayTitle()
	}

	parts := []string{p.DisplayTitle()}
	if preview := contentPreview(p.Content); preview != "" {
		parts = append(parts, preview)
	}
	if len(p.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(p.Tags, " #"))
	}
	return strings.Join(parts, "\n")
}

// contentPreview returns the first line of the content, truncated.
func contentPreview(content string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	line = strings.TrimSpace(line)
	if len(line) > 40 {
		line = line[:40] + "..."
	}
	return line
}

func edgeAttrs(c canvas.Connection) []string {
	var attrs []string
	label := string(c.Type)
	if c.Label != "" {
		label = c.Label
	}
	attrs = append(attrs, fmt.Sprintf("label=%q", label))

	switch c.Type {
	case canvas.ConnContradicts:
		attrs = append(attrs, "style=dashed", "color=\"#dc2626\"")
	case canvas.ConnQuestions:
		attrs = append(attrs, "style=dotted")
	case canvas.ConnSupports:
		attrs = append(attrs, "color=\"#16a34a\"")
	}
	return attrs
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderTo(ctx, dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// PNG renders a DOT graph to PNG using Graphviz.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderTo(ctx, dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderTo(ctx context.Context, dot string, format graphviz.Format, buf *bytes.Buffer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the image scales cleanly
// when embedded. Graphviz emits point-based width/height attributes that
// browsers render at a fixed size.
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
