// Package render turns canvas documents into visual outputs.
//
// # Overview
//
// A canvas is rendered as a directed graph: pages become rounded boxes
// filled with their page color, connections become typed arrows. The
// pipeline is DOT first, pixels second:
//
//	dot := render.ToDOT(snap, render.Options{})
//	svg, err := render.SVG(ctx, dot)
//	png, err := render.PNG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] produces Graphviz DOT source that can be rendered in-process
// via [SVG] or [PNG], or saved and processed with external Graphviz
// tools. Connection types map to edge styles: "contradicts" is drawn
// dashed in red, "questions" dotted, everything else solid.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering, so no graphviz binary needs to be installed.
package render
