// Package render converts rendered canvases between output formats.
//
// # Overview
//
// Canvases are drawn by the [nodelink] subpackage, which emits Graphviz DOT
// and renders SVG and PNG in-process. This package adds PDF export on top
// of the SVG output.
//
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineFor(mode))
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Dependencies
//
// PDF conversion shells out to rsvg-convert from librsvg.
package render
