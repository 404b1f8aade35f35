// Package nodelink draws canvases as Graphviz node-link diagrams.
//
// # Usage
//
// Convert a canvas to DOT, then render it:
//
//	dot := nodelink.ToDOT(canvas, nodelink.Options{Mode: layout.ModePrecomputed})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineFor(layout.ModePrecomputed))
//	png, err := nodelink.RenderPNG(ctx, dot, nodelink.EngineFor(layout.ModePrecomputed), 2.0)
//
// # Layout Modes
//
// A precomputed canvas already carries coordinates. Its nodes are pinned
// with pos="x,-y!" and drawn by the neato engine, which keeps pinned nodes
// in place; y is negated because Graphviz grows y upwards.
//
// A deferred canvas has no coordinates. Its DOT omits positions and is laid
// out top-down by the dot engine.
//
// # Node Styles
//
//   - operation: bold box
//   - field: rounded box
//   - fieldGroup: note
//   - fragment: dashed rounded box, reached by a dashed edge
//   - variable: ellipse, unconnected
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
