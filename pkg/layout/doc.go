// Package layout turns an operation's selection set into positioned canvas
// nodes.
//
// Layout runs in two passes. [BuildTree] walks the selection set, resolving
// fragment spreads, and produces an intermediate tree where every node knows
// the horizontal width its subtree needs. [Place] then walks that tree level
// by level, centering each row of siblings under its parent, and emits the
// flat node and edge lists of the canvas.
//
// # Buckets
//
// Within one selection set, entries are grouped in a fixed order:
//
//  1. all leaf fields, as a single field group node
//  2. fields with selections or arguments, in source order
//  3. fragment spreads and inline fragments, in source order
//
// The ordering keeps layouts reproducible for identical input.
//
// # Widths
//
// A field group is max(MinWidth, n*LeafFieldWidth) wide. Any other node is
// max(MinWidth, sum(child.Width + Gap)) wide, so no node is ever narrower
// than MinWidth.
//
// # Modes
//
// [ModePrecomputed] assigns coordinates. [ModeDeferred] leaves every
// position at the origin for renderers that run their own layout; IDs and
// edges are identical in both modes.
package layout
