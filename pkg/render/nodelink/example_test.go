package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
	"github.com/matzehuels/gqlcanvas/pkg/layout"
	"github.com/matzehuels/gqlcanvas/pkg/render/nodelink"
)

func ExampleToDOT() {
	canvas := &graph.ParsedResult{
		Nodes: []graph.Node{
			{ID: "node-0", Kind: graph.KindOperation, Label: "query: Anonymous", Position: graph.Position{X: 250, Y: 50}},
			{ID: "node-1", Kind: graph.KindFieldGroup, Label: "a, b", Position: graph.Position{X: 250, Y: 100}},
		},
		Edges: []graph.Edge{{ID: "node-0-node-1", Source: "node-0", Target: "node-1"}},
	}

	fmt.Print(nodelink.ToDOT(canvas, nodelink.Options{Mode: layout.ModeDeferred}))
	// Output:
	// digraph G {
	//   rankdir=TB;
	//   ranksep=0.5;
	//   nodesep=0.3;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontname="Helvetica", fontsize=14, margin="0.2,0.1"];
	//   edge [color="#64748b", arrowsize=0.7];
	//
	//   "node-0" [label="query: Anonymous", style="filled,bold", fillcolor="#e0e7ff"];
	//   "node-1" [label="a, b", shape=note, style=filled, fillcolor="#f8fafc"];
	//
	//   "node-0" -> "node-1";
	// }
}
