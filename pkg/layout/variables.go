package layout

import (
	"github.com/matzehuels/gqlcanvas/pkg/graph"
)

// PlaceVariables emits one variable node per request variable, stacked in
// input order on the left of the canvas. Variable nodes have no edges.
func PlaceVariables(vars graph.Variables, cfg Config) []graph.Node {
	nodes := make([]graph.Node, 0, len(vars))
	for i, v := range vars {
		n := graph.Node{
			ID:    graph.VariableIDPrefix + v.Name,
			Kind:  graph.KindVariable,
			Label: "$" + v.Name,
			Data: graph.NodeData{
				Name:      v.Name,
				Value:     v.Value,
				FieldType: string(graph.KindVariable),
			},
		}
		if !cfg.deferred() {
			n.Position = graph.Position{
				X: cfg.VariableX,
				Y: cfg.VariableY + float64(i)*cfg.VariableRowHeight,
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}
