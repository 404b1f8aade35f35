package layout

import (
	"github.com/matzehuels/gqlcanvas/pkg/graph"
)

// Placement is the output of [Place].
type Placement struct {
	Nodes []graph.Node
	Edges []graph.Edge

	// MaxY is the deepest y used. It equals the start y for an empty row.
	MaxY float64
}

// Place positions a row of tree nodes centered on centerX at depth y and
// recurses into their children one NodeHeight lower.
//
// IDs are drawn from c in pre-order. Every placed node gets an edge from
// its parent; parentID is used for the first row.
//
// Rows are centered independently, so sibling subtrees wider than their
// parents' slots may overlap horizontally.
func Place(children []*TreeNode, parentID string, centerX, y float64, c *Counter, cfg Config) *Placement {
	p := &placer{cfg: cfg, counter: c}
	maxY := p.row(children, parentID, centerX, y)
	return &Placement{Nodes: p.nodes, Edges: p.edges, MaxY: maxY}
}

type placer struct {
	cfg     Config
	counter *Counter
	nodes   []graph.Node
	edges   []graph.Edge
}

func (p *placer) row(children []*TreeNode, parentID string, centerX, y float64) float64 {
	if len(children) == 0 {
		return y
	}

	total := -p.cfg.Gap
	for _, ch := range children {
		total += ch.Width + p.cfg.Gap
	}

	currentX := centerX - total/2
	maxY := y
	for _, ch := range children {
		x := currentX + ch.Width/2
		node := graph.Node{
			ID:    p.counter.Next(),
			Kind:  ch.Kind,
			Label: ch.Label,
			Data:  ch.Data,
		}
		if !p.cfg.deferred() {
			node.Position = graph.Position{X: x, Y: y}
		}
		p.nodes = append(p.nodes, node)
		if parentID != "" {
			p.edges = append(p.edges, graph.NewEdge(parentID, node))
		}

		maxY = max(maxY, p.row(ch.Children, node.ID, x, y+p.cfg.NodeHeight))
		currentX += ch.Width + p.cfg.Gap
	}
	return maxY
}

// PlaceRoot creates the operation root node.
func PlaceRoot(opType, name string, c *Counter, cfg Config) graph.Node {
	if name == "" {
		name = graph.AnonymousOperation
	}
	n := graph.Node{
		ID:    c.Next(),
		Kind:  graph.KindOperation,
		Label: opType + ": " + name,
		Data: graph.NodeData{
			Name:      name,
			IsRoot:    true,
			FieldType: opType,
		},
	}
	if !cfg.deferred() {
		n.Position = cfg.Root
	}
	return n
}
