package layout

import (
	"testing"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
)

func leaf(w float64) *TreeNode {
	return &TreeNode{Kind: graph.KindFieldGroup, Label: "g", Width: w}
}

func TestPlaceRowCentering(t *testing.T) {
	tests := []struct {
		name    string
		widths  []float64
		centerX float64
		wantX   []float64
	}{
		{name: "Single", widths: []float64{200}, centerX: 250, wantX: []float64{250}},
		{name: "Two", widths: []float64{200, 300}, centerX: 250, wantX: []float64{75, 375}},
		{name: "Three", widths: []float64{200, 200, 200}, centerX: 0, wantX: []float64{-250, 0, 250}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := make([]*TreeNode, len(tt.widths))
			for i, w := range tt.widths {
				row[i] = leaf(w)
			}
			p := Place(row, "node-0", tt.centerX, 100, NewCounter(), DefaultConfig())
			if len(p.Nodes) != len(tt.wantX) {
				t.Fatalf("got %d nodes", len(p.Nodes))
			}
			for i, n := range p.Nodes {
				if n.Position.X != tt.wantX[i] || n.Position.Y != 100 {
					t.Errorf("node %d at %+v, want x=%v y=100", i, n.Position, tt.wantX[i])
				}
			}
		})
	}
}

func TestPlaceDepthAndIDs(t *testing.T) {
	tree := buildQuery(t, `{ a { b { c } } d { e } }`)
	c := NewCounter()
	root := PlaceRoot("query", "", c, DefaultConfig())
	p := Place(tree.Children, root.ID, 250, 100, c, DefaultConfig())

	if root.ID != "node-0" || root.Label != "query: Anonymous" {
		t.Errorf("root = %+v", root)
	}
	if root.Position != (graph.Position{X: 250, Y: 50}) {
		t.Errorf("root position = %+v", root.Position)
	}

	// Pre-order: a, b, {c}, d, {e}
	wantIDs := []string{"node-1", "node-2", "node-3", "node-4", "node-5"}
	wantY := []float64{100, 220, 340, 100, 220}
	for i, n := range p.Nodes {
		if n.ID != wantIDs[i] {
			t.Errorf("node %d id = %s, want %s", i, n.ID, wantIDs[i])
		}
		if n.Position.Y != wantY[i] {
			t.Errorf("%s y = %v, want %v", n.ID, n.Position.Y, wantY[i])
		}
	}
	if p.MaxY != 340 {
		t.Errorf("MaxY = %v, want 340", p.MaxY)
	}

	// Children are centered under their parent.
	if p.Nodes[1].Position.X != p.Nodes[0].Position.X {
		t.Errorf("b not centered under a: %v vs %v", p.Nodes[1].Position.X, p.Nodes[0].Position.X)
	}
}

func TestPlaceEdges(t *testing.T) {
	tree := buildQuery(t, `
		{ a x { ...F } }
		fragment F on T { id }
	`)
	c := NewCounter()
	root := PlaceRoot("query", "Q", c, DefaultConfig())
	p := Place(tree.Children, root.ID, 250, 100, c, DefaultConfig())

	if len(p.Edges) != len(p.Nodes) {
		t.Fatalf("%d edges for %d nodes", len(p.Edges), len(p.Nodes))
	}
	incoming := map[string]int{}
	for _, e := range p.Edges {
		incoming[e.Target]++
		if e.ID != e.Source+"-"+e.Target {
			t.Errorf("edge id = %s", e.ID)
		}
	}
	for _, n := range p.Nodes {
		if incoming[n.ID] != 1 {
			t.Errorf("%s has %d parents", n.ID, incoming[n.ID])
		}
	}
	for _, e := range p.Edges {
		target := findNode(p.Nodes, e.Target)
		if (target.Kind == graph.KindFragment) != (e.Kind == graph.EdgeKindFragment) {
			t.Errorf("edge %s kind = %q for %s target", e.ID, e.Kind, target.Kind)
		}
	}
}

func TestPlaceEmpty(t *testing.T) {
	p := Place(nil, "node-0", 250, 100, NewCounter(), DefaultConfig())
	if len(p.Nodes) != 0 || p.MaxY != 100 {
		t.Errorf("placement = %+v", p)
	}
}

func TestPlaceDeferred(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModeDeferred
	tree := buildQuery(t, `{ a { b } c }`)

	c := NewCounter()
	root := PlaceRoot("query", "", c, cfg)
	p := Place(tree.Children, root.ID, 250, 100, c, cfg)

	if root.Position != (graph.Position{}) {
		t.Errorf("root position = %+v", root.Position)
	}
	for _, n := range p.Nodes {
		if n.Position != (graph.Position{}) {
			t.Errorf("%s position = %+v", n.ID, n.Position)
		}
	}

	pre := DefaultConfig()
	c2 := NewCounter()
	root2 := PlaceRoot("query", "", c2, pre)
	p2 := Place(tree.Children, root2.ID, 250, 100, c2, pre)
	if len(p2.Nodes) != len(p.Nodes) || len(p2.Edges) != len(p.Edges) {
		t.Fatal("modes disagree on structure")
	}
	for i := range p.Nodes {
		if p.Nodes[i].ID != p2.Nodes[i].ID {
			t.Errorf("id %d: %s vs %s", i, p.Nodes[i].ID, p2.Nodes[i].ID)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModePrecomputed, "precomputed": ModePrecomputed, "deferred": ModeDeferred} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMode("spiral"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig invalid: %v", err)
	}
	bad := DefaultConfig()
	bad.MinWidth = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero MinWidth")
	}
}

func findNode(nodes []graph.Node, id string) graph.Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	return graph.Node{}
}
