package layout

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
	"github.com/matzehuels/gqlcanvas/pkg/query"
)

// TreeNode is a node of the intermediate layout tree.
type TreeNode struct {
	Kind     graph.Kind
	Label    string
	Data     graph.NodeData
	Width    float64
	Children []*TreeNode
}

// Tree is the result of [BuildTree].
type Tree struct {
	// Children are the top-level nodes in bucket order.
	Children []*TreeNode

	// Width is the combined width of Children, at least MinWidth.
	Width float64

	// Warnings lists unresolved and recursive spreads.
	Warnings []string
}

// BuildTree builds the layout tree of a selection set.
//
// Spreads resolve through frags; an unresolved name becomes a childless
// "Unknown Fragment" node. A spread of a fragment that is already being
// expanded further up the same path becomes a childless fragment node.
func BuildTree(set ast.SelectionSet, frags *query.Fragments, cfg Config) *Tree {
	b := &treeBuilder{
		cfg:    cfg,
		frags:  frags,
		active: make(map[string]bool),
	}
	children, width := b.build(set)
	return &Tree{Children: children, Width: width, Warnings: b.warnings}
}

type treeBuilder struct {
	cfg      Config
	frags    *query.Fragments
	active   map[string]bool
	warnings []string
}

func (b *treeBuilder) build(set ast.SelectionSet) ([]*TreeNode, float64) {
	var (
		leaves  []string
		fields  []*ast.Field
		spreads []ast.Selection
	)
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			// Arguments would be lost in a field group.
			if len(s.SelectionSet) == 0 && len(s.Arguments) == 0 {
				leaves = append(leaves, s.Name)
			} else {
				fields = append(fields, s)
			}
		case *ast.FragmentSpread, *ast.InlineFragment:
			spreads = append(spreads, s)
		}
	}

	nodes := make([]*TreeNode, 0, len(fields)+len(spreads)+1)
	if len(leaves) > 0 {
		nodes = append(nodes, b.fieldGroup(leaves))
	}
	for _, f := range fields {
		nodes = append(nodes, b.field(f))
	}
	for _, s := range spreads {
		switch s := s.(type) {
		case *ast.FragmentSpread:
			nodes = append(nodes, b.spread(s))
		case *ast.InlineFragment:
			nodes = append(nodes, b.inline(s))
		}
	}
	return nodes, b.rowWidth(nodes)
}

// rowWidth is the width a parent needs to host nodes side by side,
// including a trailing gap.
func (b *treeBuilder) rowWidth(nodes []*TreeNode) float64 {
	total := 0.0
	for _, n := range nodes {
		total += n.Width + b.cfg.Gap
	}
	return max(total, b.cfg.MinWidth)
}

func (b *treeBuilder) fieldGroup(names []string) *TreeNode {
	return &TreeNode{
		Kind:  graph.KindFieldGroup,
		Label: strings.Join(names, ", "),
		Data: graph.NodeData{
			Name:      graph.FieldGroupName,
			FieldType: string(graph.KindFieldGroup),
			Fields:    names,
		},
		Width: max(b.cfg.MinWidth, float64(len(names))*b.cfg.LeafFieldWidth),
	}
}

func (b *treeBuilder) field(f *ast.Field) *TreeNode {
	children, width := b.build(f.SelectionSet)
	return &TreeNode{
		Kind:  graph.KindField,
		Label: f.Name,
		Data: graph.NodeData{
			Name:      f.Name,
			FieldType: string(graph.KindField),
			Arguments: query.Arguments(f.Arguments),
		},
		Width:    max(b.cfg.MinWidth, width),
		Children: children,
	}
}

func (b *treeBuilder) spread(s *ast.FragmentSpread) *TreeNode {
	node := &TreeNode{
		Kind:  graph.KindFragment,
		Label: s.Name,
		Data: graph.NodeData{
			Name:      s.Name,
			FieldType: string(graph.KindFragment),
		},
		Width: b.cfg.MinWidth,
	}

	def, ok := b.frags.Lookup(s.Name)
	switch {
	case !ok:
		node.Label = graph.UnknownFragment
		b.warnf("fragment %q is not defined", s.Name)
		return node
	case b.active[s.Name]:
		b.warnf("fragment %q spreads itself; expansion stopped", s.Name)
		return node
	}

	b.active[s.Name] = true
	children, width := b.build(def.SelectionSet)
	delete(b.active, s.Name)

	node.Children = children
	node.Width = max(b.cfg.MinWidth, width)
	return node
}

func (b *treeBuilder) inline(f *ast.InlineFragment) *TreeNode {
	label := "..."
	if f.TypeCondition != "" {
		label = "... on " + f.TypeCondition
	}
	children, width := b.build(f.SelectionSet)
	return &TreeNode{
		Kind:  graph.KindFragment,
		Label: label,
		Data: graph.NodeData{
			Name:      f.TypeCondition,
			FieldType: string(graph.KindFragment),
		},
		Width:    max(b.cfg.MinWidth, width),
		Children: children,
	}
}

func (b *treeBuilder) warnf(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}
