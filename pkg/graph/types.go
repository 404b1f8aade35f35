package graph

import (
	"encoding/json"

	"github.com/vektah/gqlparser/v2/ast"
)

// =============================================================================
// Constants
// =============================================================================

// Kind identifies what a node represents.
type Kind string

// Node kinds.
const (
	KindOperation  Kind = "operation"
	KindField      Kind = "field"
	KindFragment   Kind = "fragment"
	KindVariable   Kind = "variable"
	KindFieldGroup Kind = "fieldGroup"
)

// EdgeKindFragment tags edges whose target derives from a fragment.
const EdgeKindFragment = "fragment"

// Labels and names the builder substitutes when the source has none.
const (
	AnonymousOperation = "Anonymous"
	UnknownFragment    = "Unknown Fragment"
	FieldGroupName     = "Fields"
)

// VariableIDPrefix prefixes the IDs of variable nodes.
const VariableIDPrefix = "var-"

// =============================================================================
// ParsedResult
// =============================================================================

// ParsedResult is one parsed request body and the graph derived from it.
// It is produced once per successful parse and replaced wholesale by the
// next one.
type ParsedResult struct {
	OperationName *string   `json:"operationName" bson:"operation_name"`
	Variables     Variables `json:"variables" bson:"variables"`
	Query         string    `json:"query" bson:"query"`
	Nodes         []Node    `json:"nodes" bson:"nodes"`
	Edges         []Edge    `json:"edges" bson:"edges"`

	// AST is the parsed document. It is not serialized; results read back
	// from storage carry a nil AST.
	AST *ast.QueryDocument `json:"-" bson:"-"`
}

// Node returns the node with the given ID.
func (r *ParsedResult) Node(id string) (*Node, bool) {
	for i := range r.Nodes {
		if r.Nodes[i].ID == id {
			return &r.Nodes[i], true
		}
	}
	return nil, false
}

// Root returns the operation root, if the document had an operation.
func (r *ParsedResult) Root() (*Node, bool) {
	for i := range r.Nodes {
		if r.Nodes[i].Data.IsRoot {
			return &r.Nodes[i], true
		}
	}
	return nil, false
}

// Children returns the IDs of the direct children of id, in edge order.
func (r *ParsedResult) Children(id string) []string {
	var out []string
	for _, e := range r.Edges {
		if e.Source == id {
			out = append(out, e.Target)
		}
	}
	return out
}

// NodesOfKind returns all nodes of kind k in node order.
func (r *ParsedResult) NodesOfKind(k Kind) []Node {
	var out []Node
	for _, n := range r.Nodes {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

// =============================================================================
// Node
// =============================================================================

// Position is a Cartesian coordinate; y grows downwards.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a positioned element of the canvas.
// IDs are unique within one ParsedResult only.
type Node struct {
	ID       string   `json:"id" bson:"id"`
	Kind     Kind     `json:"type" bson:"type"`
	Label    string   `json:"label" bson:"label"`
	Position Position `json:"position" bson:"position"`
	Data     NodeData `json:"data" bson:"data"`
}

// IsFragment returns true for spread and inline fragment nodes.
func (n *Node) IsFragment() bool { return n.Kind == KindFragment }

// NodeData is the payload a renderer shows and edits.
//
// Fields is set only for field groups, Arguments only for fields and Value
// only for variables.
type NodeData struct {
	Name      string          `json:"name" bson:"name"`
	Value     json.RawMessage `json:"value,omitempty" bson:"value,omitempty"`
	Arguments map[string]any  `json:"arguments,omitempty" bson:"arguments,omitempty"`
	FieldType string          `json:"fieldType,omitempty" bson:"field_type,omitempty"`
	IsRoot    bool            `json:"isRoot,omitempty" bson:"is_root,omitempty"`
	Fields    []string        `json:"fields,omitempty" bson:"fields,omitempty"`
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed parent-to-child connection.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Kind   string `json:"type,omitempty" bson:"type,omitempty"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// EdgeID returns the canonical edge ID for source and target.
func EdgeID(source, target string) string {
	return source + "-" + target
}

// NewEdge creates the structural edge from parent to child.
// Edges into fragment nodes carry [EdgeKindFragment].
func NewEdge(parent string, child Node) Edge {
	e := Edge{
		ID:     EdgeID(parent, child.ID),
		Source: parent,
		Target: child.ID,
	}
	if child.IsFragment() {
		e.Kind = EdgeKindFragment
	}
	return e
}
