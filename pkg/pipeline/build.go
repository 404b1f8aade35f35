package pipeline

import (
	"fmt"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
	"github.com/matzehuels/gqlcanvas/pkg/layout"
	"github.com/matzehuels/gqlcanvas/pkg/query"
)

// Build parses a request body and lays out its canvas.
//
// It fails only with the three request errors (INVALID_JSON,
// MISSING_QUERY, INVALID_GRAPHQL), in which case no canvas is produced.
// Every other finding is reported in Result.Warnings.
func Build(body []byte, opts Options) (*Result, error) {
	opts.SetDefaults()
	req, err := query.ParseRequest(body)
	if err != nil {
		return nil, err
	}
	canvas, warnings := Assemble(req, opts.LayoutConfig())
	return newResult(canvas, warnings), nil
}

// Assemble lays out a parsed request: the operation root, its selection
// tree, then the request variables.
//
// Only one operation is drawn: the one named by the request, else the first.
// Every invocation uses a fresh ID counter.
func Assemble(req *query.Request, cfg layout.Config) (*graph.ParsedResult, []string) {
	canvas := &graph.ParsedResult{
		OperationName: req.OperationName,
		Variables:     req.Variables,
		Query:         req.Query,
		AST:           req.Document,
		Nodes:         []graph.Node{},
		Edges:         []graph.Edge{},
	}
	if canvas.Variables == nil {
		canvas.Variables = graph.Variables{}
	}
	warnings := append([]string(nil), req.Warnings...)

	frags := query.CollectFragments(req.Document)
	for _, name := range frags.Duplicates() {
		warnings = append(warnings, fmt.Sprintf("fragment %q is defined more than once; the last definition wins", name))
	}

	op, found := query.SelectOperation(req.Document, req.OperationName)
	if !found {
		if op != nil {
			warnings = append(warnings, fmt.Sprintf("operation %q not found; drawing %q instead", *req.OperationName, op.Name))
		} else {
			warnings = append(warnings, fmt.Sprintf("operation %q not found", *req.OperationName))
		}
	}

	if op != nil {
		c := layout.NewCounter()
		root := layout.PlaceRoot(query.OperationType(op), op.Name, c, cfg)
		tree := layout.BuildTree(op.SelectionSet, frags, cfg)
		placed := layout.Place(tree.Children, root.ID, cfg.Root.X, cfg.FirstRowY, c, cfg)

		canvas.Nodes = append(canvas.Nodes, root)
		canvas.Nodes = append(canvas.Nodes, placed.Nodes...)
		canvas.Edges = append(canvas.Edges, placed.Edges...)
		warnings = append(warnings, tree.Warnings...)
	}

	canvas.Nodes = append(canvas.Nodes, layout.PlaceVariables(canvas.Variables, cfg)...)
	return canvas, warnings
}

func newResult(canvas *graph.ParsedResult, warnings []string) *Result {
	return &Result{
		Canvas:    canvas,
		Warnings:  warnings,
		Artifacts: make(map[string][]byte),
		Stats: Stats{
			NodeCount:     len(canvas.Nodes),
			EdgeCount:     len(canvas.Edges),
			VariableCount: len(canvas.Variables),
		},
	}
}
