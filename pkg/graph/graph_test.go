package graph

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleResult() *ParsedResult {
	name := "GetUser"
	r := &ParsedResult{
		OperationName: &name,
		Query:         "query GetUser($id: ID!) { user(id: $id) { name } }",
		Nodes: []Node{
			{ID: "node-1", Kind: KindOperation, Label: "query: GetUser", Position: Position{250, 50},
				Data: NodeData{Name: "GetUser", IsRoot: true, FieldType: "query"}},
			{ID: "node-2", Kind: KindField, Label: "user", Position: Position{250, 100},
				Data: NodeData{Name: "user", Arguments: map[string]any{"id": "$id"}}},
			{ID: "var-id", Kind: KindVariable, Label: "$id", Position: Position{50, 100},
				Data: NodeData{Name: "id", Value: json.RawMessage(`"123"`), FieldType: "variable"}},
		},
		Edges: []Edge{{ID: "node-1-node-2", Source: "node-1", Target: "node-2"}},
	}
	r.Variables.Set("id", json.RawMessage(`"123"`))
	return r
}

func TestResultRoundTrip(t *testing.T) {
	r := sampleResult()
	data, err := MarshalResult(r)
	if err != nil {
		t.Fatalf("MarshalResult: %v", err)
	}
	if !bytes.Contains(data, []byte(`"type": "operation"`)) {
		t.Errorf("node kind not serialized as type:\n%s", data)
	}

	got, err := UnmarshalResult(data)
	if err != nil {
		t.Fatalf("UnmarshalResult: %v", err)
	}
	if len(got.Nodes) != 3 || len(got.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(got.Nodes), len(got.Edges))
	}
	if got.OperationName == nil || *got.OperationName != "GetUser" {
		t.Errorf("operationName = %v", got.OperationName)
	}
	if v, ok := got.Variables.Get("id"); !ok || string(v) != `"123"` {
		t.Errorf("variables[id] = %s, %v", v, ok)
	}
	root, ok := got.Root()
	if !ok || root.ID != "node-1" {
		t.Errorf("Root() = %v, %v", root, ok)
	}
	if got.AST != nil {
		t.Error("AST should not survive serialization")
	}
}

func TestResultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas.json")
	if err := WriteResultFile(sampleResult(), path); err != nil {
		t.Fatalf("WriteResultFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
	got, err := ReadResultFile(path)
	if err != nil {
		t.Fatalf("ReadResultFile: %v", err)
	}
	if got.Query != sampleResult().Query {
		t.Errorf("query = %q", got.Query)
	}

	if _, err := ReadResultFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ParsedResult)
		wantErr string
	}{
		{name: "Valid", mutate: func(*ParsedResult) {}},
		{
			name:    "DuplicateID",
			mutate:  func(r *ParsedResult) { r.Nodes[1].ID = "node-1" },
			wantErr: "duplicate node id",
		},
		{
			name:    "DanglingEdge",
			mutate:  func(r *ParsedResult) { r.Edges[0].Target = "node-9" },
			wantErr: "unknown target",
		},
		{
			name: "TwoParents",
			mutate: func(r *ParsedResult) {
				r.Edges = append(r.Edges, Edge{ID: "var-id-node-2", Source: "var-id", Target: "node-2"})
			},
			wantErr: "more than one parent",
		},
		{
			name:    "TwoRoots",
			mutate:  func(r *ParsedResult) { r.Nodes[1].Data.IsRoot = true },
			wantErr: "root nodes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sampleResult()
			tt.mutate(r)
			err := r.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewEdge(t *testing.T) {
	field := NewEdge("node-1", Node{ID: "node-2", Kind: KindField})
	if field.ID != "node-1-node-2" || field.Kind != "" {
		t.Errorf("field edge = %+v", field)
	}
	frag := NewEdge("node-1", Node{ID: "node-3", Kind: KindFragment})
	if frag.Kind != EdgeKindFragment {
		t.Errorf("fragment edge kind = %q", frag.Kind)
	}
}

func TestChildren(t *testing.T) {
	r := sampleResult()
	if got := r.Children("node-1"); len(got) != 1 || got[0] != "node-2" {
		t.Errorf("Children(node-1) = %v", got)
	}
	if got := r.Children("node-2"); len(got) != 0 {
		t.Errorf("Children(node-2) = %v", got)
	}
	if got := r.NodesOfKind(KindVariable); len(got) != 1 || got[0].ID != "var-id" {
		t.Errorf("NodesOfKind(variable) = %v", got)
	}
}
