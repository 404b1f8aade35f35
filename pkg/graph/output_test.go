package graph

import (
	"encoding/json"
	"testing"
)

func TestMarshalOutput(t *testing.T) {
	tests := []struct {
		name string
		r    *ParsedResult
		want string
	}{
		{
			name: "Anonymous",
			r:    &ParsedResult{Query: "{ hello }"},
			want: "{\n  \"operationName\": null,\n  \"variables\": {},\n  \"query\": \"{ hello }\"\n}",
		},
		{
			name: "Named",
			r:    sampleResult(),
			want: "{\n  \"operationName\": \"GetUser\",\n  \"variables\": {\n    \"id\": \"123\"\n  },\n" +
				"  \"query\": \"query GetUser($id: ID!) { user(id: $id) { name } }\"\n}",
		},
		{
			name: "NoHTMLEscape",
			r:    &ParsedResult{Query: `{ a(x: "<b>&") }`},
			want: "{\n  \"operationName\": null,\n  \"variables\": {},\n  \"query\": \"{ a(x: \\\"<b>&\\\") }\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalOutput(tt.r)
			if err != nil {
				t.Fatalf("MarshalOutput: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestOutputIgnoresGraphEdits(t *testing.T) {
	r := sampleResult()
	before, _ := MarshalOutput(r)
	label := "renamed"
	if err := r.ApplyPatch("node-2", Patch{Label: &label}); err != nil {
		t.Fatal(err)
	}
	after, _ := MarshalOutput(r)
	if string(before) != string(after) {
		t.Errorf("output changed after a label edit:\n%s\n%s", before, after)
	}

	var out Output
	if err := json.Unmarshal(after, &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
}
