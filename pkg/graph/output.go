package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Output is the canonical request body projected from a canvas.
type Output struct {
	OperationName *string   `json:"operationName"`
	Variables     Variables `json:"variables"`
	Query         string    `json:"query"`
}

// Project extracts the request body fields of r unchanged.
func Project(r *ParsedResult) Output {
	vars := r.Variables
	if vars == nil {
		vars = Variables{}
	}
	return Output{
		OperationName: r.OperationName,
		Variables:     vars,
		Query:         r.Query,
	}
}

// MarshalOutput renders the request body of r as JSON indented by two
// spaces, without a trailing newline, ready to be sent as-is.
func MarshalOutput(r *ParsedResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Project(r)); err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
