package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Canvas Serialization API
// =============================================================================

// MarshalResult converts a ParsedResult to indented JSON bytes.
func MarshalResult(r *ParsedResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeResultTo(r, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteResultFile writes a ParsedResult to a JSON file.
// The file is created with 0644 permissions.
func WriteResultFile(r *ParsedResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeResultTo(r, f)
}

// WriteResult writes a ParsedResult as JSON to an io.Writer.
func WriteResult(r *ParsedResult, w io.Writer) error {
	return writeResultTo(r, w)
}

// ReadResultFile reads a canvas JSON file.
// The returned result has a nil AST.
func ReadResultFile(path string) (*ParsedResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readResultFrom(f)
}

// ReadResult decodes a canvas from an io.Reader.
func ReadResult(r io.Reader) (*ParsedResult, error) {
	return readResultFrom(r)
}

// UnmarshalResult decodes canvas JSON bytes.
func UnmarshalResult(data []byte) (*ParsedResult, error) {
	return readResultFrom(bytes.NewReader(data))
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeResultTo(r *ParsedResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readResultFrom(rd io.Reader) (*ParsedResult, error) {
	var r ParsedResult
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if r.Variables == nil {
		r.Variables = Variables{}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the structural invariants of a canvas: unique node IDs,
// edges between existing nodes, at most one incoming edge per node and at
// most one root.
func (r *ParsedResult) Validate() error {
	ids := make(map[string]bool, len(r.Nodes))
	roots := 0
	for _, n := range r.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if ids[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		ids[n.ID] = true
		if n.Data.IsRoot {
			roots++
		}
	}
	if roots > 1 {
		return fmt.Errorf("canvas has %d root nodes", roots)
	}

	incoming := make(map[string]bool, len(r.Edges))
	for _, e := range r.Edges {
		if !ids[e.Source] {
			return fmt.Errorf("edge %s: unknown source %q", e.ID, e.Source)
		}
		if !ids[e.Target] {
			return fmt.Errorf("edge %s: unknown target %q", e.ID, e.Target)
		}
		if incoming[e.Target] {
			return fmt.Errorf("node %q has more than one parent", e.Target)
		}
		incoming[e.Target] = true
	}
	return nil
}
