package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
)

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := New(io.Discard, log.InfoLevel)
	c.Out = &stdout

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const testRequest = `{"query":"query Q($id: ID) { user(id: $id) { name } }","operationName":"Q","variables":{"id":"7"}}`

func TestParseStdin(t *testing.T) {
	cfg := writeTestConfig(t, "")
	out, _, err := runCLI(t, testRequest, "--config", cfg, "parse", "-")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	canvas, err := graph.UnmarshalResult([]byte(out))
	if err != nil {
		t.Fatalf("parse output is not a canvas: %v", err)
	}
	if canvas.Nodes[0].Label != "query: Q" {
		t.Errorf("root label = %q", canvas.Nodes[0].Label)
	}
	if _, ok := canvas.Node("var-id"); !ok {
		t.Error("missing variable node")
	}
}

func TestParseToFileThenOutput(t *testing.T) {
	cfg := writeTestConfig(t, "")
	dir := t.TempDir()
	canvasPath := filepath.Join(dir, "canvas.json")

	_, stderr, err := runCLI(t, testRequest, "--config", cfg, "parse", "-", "-o", canvasPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, canvasPath) {
		t.Errorf("status output %q does not mention %s", stderr, canvasPath)
	}

	out, _, err := runCLI(t, "", "--config", cfg, "output", canvasPath)
	if err != nil {
		t.Fatal(err)
	}
	var got graph.Output
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.OperationName == nil || *got.OperationName != "Q" {
		t.Errorf("operationName = %v", got.OperationName)
	}
	if v, _ := got.Variables.Get("id"); string(v) != `"7"` {
		t.Errorf("variables = %v", got.Variables)
	}
}

func TestParseErrors(t *testing.T) {
	cfg := writeTestConfig(t, "")
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"invalid json", "nope", []string{"parse", "-"}, "Invalid JSON format"},
		{"missing query", `{}`, []string{"parse", "-"}, `Missing or invalid "query" field`},
		{"bad mode", testRequest, []string{"parse", "-", "--mode", "grid"}, "unknown layout mode"},
		{"missing file", "", []string{"parse", "does-not-exist.json"}, "does-not-exist.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.stdin, append([]string{"--config", cfg}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestRenderDOTStdout(t *testing.T) {
	cfg := writeTestConfig(t, "[cache]\nbackend = \"none\"\n")
	out, _, err := runCLI(t, testRequest, "--config", cfg, "render", "-", "-f", "dot", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "digraph G {") {
		t.Errorf("dot output = %q", out)
	}
}

func TestRenderCanvasFiles(t *testing.T) {
	cfg := writeTestConfig(t, "[cache]\nbackend = \"none\"\n")
	dir := t.TempDir()
	canvasPath := filepath.Join(dir, "canvas.json")
	if _, _, err := runCLI(t, testRequest, "--config", cfg, "parse", "-", "-o", canvasPath); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "", "--config", cfg, "render", canvasPath, "-f", "dot,output"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"canvas.dot", "canvas.request.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestRenderRejectsFormat(t *testing.T) {
	cfg := writeTestConfig(t, "")
	_, _, err := runCLI(t, testRequest, "--config", cfg, "render", "-", "-f", "gif")
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("err = %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg, png,dot", []string{"svg", "png", "dot"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		formats []string
		want    map[string]string
	}{
		{"single with output", "out.svg", "req.json", []string{"svg"}, map[string]string{"svg": "out.svg"}},
		{"derived from input", "", "dir/req.json", []string{"svg", "png"}, map[string]string{"svg": "dir/req.svg", "png": "dir/req.png"}},
		{"base with extension", "x.svg", "req.json", []string{"svg", "dot"}, map[string]string{"svg": "x.svg", "dot": "x.dot"}},
		{"stdin input", "", "-", []string{"json"}, map[string]string{"json": "canvas.canvas.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.input, tt.formats)
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("path[%s] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}

func TestIsCanvas(t *testing.T) {
	if isCanvas([]byte(testRequest)) {
		t.Error("request body detected as canvas")
	}
	if !isCanvas([]byte(`{"nodes":[],"edges":[]}`)) {
		t.Error("canvas not detected")
	}
	if isCanvas([]byte(`not json`)) {
		t.Error("invalid JSON detected as canvas")
	}
}

func TestInferMode(t *testing.T) {
	deferred := &graph.ParsedResult{Nodes: []graph.Node{{ID: "node-0"}, {ID: "node-1"}}}
	if got := inferMode(deferred, "precomputed"); got != "deferred" {
		t.Errorf("inferMode(all zero) = %q", got)
	}
	placed := &graph.ParsedResult{Nodes: []graph.Node{{ID: "node-0", Position: graph.Position{X: 250, Y: 50}}, {ID: "node-1"}}}
	if got := inferMode(placed, "precomputed"); got != "precomputed" {
		t.Errorf("inferMode(placed) = %q", got)
	}
}
