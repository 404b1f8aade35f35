package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
	"github.com/matzehuels/gqlcanvas/pkg/layout"
	"github.com/matzehuels/gqlcanvas/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output   string
	formats  []string
	mode     string
	detailed bool
	scale    float64
	noCache  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render <request.json|canvas.json|->",
		Short: "Render a request body or canvas",
		Long: `Render a GraphQL request body or a saved canvas.

The input kind is detected from its content: a JSON object with a "nodes"
array is a canvas, anything else is treated as a request body.

Examples:
  gqlcanvas render request.json                 # request.svg
  gqlcanvas render canvas.json -f svg,png       # canvas.svg, canvas.png
  gqlcanvas render request.json -f dot -o -     # DOT on stdout
  gqlcanvas render request.json --detailed      # arguments and values in labels`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path; - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json, output (comma-separated)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "layout mode: precomputed, deferred")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show arguments and variable values in labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	data, err := readInput(cmd, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Formats:  opts.formats,
		Detailed: opts.detailed,
		Scale:    opts.scale,
	}

	var (
		canvas    *graph.ParsedResult
		artifacts map[string][]byte
		hit       bool
	)
	stderr := cmd.ErrOrStderr()
	sp := newSpinner(ctx, stderr, "Rendering "+strings.Join(opts.formats, ", "))

	if isCanvas(data) {
		canvas, err = graph.UnmarshalResult(data)
		if err != nil {
			return err
		}
		if popts.Mode, err = resolveMode(cfg, opts.mode); err != nil {
			return err
		}
		if opts.mode == "" {
			popts.Mode = inferMode(canvas, popts.Mode)
		}
		sp.Start()
		artifacts, hit, err = runner.RenderWithCacheInfo(ctx, canvas, popts)
		sp.Stop()
	} else {
		if popts.Mode, err = resolveMode(cfg, opts.mode); err != nil {
			return err
		}
		var result *pipeline.Result
		sp.Start()
		result, err = runner.Execute(ctx, data, popts)
		sp.Stop()
		if result != nil {
			canvas, artifacts, hit = result.Canvas, result.Artifacts, result.CacheInfo.RenderHit
		}
	}
	if err != nil {
		return err
	}

	if opts.output == "-" {
		if len(opts.formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(opts.formats))
		}
		return writeOutput(c.Out, "", artifacts[opts.formats[0]])
	}

	paths := outputPaths(opts.output, input, opts.formats)
	for _, format := range opts.formats {
		if err := writeOutput(c.Out, paths[format], artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess(stderr, "Rendered %s", strings.Join(opts.formats, ", "))
	for _, format := range opts.formats {
		printFile(stderr, paths[format])
	}
	printStats(stderr, len(canvas.Nodes), len(canvas.Edges), len(canvas.Variables), hit)
	return nil
}

// isCanvas reports whether data is a serialized canvas rather than a
// request body.
func isCanvas(data []byte) bool {
	return gjson.ValidBytes(data) && gjson.GetBytes(data, "nodes").IsArray()
}

// inferMode treats a canvas whose nodes all sit at the origin as deferred.
func inferMode(canvas *graph.ParsedResult, fallback layout.Mode) layout.Mode {
	if len(canvas.Nodes) < 2 {
		return fallback
	}
	for _, n := range canvas.Nodes {
		if n.Position != (graph.Position{}) {
			return fallback
		}
	}
	return layout.ModeDeferred
}

// outputPaths maps each format to a file. A single format writes to output
// as given; several formats share output (or the input name) as a base.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = input
		if base == "-" {
			base = "canvas"
		}
	}
	if ext := filepath.Ext(base); ext == ".json" || pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}

	for _, f := range formats {
		paths[f] = base + "." + extension(f)
	}
	return paths
}

// extension returns the file extension of a format.
func extension(format string) string {
	switch format {
	case pipeline.FormatJSON:
		return "canvas.json"
	case pipeline.FormatOutput:
		return "request.json"
	}
	return format
}
