package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gqlcanvas/pkg/config"
	"github.com/matzehuels/gqlcanvas/pkg/graph"
	"github.com/matzehuels/gqlcanvas/pkg/layout"
	"github.com/matzehuels/gqlcanvas/pkg/pipeline"
)

// parseOpts holds the flags of the parse command.
type parseOpts struct {
	output string
	mode   string
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <request.json|->",
		Short: "Build a canvas from a GraphQL request body",
		Long: `Build a positioned canvas from a GraphQL request body.

The body is a JSON object with "query" and optional "operationName" and
"variables" fields, as sent to a GraphQL endpoint.

Examples:
  gqlcanvas parse request.json -o canvas.json
  echo '{"query":"{ me { name } }"}' | gqlcanvas parse -
  gqlcanvas parse request.json --mode deferred`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "layout mode: precomputed (default), deferred")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, input string, opts parseOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	mode, err := resolveMode(cfg, opts.mode)
	if err != nil {
		return err
	}

	body, err := readInput(cmd, input)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	result, err := pipeline.NewRunner(nil, nil, c.Logger).Build(cmd.Context(), body, pipeline.Options{Mode: mode})
	if err != nil {
		return err
	}
	prog.done("Built canvas")

	var buf bytes.Buffer
	if err := graph.WriteResult(result.Canvas, &buf); err != nil {
		return err
	}
	if err := writeOutput(c.Out, opts.output, buf.Bytes()); err != nil {
		return err
	}

	if opts.output != "" {
		stderr := cmd.ErrOrStderr()
		printSuccess(stderr, "Canvas written")
		printFile(stderr, opts.output)
		printStats(stderr, result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.VariableCount, false)
		printNextStep(stderr, "Render it", "gqlcanvas render "+opts.output)
	}
	return nil
}

// resolveMode picks the --mode flag over the config file.
func resolveMode(cfg config.Config, flag string) (layout.Mode, error) {
	if flag != "" {
		return layout.ParseMode(flag)
	}
	return cfg.LayoutMode(), nil
}
