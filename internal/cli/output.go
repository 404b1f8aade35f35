package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
)

// outputCommand creates the output command.
func (c *CLI) outputCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "output <canvas.json|->",
		Short: "Project a canvas back into a GraphQL request body",
		Long: `Project a canvas back into a GraphQL request body.

The result carries the operation name, the variables (including edits made
to variable nodes) and the original query text.

Examples:
  gqlcanvas output canvas.json
  gqlcanvas parse request.json | gqlcanvas output -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			canvas, err := graph.UnmarshalResult(data)
			if err != nil {
				return err
			}
			out, err := graph.MarshalOutput(canvas)
			if err != nil {
				return err
			}
			if output == "" {
				out = append(out, '\n')
			}
			return writeOutput(c.Out, output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
