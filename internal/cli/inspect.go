package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gqlcanvas/pkg/graph"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "inspect <canvas.json>",
		Short: "Browse a canvas and edit node labels and variable values",
		Long: `Browse a canvas interactively.

Rename any node with "r", change a variable's JSON value with "e" and save
with "s". Saving writes the canvas back to its file unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canvas, err := graph.ReadResultFile(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0]
			}

			save := func(r *graph.ParsedResult) error {
				return graph.WriteResultFile(r, output)
			}
			model := NewCanvasModel(canvas, save)

			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("run inspector: %w", err)
			}
			if m, ok := final.(CanvasModel); ok && m.Dirty {
				printWarning(cmd.ErrOrStderr(), "Unsaved changes discarded")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "save to this file instead of the input")
	return cmd
}
