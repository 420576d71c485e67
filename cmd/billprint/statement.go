package main

import (
	"github.com/spf13/cobra"

	"github.com/billprint/billprint/pkg/api"
)

func newStatementCmd(a *app) *cobra.Command {
	var output, title string

	cmd := &cobra.Command{
		Use:   "statement <statement.yaml|statement.json>",
		Short: "Render a billing statement to a paginated PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if output == "" {
				output = defaultOutput(input)
			}

			g, err := a.generator(api.WithTitle(title))
			if err != nil {
				return err
			}
			result, err := g.RenderStatementFile(cmd.Context(), input, output)
			if err != nil {
				return err
			}
			printResult(cmd, output, result.PageCount())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF path (default: input with .pdf extension)")
	cmd.Flags().StringVar(&title, "title", "IPD Final Bill", "document title")
	return cmd
}
