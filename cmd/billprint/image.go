package main

import (
	"github.com/spf13/cobra"

	"github.com/billprint/billprint/pkg/api"
)

func newImageCmd(a *app) *cobra.Command {
	var output, title string

	cmd := &cobra.Command{
		Use:   "image <file|url>",
		Short: "Paginate a tall image (PNG, JPEG, GIF, BMP, TIFF, WebP or SVG) into a PDF",
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
			result, err := g.RenderImageFile(cmd.Context(), input, output)
			if err != nil {
				return err
			}
			printResult(cmd, output, result.PageCount())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF path (default: input with .pdf extension)")
	cmd.Flags().StringVar(&title, "title", "", "document title")
	return cmd
}
