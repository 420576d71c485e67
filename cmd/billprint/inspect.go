package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/billprint/billprint/internal/render/pdf"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Validate a PDF and print its pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open PDF: %w", err)
			}
			defer f.Close()

			info, err := pdf.Inspect(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pages: %d\n", info.PageCount)
			if info.Title != "" {
				fmt.Fprintf(out, "Title: %s\n", info.Title)
			}
			for i, p := range info.Pages {
				fmt.Fprintf(out, "  %d: %.2f x %.2f pt\n", i+1, p.Width, p.Height)
			}
			return nil
		},
	}
}
