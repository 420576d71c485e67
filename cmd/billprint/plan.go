package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/billprint/billprint/internal/pagination"
)

type planView struct {
	Source struct {
		Width  int `json:"width" yaml:"width"`
		Height int `json:"height" yaml:"height"`
	} `json:"source" yaml:"source"`
	Page struct {
		Width        float64 `json:"width" yaml:"width"`
		Height       float64 `json:"height" yaml:"height"`
		TopMargin    float64 `json:"top_margin" yaml:"top_margin"`
		BottomMargin float64 `json:"bottom_margin" yaml:"bottom_margin"`
		SideMargin   float64 `json:"side_margin" yaml:"side_margin"`
	} `json:"page" yaml:"page"`
	Scale        float64     `json:"scale" yaml:"scale"`
	WindowHeight int         `json:"window_height" yaml:"window_height"`
	Letterhead   string      `json:"letterhead,omitempty" yaml:"letterhead,omitempty"`
	Pages        []slicePlan `json:"pages" yaml:"pages"`
}

type slicePlan struct {
	Page         int     `json:"page" yaml:"page"`
	SourceY      int     `json:"source_y" yaml:"source_y"`
	SourceHeight int     `json:"source_height" yaml:"source_height"`
	X            float64 `json:"x" yaml:"x"`
	Y            float64 `json:"y" yaml:"y"`
	Width        float64 `json:"width" yaml:"width"`
	Height       float64 `json:"height" yaml:"height"`
}

func newPlanView(r *pagination.PaginationResult) planView {
	var v planView
	v.Source.Width = r.SourceWidth
	v.Source.Height = r.SourceHeight
	v.Page.Width = r.Geometry.PageWidth
	v.Page.Height = r.Geometry.PageHeight
	v.Page.TopMargin = r.Geometry.TopMargin
	v.Page.BottomMargin = r.Geometry.BottomMargin
	v.Page.SideMargin = r.Geometry.SideMargin
	v.Scale = r.ScaleRatio
	v.WindowHeight = r.WindowHeight
	v.Letterhead = r.Header
	for _, s := range r.Slices {
		v.Pages = append(v.Pages, slicePlan{
			Page:         s.Page,
			SourceY:      s.SourceY,
			SourceHeight: s.SourceHeight,
			X:            s.Placement.X,
			Y:            s.Placement.Y,
			Width:        s.Placement.Width,
			Height:       s.Placement.Height,
		})
	}
	return v
}

func newPlanCmd(a *app) *cobra.Command {
	var (
		format        string
		width, height int
	)

	cmd := &cobra.Command{
		Use:   "plan [statement|image]",
		Short: "Print the page slices for a source without rendering",
		Long: `plan loads a statement or image and prints how it would be paginated.
With --width and --height no source is needed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.generator()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				src, err := g.LoadSource(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				width, height = src.Width(), src.Height()
			} else if width == 0 && height == 0 {
				return fmt.Errorf("either a source or --width and --height are required")
			}

			result, err := g.Plan(width, height)
			if err != nil {
				return err
			}

			view := newPlanView(result)
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(view)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	cmd.Flags().IntVar(&width, "width", 0, "source width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "source height in pixels")
	return cmd
}
