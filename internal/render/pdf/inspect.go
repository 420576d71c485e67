package pdf

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageDim is a page's media box size in points
type PageDim struct {
	Width  float64
	Height float64
}

// Info summarises a written PDF
type Info struct {
	PageCount int
	Pages     []PageDim
	Title     string
	Author    string
}

// Inspect parses and validates a PDF
func Inspect(rs io.ReadSeeker) (*Info, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadAndValidate(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}

	info := &Info{
		PageCount: ctx.PageCount,
		Pages:     make([]PageDim, 0, len(dims)),
		Title:     ctx.Title,
		Author:    ctx.Author,
	}
	for _, d := range dims {
		info.Pages = append(info.Pages, PageDim{Width: d.Width, Height: d.Height})
	}
	return info, nil
}
