package pagination

import (
	"math"
)

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
	PageSizeA3     = PageSize{Width: 841.89, Height: 1190.55, Name: "A3"}
	PageSizeA5     = PageSize{Width: 419.53, Height: 595.28, Name: "A5"}
)

// Landscape returns the page size with width and height swapped so that width > height
func (s PageSize) Landscape() PageSize {
	if s.Width < s.Height {
		s.Width, s.Height = s.Height, s.Width
	}
	return s
}

// Portrait returns the page size with height >= width
func (s PageSize) Portrait() PageSize {
	if s.Width > s.Height {
		s.Width, s.Height = s.Height, s.Width
	}
	return s
}

// Geometry builds a PageGeometry for this page size
func (s PageSize) Geometry(top, bottom, side float64) PageGeometry {
	return PageGeometry{
		PageWidth:    s.Width,
		PageHeight:   s.Height,
		TopMargin:    top,
		BottomMargin: bottom,
		SideMargin:   side,
	}
}

// PageGeometry describes the output page and its printable area.
// All values share one linear unit (points for PDF output).
type PageGeometry struct {
	PageWidth    float64
	PageHeight   float64
	TopMargin    float64
	BottomMargin float64
	SideMargin   float64
}

// UsableHeight is the page height left for content after the top and bottom margins
func (g PageGeometry) UsableHeight() float64 {
	return g.PageHeight - g.TopMargin - g.BottomMargin
}

// ContentWidth is the printable width between the side margins
func (g PageGeometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.SideMargin
}

// Validate reports an InvalidGeometryError when a value is not finite, a
// margin is negative or the margins consume the page
func (g PageGeometry) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"page width", g.PageWidth},
		{"page height", g.PageHeight},
		{"top margin", g.TopMargin},
		{"bottom margin", g.BottomMargin},
		{"side margin", g.SideMargin},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidGeometryError{Reason: f.name + " must be a finite number"}
		}
		if f.value < 0 {
			return &InvalidGeometryError{Reason: f.name + " must not be negative"}
		}
	}
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return &InvalidGeometryError{Reason: "page width and height must be positive"}
	}
	if g.UsableHeight() <= 0 {
		return &InvalidGeometryError{Reason: "top and bottom margins leave no usable content height"}
	}
	if g.ContentWidth() <= 0 {
		return &InvalidGeometryError{Reason: "side margins leave no content width"}
	}
	return nil
}

// Rect is a placement rectangle on an output page
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// PageSlice is one output page: a vertical window of the source bitmap and
// the rectangle it is drawn into.
type PageSlice struct {
	// Page is 1-indexed
	Page         int
	SourceY      int
	SourceHeight int
	Placement    Rect
}

// SourceEnd returns the exclusive end row of the slice's source window
func (s PageSlice) SourceEnd() int {
	return s.SourceY + s.SourceHeight
}

// PaginationResult is the ordered list of slices for one source bitmap
type PaginationResult struct {
	Geometry     PageGeometry
	SourceWidth  int
	SourceHeight int
	ScaleRatio   float64
	// WindowHeight is the source height of every page but the last
	WindowHeight int
	// Header references the letterhead drawn beneath every page. Empty means none.
	Header string
	Slices []PageSlice
}

// PageCount returns the number of pages in the result
func (r *PaginationResult) PageCount() int {
	return len(r.Slices)
}

// Paginator slices a tall source into fixed-size pages
type Paginator struct {
	Geometry PageGeometry
	Header   string
}

// NewPaginator creates a new paginator
func NewPaginator(geometry PageGeometry, header string) *Paginator {
	return &Paginator{
		Geometry: geometry,
		Header:   header,
	}
}

// Paginate splits a width x height source into page slices.
// Geometry is checked before the source height, and nothing is emitted on error.
func (p *Paginator) Paginate(width, height int) (*PaginationResult, error) {
	scale, window, err := plan(p.Geometry, width)
	if err != nil {
		return nil, err
	}
	if height <= 0 {
		return nil, &EmptySourceError{Height: height}
	}

	result := &PaginationResult{
		Geometry:     p.Geometry,
		SourceWidth:  width,
		SourceHeight: height,
		ScaleRatio:   scale,
		WindowHeight: window,
		Header:       p.Header,
		Slices:       make([]PageSlice, 0, pageCount(height, window)),
	}

	contentWidth := p.Geometry.ContentWidth()
	for y, page := 0, 1; y < height; page++ {
		h := window
		if remaining := height - y; remaining < h {
			h = remaining
		}
		result.Slices = append(result.Slices, PageSlice{
			Page:         page,
			SourceY:      y,
			SourceHeight: h,
			Placement: Rect{
				X:      p.Geometry.SideMargin,
				Y:      p.Geometry.TopMargin,
				Width:  contentWidth,
				Height: float64(h) * scale,
			},
		})
		y += h
	}

	return result, nil
}

// PageCount calculates the number of pages needed without building the slices
func (p *Paginator) PageCount(width, height int) (int, error) {
	_, window, err := plan(p.Geometry, width)
	if err != nil {
		return 0, err
	}
	if height <= 0 {
		return 0, &EmptySourceError{Height: height}
	}
	return pageCount(height, window), nil
}

// plan computes the scale ratio and per-page source window for a source width
func plan(g PageGeometry, width int) (float64, int, error) {
	if err := g.Validate(); err != nil {
		return 0, 0, err
	}
	if width <= 0 {
		return 0, 0, &InvalidGeometryError{Reason: "source width must be positive"}
	}

	scale := g.ContentWidth() / float64(width)
	// usable / scale, rearranged to keep the division exact for integer inputs
	window := math.Floor(g.UsableHeight() * float64(width) / g.ContentWidth())
	if math.IsNaN(window) || window < 1 {
		return 0, 0, &InvalidGeometryError{Reason: "usable height is smaller than one source pixel"}
	}
	if window > math.MaxInt32 {
		window = math.MaxInt32
	}
	return scale, int(window), nil
}

func pageCount(height, window int) int {
	return (height + window - 1) / window
}
