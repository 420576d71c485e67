package pagination

// Bitmap is anything with known pixel dimensions
type Bitmap interface {
	Width() int
	Height() int
}

// Options represents options for the pagination engine
type Options struct {
	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginBottom float64
	MarginSide   float64
	Header       string
}

// Engine handles the pagination process
type Engine struct {
	options Options
}

// NewEngine creates a new pagination engine
func NewEngine() *Engine {
	return &Engine{
		options: Options{
			PageWidth:    PageSizeA4.Width,
			PageHeight:   PageSizeA4.Height,
			MarginTop:    120, // room for the letterhead band
			MarginBottom: 80,
			MarginSide:   20,
		},
	}
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// Options returns the current options
func (e *Engine) Options() Options {
	return e.options
}

// Geometry returns the page geometry described by the options
func (e *Engine) Geometry() PageGeometry {
	return PageGeometry{
		PageWidth:    e.options.PageWidth,
		PageHeight:   e.options.PageHeight,
		TopMargin:    e.options.MarginTop,
		BottomMargin: e.options.MarginBottom,
		SideMargin:   e.options.MarginSide,
	}
}

// Paginate breaks a rendered bitmap into pages
func (e *Engine) Paginate(src Bitmap) (*PaginationResult, error) {
	paginator := NewPaginator(e.Geometry(), e.options.Header)
	return paginator.Paginate(src.Width(), src.Height())
}
