package api

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options represents configuration options for statement and image rendering
type Options struct {
	// Page dimensions in points
	PageWidth  float64
	PageHeight float64
	// Page orientation: portrait or landscape
	PageOrientation PageOrientation

	// Page margins. The top margin leaves room for the letterhead band.
	MarginTop    float64
	MarginBottom float64
	MarginSide   float64

	// Letterhead is drawn beneath every page. It may be a path, an http(s)
	// URL or a data URL. Empty means no letterhead.
	Letterhead string

	// Scale is the capture density used when rasterising statements
	Scale int
	// StatementWidth is the logical statement width before scaling
	StatementWidth int
	// SVGWidth is the pixel width SVG sources are rasterised at
	SVGWidth int

	// Money formatting
	Locale         string
	CurrencySymbol string

	Debug bool

	// Resource paths
	ResourcePaths []string

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string

	Logger logrus.FieldLogger

	// HTTPClient fetches remote sources and letterheads; nil keeps the loader default
	HTTPClient *http.Client
}

// Option is a function that modifies Options
type Option func(*Options)

// PageOrientation represents page orientation
type PageOrientation string

const (
	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait PageOrientation = "portrait"
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape PageOrientation = "landscape"
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		// Default to A4 paper size (595.28 x 841.89 points)
		PageWidth:       PageSizeA4Width,
		PageHeight:      PageSizeA4Height,
		PageOrientation: PageOrientationPortrait,

		MarginTop:    120,
		MarginBottom: 80,
		MarginSide:   20,

		Scale:          3,
		StatementWidth: 595,
		SVGWidth:       1785,

		Locale:         "en",
		CurrencySymbol: "Rs. ",

		ResourcePaths: []string{},
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithMargins sets the page margins
func WithMargins(top, bottom, side float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginBottom = bottom
		o.MarginSide = side
	}
}

// WithLetterhead sets the image drawn beneath every page
func WithLetterhead(url string) Option {
	return func(o *Options) {
		o.Letterhead = url
	}
}

// WithScale sets the statement capture density
func WithScale(scale int) Option {
	return func(o *Options) {
		o.Scale = scale
	}
}

// WithStatementWidth sets the logical statement width
func WithStatementWidth(width int) Option {
	return func(o *Options) {
		o.StatementWidth = width
	}
}

// WithSVGWidth sets the raster width for SVG sources
func WithSVGWidth(width int) Option {
	return func(o *Options) {
		o.SVGWidth = width
	}
}

// WithCurrency sets the locale and symbol used for amounts
func WithCurrency(locale, symbol string) Option {
	return func(o *Options) {
		o.Locale = locale
		o.CurrencySymbol = symbol
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithResourcePath adds a path to search for resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithPageOrientation sets the page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}

// WithHTTPClient sets the client used for remote resources
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// Standard page sizes in points (1/72 inch)
const (
	PageSizeA3Width  = 841.89
	PageSizeA3Height = 1190.55
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
	PageSizeA5Width  = 419.53
	PageSizeA5Height = 595.28

	// US Letter and Legal
	PageSizeLetterWidth  = 612
	PageSizeLetterHeight = 792
	PageSizeLegalWidth   = 612
	PageSizeLegalHeight  = 1008
)

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4Width, PageSizeA4Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetterWidth, PageSizeLetterHeight)
}

// WithPageSizeLegal sets the page size to US Legal
func WithPageSizeLegal() Option {
	return WithPageSize(PageSizeLegalWidth, PageSizeLegalHeight)
}

// PageSizeByName returns the dimensions of a named page size (A3, A4, A5,
// Letter, Legal), case-insensitively.
func PageSizeByName(name string) (width, height float64, ok bool) {
	switch strings.ToLower(name) {
	case "a3":
		return PageSizeA3Width, PageSizeA3Height, true
	case "a4":
		return PageSizeA4Width, PageSizeA4Height, true
	case "a5":
		return PageSizeA5Width, PageSizeA5Height, true
	case "letter":
		return PageSizeLetterWidth, PageSizeLetterHeight, true
	case "legal":
		return PageSizeLegalWidth, PageSizeLegalHeight, true
	}
	return 0, 0, false
}
