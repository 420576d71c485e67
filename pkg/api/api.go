// Package api renders IPD billing statements and tall images into
// letterhead PDFs, one fixed-size page per vertical slice.
package api

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/billprint/billprint/internal/billing"
	"github.com/billprint/billprint/internal/layout"
	"github.com/billprint/billprint/internal/logger"
	"github.com/billprint/billprint/internal/pagination"
	"github.com/billprint/billprint/internal/raster"
	"github.com/billprint/billprint/internal/render/pdf"
	"github.com/billprint/billprint/internal/res"
	"github.com/billprint/billprint/internal/text"
)

const producer = "billprint"

// Generator is the main API for producing paginated PDFs
type Generator struct {
	options Options
	loader  *res.Loader
}

// New creates a new generator with default options
func New(opts ...Option) *Generator {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(options)
}

// NewWithOptions creates a new generator with the specified options
func NewWithOptions(options Options) *Generator {
	g := &Generator{options: options}
	g.resetLoader()
	return g
}

func (g *Generator) resetLoader() {
	g.loader = res.NewLoader("")
	for _, path := range g.options.ResourcePaths {
		g.loader.AddSearchPath(path)
	}
	if g.options.HTTPClient != nil {
		g.loader.SetHTTPClient(g.options.HTTPClient)
	}
}

// Options returns a copy of the current options
func (g *Generator) Options() Options {
	return g.options
}

// WithOption applies an option to the generator
func (g *Generator) WithOption(option Option) *Generator {
	option(&g.options)
	g.resetLoader()
	return g
}

func (g *Generator) log() logrus.FieldLogger {
	if g.options.Logger != nil {
		return logger.WithComponent(g.options.Logger, "api")
	}
	return logger.Discard()
}

// Geometry returns the page geometry with orientation applied
func (g *Generator) Geometry() pagination.PageGeometry {
	size := pagination.PageSize{Width: g.options.PageWidth, Height: g.options.PageHeight}
	switch g.options.PageOrientation {
	case PageOrientationLandscape:
		size = size.Landscape()
	case PageOrientationPortrait, "":
		size = size.Portrait()
	}
	return size.Geometry(g.options.MarginTop, g.options.MarginBottom, g.options.MarginSide)
}

// Plan paginates a source of the given pixel size without rendering it
func (g *Generator) Plan(width, height int) (*pagination.PaginationResult, error) {
	engine := pagination.NewEngine()
	geo := g.Geometry()
	engine.SetOptions(pagination.Options{
		PageWidth:    geo.PageWidth,
		PageHeight:   geo.PageHeight,
		MarginTop:    geo.TopMargin,
		MarginBottom: geo.BottomMargin,
		MarginSide:   geo.SideMargin,
		Header:       g.options.Letterhead,
	})
	return engine.Paginate(dims{width, height})
}

type dims struct{ w, h int }

func (d dims) Width() int  { return d.w }
func (d dims) Height() int { return d.h }

// RasterizeStatement draws a statement into its source bitmap
func (g *Generator) RasterizeStatement(stmt *billing.Statement) (*raster.SourceBitmap, error) {
	if stmt == nil {
		return nil, fmt.Errorf("failed to lay out statement: nil statement")
	}
	if err := stmt.Validate(); err != nil {
		return nil, err
	}

	money, err := text.NewMoneyFormatter(g.options.Locale, g.options.CurrencySymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to set up money formatting: %w", err)
	}

	renderer := layout.NewStatementRenderer()
	if g.options.StatementWidth > 0 {
		renderer.Width = g.options.StatementWidth
	}
	renderer.Scale = g.options.Scale
	renderer.Money = money

	src, err := renderer.Render(stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out statement: %w", err)
	}
	return src, nil
}

// LoadStatement loads and validates a statement from a path or URL
func (g *Generator) LoadStatement(ctx context.Context, url string) (*billing.Statement, error) {
	resource, err := g.loader.LoadStatement(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to load statement: %w", err)
	}
	return billing.Decode(resource.GetReader(), resource.Format())
}

// LoadImage loads and decodes a source image from a path or URL
func (g *Generator) LoadImage(ctx context.Context, url string) (*raster.SourceBitmap, error) {
	src, err := g.loader.LoadBitmap(ctx, url, g.svgWidth())
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return src, nil
}

// LoadSource loads either a statement (rasterised) or an image
func (g *Generator) LoadSource(ctx context.Context, url string) (*raster.SourceBitmap, error) {
	resource, err := g.loader.Load(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to load source: %w", err)
	}
	switch resource.Type {
	case res.ResourceTypeStatement:
		stmt, err := g.LoadStatement(ctx, url)
		if err != nil {
			return nil, err
		}
		return g.RasterizeStatement(stmt)
	case res.ResourceTypeImage:
		return g.LoadImage(ctx, url)
	default:
		return nil, fmt.Errorf("unsupported source %s: %s", resource.Type, url)
	}
}

func (g *Generator) svgWidth() int {
	if g.options.SVGWidth > 0 {
		return g.options.SVGWidth
	}
	return raster.DefaultSVGWidth
}

// RenderStatement renders a statement to PDF
func (g *Generator) RenderStatement(ctx context.Context, stmt *billing.Statement, output io.Writer) (*pagination.PaginationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, err := g.RasterizeStatement(stmt)
	if err != nil {
		return nil, err
	}
	logger.WithStatement(g.log(), stmt.ID).WithFields(logrus.Fields{
		"width":  src.Width(),
		"height": src.Height(),
	}).Debug("statement rasterised")

	return g.RenderImage(ctx, src, output)
}

// RenderImage renders an already rasterised source to PDF
func (g *Generator) RenderImage(ctx context.Context, src *raster.SourceBitmap, output io.Writer) (*pagination.PaginationResult, error) {
	result, header, err := g.prepare(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := g.renderer().Render(output, src, result, header, g.renderOptions()); err != nil {
		return nil, err
	}
	g.logDone(result)
	return result, nil
}

// RenderStatementFile renders a statement file (YAML or JSON) to a PDF file
func (g *Generator) RenderStatementFile(ctx context.Context, inputPath, outputPath string) (*pagination.PaginationResult, error) {
	stmt, err := g.LoadStatement(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	src, err := g.RasterizeStatement(stmt)
	if err != nil {
		return nil, err
	}
	return g.renderFile(ctx, src, outputPath)
}

// RenderImageFile renders an image file or URL to a PDF file
func (g *Generator) RenderImageFile(ctx context.Context, inputPath, outputPath string) (*pagination.PaginationResult, error) {
	src, err := g.LoadImage(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	return g.renderFile(ctx, src, outputPath)
}

// RenderStatementBytes renders a statement and returns the PDF bytes
func (g *Generator) RenderStatementBytes(ctx context.Context, stmt *billing.Statement) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := g.RenderStatement(ctx, stmt, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) renderFile(ctx context.Context, src *raster.SourceBitmap, outputPath string) (*pagination.PaginationResult, error) {
	result, header, err := g.prepare(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := g.renderer().RenderFile(outputPath, src, result, header, g.renderOptions()); err != nil {
		return nil, err
	}
	g.log().WithField("output", outputPath).Debug("PDF written")
	g.logDone(result)
	return result, nil
}

// prepare paginates src and loads the letterhead. Pagination runs first so
// invalid geometry fails before any resource is fetched.
func (g *Generator) prepare(ctx context.Context, src *raster.SourceBitmap) (*pagination.PaginationResult, image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if src == nil {
		return nil, nil, fmt.Errorf("failed to paginate: nil source")
	}

	result, err := g.Plan(src.Width(), src.Height())
	if err != nil {
		return nil, nil, err
	}

	var header image.Image
	if g.options.Letterhead != "" {
		width := int(math.Ceil(result.Geometry.PageWidth * float64(max(g.options.Scale, 1))))
		bm, err := g.loader.LoadBitmap(ctx, g.options.Letterhead, width)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load letterhead: %w", err)
		}
		header = bm.Image()
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return result, header, nil
}

func (g *Generator) renderer() *pdf.Renderer {
	var log logrus.FieldLogger = logger.Discard()
	if g.options.Logger != nil {
		log = logger.WithComponent(g.options.Logger, "pdf")
	}
	r := pdf.NewRenderer(log)
	r.Debug = g.options.Debug
	return r
}

func (g *Generator) renderOptions() pdf.RenderOptions {
	return pdf.RenderOptions{
		Title:    g.options.Title,
		Author:   g.options.Author,
		Subject:  g.options.Subject,
		Keywords: g.options.Keywords,
		Creator:  producer,
		Producer: producer,
	}
}

func (g *Generator) logDone(result *pagination.PaginationResult) {
	g.log().WithFields(logrus.Fields{
		"pages":  result.PageCount(),
		"window": result.WindowHeight,
		"scale":  result.ScaleRatio,
	}).Info("document paginated")
}
