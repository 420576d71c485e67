// Package pdf writes paginated bitmaps into a PDF, one page per slice with
// the letterhead beneath the content.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/sirupsen/logrus"

	"github.com/billprint/billprint/internal/pagination"
	"github.com/billprint/billprint/internal/raster"
)

const headerImageName = "letterhead"

// Renderer handles rendering to PDF
type Renderer struct {
	// Debug outlines every placement rectangle
	Debug bool
	// Compress toggles stream compression
	Compress bool
	// CreatedAt pins the document creation date; zero means now
	CreatedAt time.Time

	logger logrus.FieldLogger
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// NewRenderer creates a new PDF renderer
func NewRenderer(logger logrus.FieldLogger) *Renderer {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Renderer{
		Compress: true,
		logger:   logger,
	}
}

// Render writes one PDF page per slice of result to out. Each page gets the
// header drawn over the full page first, then the slice at its placement.
// A nil header leaves the page background blank.
func (r *Renderer) Render(out io.Writer, src *raster.SourceBitmap, result *pagination.PaginationResult, header image.Image, options RenderOptions) error {
	if src == nil || result == nil {
		return fmt.Errorf("failed to render PDF: missing source or pagination result")
	}
	if src.Width() != result.SourceWidth || src.Height() != result.SourceHeight {
		return fmt.Errorf("failed to render PDF: source is %dx%d but was paginated as %dx%d",
			src.Width(), src.Height(), result.SourceWidth, result.SourceHeight)
	}

	g := result.Geometry
	// geometry already carries the orientation
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})

	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCompression(r.Compress)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)
	if !r.CreatedAt.IsZero() {
		pdf.SetCreationDate(r.CreatedAt)
		pdf.SetModificationDate(r.CreatedAt)
	}

	pngOpts := fpdf.ImageOptions{ImageType: "PNG"}

	if header != nil {
		data, err := raster.EncodePNG(toNRGBA(header))
		if err != nil {
			return fmt.Errorf("failed to encode letterhead: %w", err)
		}
		pdf.RegisterImageOptionsReader(headerImageName, pngOpts, bytes.NewReader(data))
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("failed to register letterhead: %w", err)
		}
	}

	r.logger.WithFields(logrus.Fields{
		"pages":  result.PageCount(),
		"window": result.WindowHeight,
		"scale":  result.ScaleRatio,
	}).Debug("rendering PDF pages")

	for _, slice := range result.Slices {
		pdf.AddPage()
		if header != nil {
			pdf.ImageOptions(headerImageName, 0, 0, g.PageWidth, g.PageHeight, false, pngOpts, 0, "")
		}

		part, err := raster.Extract(src, slice)
		if err != nil {
			return fmt.Errorf("failed to render page %d: %w", slice.Page, err)
		}
		data, err := raster.EncodePNG(part)
		if err != nil {
			return fmt.Errorf("failed to encode page %d: %w", slice.Page, err)
		}

		name := fmt.Sprintf("slice-%d", slice.Page)
		p := slice.Placement
		pdf.RegisterImageOptionsReader(name, pngOpts, bytes.NewReader(data))
		pdf.ImageOptions(name, p.X, p.Y, p.Width, p.Height, false, pngOpts, 0, "")

		if r.Debug {
			pdf.SetDrawColor(255, 0, 0)
			pdf.SetLineWidth(0.5)
			pdf.Rect(p.X, p.Y, p.Width, p.Height, "D")
		}

		r.logger.WithFields(logrus.Fields{
			"page":   slice.Page,
			"source": fmt.Sprintf("[%d,%d)", slice.SourceY, slice.SourceEnd()),
			"height": p.Height,
		}).Debug("placed slice")

		if err := pdf.Error(); err != nil {
			return fmt.Errorf("failed to render page %d: %w", slice.Page, err)
		}
	}

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// RenderFile renders to outputPath, creating its directory when missing
func (r *Renderer) RenderFile(outputPath string, src *raster.SourceBitmap, result *pagination.PaginationResult, header image.Image, options RenderOptions) error {
	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, src, result, header, options); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// toNRGBA converts img to 8-bit NRGBA; fpdf rejects 16-bit PNGs
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
