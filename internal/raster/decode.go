package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	// Register a broad set of image decoders so image.Decode can handle many formats.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
)

// DefaultSVGWidth is the raster width used when an SVG is decoded without a target
const DefaultSVGWidth = 1785

// IsSVG reports whether the mime type or data looks like SVG
func IsSVG(mimeType string, data []byte) bool {
	if strings.Contains(mimeType, "svg") {
		return true
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// Decode decodes image data into a SourceBitmap. SVG data is rasterised at svgWidth
// pixels wide (DefaultSVGWidth when svgWidth <= 0).
func Decode(data []byte, mimeType string, svgWidth int) (*SourceBitmap, error) {
	if IsSVG(mimeType, data) {
		img, err := RasterizeSVG(bytes.NewReader(data), svgWidth)
		if err != nil {
			return nil, err
		}
		return NewSourceBitmap(img)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decoded %s image has no pixels", format)
	}
	return NewSourceBitmap(img)
}

// RasterizeSVG renders an SVG at the given pixel width, preserving its aspect ratio
func RasterizeSVG(r io.Reader, width int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	if width <= 0 {
		width = DefaultSVGWidth
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("SVG has no usable viewBox (%.0fx%.0f)", vw, vh)
	}
	height := int(float64(width) * vh / vw)
	if height < 1 {
		height = 1
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return rgba, nil
}

// EncodePNG encodes an image as PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
