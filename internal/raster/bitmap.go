// Package raster holds the rendered source bitmap and the per-page slice extraction.
package raster

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/billprint/billprint/internal/pagination"
)

// SourceBitmap is the fully rendered document. It is read-only once created.
type SourceBitmap struct {
	img image.Image
}

// NewSourceBitmap wraps an image. A nil image is rejected.
func NewSourceBitmap(img image.Image) (*SourceBitmap, error) {
	if img == nil {
		return nil, errors.New("nil source image")
	}
	return &SourceBitmap{img: img}, nil
}

// Width returns the pixel width
func (b *SourceBitmap) Width() int { return b.img.Bounds().Dx() }

// Height returns the pixel height
func (b *SourceBitmap) Height() int { return b.img.Bounds().Dy() }

// Image returns the underlying image
func (b *SourceBitmap) Image() image.Image { return b.img }

// Extract copies the slice's source window into a new image with its origin at (0, 0).
func Extract(src *SourceBitmap, slice pagination.PageSlice) (*image.NRGBA, error) {
	if slice.SourceHeight <= 0 {
		return nil, fmt.Errorf("failed to extract slice: empty source window")
	}
	if slice.SourceY < 0 || slice.SourceEnd() > src.Height() {
		return nil, fmt.Errorf("failed to extract slice: source window [%d, %d) outside bitmap height %d",
			slice.SourceY, slice.SourceEnd(), src.Height())
	}

	b := src.img.Bounds()
	window := image.Rect(b.Min.X, b.Min.Y+slice.SourceY, b.Max.X, b.Min.Y+slice.SourceEnd())

	out := image.NewNRGBA(image.Rect(0, 0, window.Dx(), window.Dy()))
	draw.Draw(out, out.Bounds(), src.img, window.Min, draw.Src)
	return out, nil
}

// Upscale enlarges an image by an integer factor with nearest-neighbour sampling.
// It models a high-density capture of the same layout.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}
