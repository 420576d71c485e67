package layout

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Box is a laid-out element of the statement canvas
type Box interface {
	Bounds() image.Rectangle
	Draw(dst draw.Image, face font.Face)
}

// TextBox is a single line of text. Y is the top of the line box.
type TextBox struct {
	X, Y   int
	Width  int
	Height int
	Ascent int
	Text   string
	Color  color.Color
}

func (b *TextBox) Bounds() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

func (b *TextBox) Draw(dst draw.Image, face font.Face) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(b.Color),
		Face: face,
		Dot:  fixed.P(b.X, b.Y+b.Ascent),
	}
	d.DrawString(b.Text)
}

// RuleBox is a filled rectangle: table rules and section bands
type RuleBox struct {
	Rect  image.Rectangle
	Color color.Color
}

func (b *RuleBox) Bounds() image.Rectangle { return b.Rect }

func (b *RuleBox) Draw(dst draw.Image, _ font.Face) {
	draw.Draw(dst, b.Rect, image.NewUniform(b.Color), image.Point{}, draw.Over)
}
