// Package layout draws billing statements onto a tall transparent bitmap.
package layout

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/billprint/billprint/internal/billing"
	"github.com/billprint/billprint/internal/raster"
	"github.com/billprint/billprint/internal/text"
)

const (
	// DefaultWidth is the logical canvas width, one pixel per A4 point
	DefaultWidth = 595
	// DefaultScale models a 3x capture density
	DefaultScale = 3
	// DefaultPadding is the inset from the canvas edges
	DefaultPadding = 24

	dateLayout = "02 Jan 2006"
)

var (
	inkColor   = color.RGBA{0x1a, 0x1a, 0x1a, 0xff}
	mutedColor = color.RGBA{0x5c, 0x5c, 0x5c, 0xff}
	ruleColor  = color.RGBA{0x9a, 0x9a, 0x9a, 0xff}
)

// StatementRenderer lays out and draws a statement
type StatementRenderer struct {
	Width   int
	Scale   int
	Padding int
	Face    font.Face
	Money   *text.MoneyFormatter
}

// NewStatementRenderer creates a renderer with default width, scale and face
func NewStatementRenderer() *StatementRenderer {
	return &StatementRenderer{
		Width:   DefaultWidth,
		Scale:   DefaultScale,
		Padding: DefaultPadding,
		Face:    basicfont.Face7x13,
		Money:   text.DefaultMoneyFormatter(),
	}
}

// Render draws stmt on a transparent canvas and upscales it by Scale.
// The result is Width*Scale pixels wide.
func (r *StatementRenderer) Render(stmt *billing.Statement) (*raster.SourceBitmap, error) {
	boxes, height, err := r.Layout(stmt)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, r.Width, height))
	face := r.face()
	for _, b := range boxes {
		b.Draw(canvas, face)
	}

	return raster.NewSourceBitmap(raster.Upscale(canvas, r.Scale))
}

// Layout positions every element of the statement at logical resolution and
// returns the boxes together with the canvas height.
func (r *StatementRenderer) Layout(stmt *billing.Statement) ([]Box, int, error) {
	if stmt == nil {
		return nil, 0, errors.New("nil statement")
	}
	if r.Width-2*r.Padding <= 0 {
		return nil, 0, fmt.Errorf("canvas width %d leaves no room inside padding %d", r.Width, r.Padding)
	}

	c := &cursor{
		shaper: text.NewTextShaper(r.face()),
		left:   r.Padding,
		right:  r.Width - r.Padding,
		y:      r.Padding,
	}
	money := r.Money
	if money == nil {
		money = text.DefaultMoneyFormatter()
	}

	c.heading(stmt)
	c.patient(stmt.Patient)
	c.charges(stmt, money)
	c.payments(stmt.Payments, money)
	c.totals(stmt.Totals(), stmt.Discount.Reason, money)
	c.gap(c.lineHeight())
	c.centered("This is a computer generated statement.", mutedColor)

	return c.boxes, c.y + r.Padding, nil
}

func (r *StatementRenderer) face() font.Face {
	if r.Face == nil {
		return basicfont.Face7x13
	}
	return r.Face
}

type cursor struct {
	shaper      *text.TextShaper
	boxes       []Box
	left, right int
	y           int
}

func (c *cursor) width() int      { return c.right - c.left }
func (c *cursor) lineHeight() int { return c.shaper.LineHeight() }
func (c *cursor) gap(n int)       { c.y += n }

// col returns the x offset of a fraction of the content width
func (c *cursor) col(frac float64) int {
	return c.left + int(float64(c.width())*frac)
}

func (c *cursor) put(x, y int, s string, col color.Color) {
	if s == "" {
		return
	}
	c.boxes = append(c.boxes, &TextBox{
		X:      x,
		Y:      y,
		Width:  c.shaper.MeasureText(s),
		Height: c.lineHeight(),
		Ascent: c.shaper.Ascent(),
		Text:   s,
		Color:  col,
	})
}

func (c *cursor) putRight(right, y int, s string, col color.Color) {
	c.put(right-c.shaper.MeasureText(s), y, s, col)
}

func (c *cursor) centered(s string, col color.Color) {
	s = c.shaper.Truncate(s, c.width())
	c.put(c.left+(c.width()-c.shaper.MeasureText(s))/2, c.y, s, col)
	c.y += c.lineHeight()
}

func (c *cursor) rule(thickness int) {
	c.boxes = append(c.boxes, &RuleBox{
		Rect:  image.Rect(c.left, c.y, c.right, c.y+thickness),
		Color: ruleColor,
	})
	c.y += thickness
}

func (c *cursor) section(title string) {
	c.gap(c.lineHeight())
	c.put(c.left, c.y, strings.ToUpper(title), inkColor)
	c.y += c.lineHeight() + 2
	c.rule(1)
	c.gap(4)
}

func (c *cursor) heading(stmt *billing.Statement) {
	if stmt.Hospital.Name != "" {
		c.centered(stmt.Hospital.Name, inkColor)
	}
	if stmt.Hospital.Address != "" {
		c.centered(stmt.Hospital.Address, mutedColor)
	}
	if stmt.Hospital.Phone != "" {
		c.centered("Tel: "+stmt.Hospital.Phone, mutedColor)
	}
	c.gap(6)
	c.centered("IPD FINAL BILL", inkColor)
	c.gap(6)
	c.rule(2)
	c.gap(4)

	c.put(c.left, c.y, "Bill No: "+stmt.ID, inkColor)
	if stmt.IssuedAt != nil {
		c.putRight(c.right, c.y, "Date: "+stmt.IssuedAt.Format(dateLayout), inkColor)
	}
	c.y += c.lineHeight()
}

func (c *cursor) patient(p billing.Patient) {
	c.section("Patient Details")

	fields := [][2]string{
		{"Name", p.Name},
		{"UHID", p.UHID},
		{"IPD No", p.IPDNumber},
		{"Age/Sex", ageSex(p.Age, p.Gender)},
		{"Ward", p.Ward},
		{"Bed", p.BedNumber},
		{"Consultant", p.Consultant},
		{"Admitted", formatDate(p.AdmittedAt)},
		{"Discharged", formatDate(p.DischargedAt)},
	}

	half := c.width() / 2
	column := 0
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		x := c.left + column*half
		c.put(x, c.y, c.shaper.Truncate(f[0]+": "+f[1], half-8), inkColor)
		column++
		if column == 2 {
			column = 0
			c.y += c.lineHeight()
		}
	}
	if column != 0 {
		c.y += c.lineHeight()
	}
}

func (c *cursor) charges(stmt *billing.Statement, money *text.MoneyFormatter) {
	groups := stmt.ItemsByKind()

	descRight := c.col(0.52)
	qtyRight := c.col(0.64)
	rateRight := c.col(0.82)

	for _, kind := range billing.ChargeKinds {
		items := groups[kind]
		if len(items) == 0 {
			continue
		}
		c.section(kind.Title())

		c.put(c.left, c.y, "Description", mutedColor)
		c.putRight(qtyRight, c.y, "Qty", mutedColor)
		c.putRight(rateRight, c.y, "Rate", mutedColor)
		c.putRight(c.right, c.y, "Amount", mutedColor)
		c.y += c.lineHeight() + 2

		subtotal := 0.0
		for _, item := range items {
			desc := item.Description
			if item.Doctor != "" {
				desc += " (" + item.Doctor + ")"
			}
			if item.Date != nil {
				desc = item.Date.Format(dateLayout) + " " + desc
			}
			lines := c.shaper.SplitTextToLines(desc, descRight-c.left)

			c.putRight(qtyRight, c.y, formatQuantity(item.Quantity), inkColor)
			c.putRight(rateRight, c.y, money.Format(item.UnitPrice), inkColor)
			c.putRight(c.right, c.y, money.Format(item.Amount()), inkColor)
			for _, line := range lines {
				c.put(c.left, c.y, line, inkColor)
				c.y += c.lineHeight()
			}
			c.gap(3)
			subtotal += item.Amount()
		}

		c.rule(1)
		c.gap(3)
		c.putRight(rateRight, c.y, "Subtotal", inkColor)
		c.putRight(c.right, c.y, money.Format(subtotal), inkColor)
		c.y += c.lineHeight()
	}
}

func (c *cursor) payments(payments []billing.Payment, money *text.MoneyFormatter) {
	if len(payments) == 0 {
		return
	}
	c.section("Payments")

	typeX := c.col(0.22)
	modeX := c.col(0.40)
	refX := c.col(0.56)

	c.put(c.left, c.y, "Date", mutedColor)
	c.put(typeX, c.y, "Type", mutedColor)
	c.put(modeX, c.y, "Mode", mutedColor)
	c.put(refX, c.y, "Reference", mutedColor)
	c.putRight(c.right, c.y, "Amount", mutedColor)
	c.y += c.lineHeight() + 2

	for _, p := range payments {
		amount := p.Amount
		if p.Type == billing.PaymentRefund {
			amount = -amount
		}
		c.put(c.left, c.y, formatDate(p.Date), inkColor)
		c.put(typeX, c.y, titleCase(string(p.Type)), inkColor)
		c.put(modeX, c.y, c.shaper.Truncate(strings.ToUpper(p.Mode), refX-modeX-6), inkColor)
		c.put(refX, c.y, c.shaper.Truncate(p.Reference, c.col(0.80)-refX), inkColor)
		c.putRight(c.right, c.y, money.Format(amount), inkColor)
		c.y += c.lineHeight() + 3
	}
}

func (c *cursor) totals(t billing.Totals, discountReason string, money *text.MoneyFormatter) {
	c.section("Summary")

	labelRight := c.col(0.82)
	row := func(label string, v float64) {
		c.putRight(labelRight, c.y, label, inkColor)
		c.putRight(c.right, c.y, money.Format(v), inkColor)
		c.y += c.lineHeight() + 2
	}

	for _, kind := range billing.ChargeKinds {
		if v, ok := t.ByKind[kind]; ok {
			row(kind.Title(), v)
		}
	}
	row("Gross Total", t.GrossTotal)
	if t.Discount > 0 {
		label := "Discount"
		if discountReason != "" {
			label += " (" + c.shaper.Truncate(discountReason, labelRight-c.left-120) + ")"
		}
		row(label, -t.Discount)
	}
	row("Net Total", t.NetTotal)
	row("Amount Paid", t.Paid)
	c.rule(1)
	c.gap(3)
	if t.Due < 0 {
		row("Refund Due", -t.Due)
	} else {
		row("Balance Due", t.Due)
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func ageSex(age int, gender string) string {
	switch {
	case age > 0 && gender != "":
		return fmt.Sprintf("%d/%s", age, gender)
	case age > 0:
		return strconv.Itoa(age)
	default:
		return gender
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
