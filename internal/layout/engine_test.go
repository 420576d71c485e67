package layout

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billprint/billprint/internal/billing"
)

func sampleStatement(items int) *billing.Statement {
	admitted := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	stmt := &billing.Statement{
		ID:       "IPD-7",
		Hospital: billing.Hospital{Name: "Sunrise Hospital", Address: "14 Lake Road"},
		Patient: billing.Patient{
			Name: "Asha Kulkarni", UHID: "UH-1", Age: 58, Gender: "F",
			Ward: "B", BedNumber: "12", AdmittedAt: &admitted,
		},
		Payments: []billing.Payment{
			{Type: billing.PaymentDeposit, Mode: "upi", Amount: 200, Reference: "R-1"},
		},
		IssuedAt: &admitted,
	}
	kinds := billing.ChargeKinds
	for i := 0; i < items; i++ {
		stmt.Items = append(stmt.Items, billing.LineItem{
			Kind:        kinds[i%len(kinds)],
			Description: "Charge line with a fairly long description that wraps inside the column",
			Quantity:    1,
			UnitPrice:   100,
		})
	}
	return stmt
}

func texts(boxes []Box) []string {
	var out []string
	for _, b := range boxes {
		if tb, ok := b.(*TextBox); ok {
			out = append(out, tb.Text)
		}
	}
	return out
}

func TestLayout_Content(t *testing.T) {
	r := NewStatementRenderer()
	boxes, height, err := r.Layout(sampleStatement(4))
	require.NoError(t, err)
	assert.Greater(t, height, 2*DefaultPadding)

	all := strings.Join(texts(boxes), "\n")
	for _, want := range []string{
		"Sunrise Hospital", "IPD FINAL BILL", "Bill No: IPD-7", "Date: 01 Mar 2024",
		"Name: Asha Kulkarni", "Age/Sex: 58/F", "HOSPITAL CHARGES", "MEDICINES",
		"Gross Total", "Rs. 400.00", "Balance Due", "Rs. 200.00", "UPI",
	} {
		assert.Contains(t, all, want)
	}
}

func TestLayout_BoxesInsideCanvas(t *testing.T) {
	r := NewStatementRenderer()
	boxes, height, err := r.Layout(sampleStatement(25))
	require.NoError(t, err)

	canvas := image.Rect(0, 0, r.Width, height)
	for _, b := range boxes {
		assert.True(t, b.Bounds().In(canvas), "%v outside %v", b.Bounds(), canvas)
	}
}

func TestLayout_GrowsWithItems(t *testing.T) {
	r := NewStatementRenderer()
	_, short, err := r.Layout(sampleStatement(2))
	require.NoError(t, err)
	_, tall, err := r.Layout(sampleStatement(40))
	require.NoError(t, err)
	assert.Greater(t, tall, short)
}

func TestLayout_RefundDue(t *testing.T) {
	stmt := sampleStatement(1)
	stmt.Payments = append(stmt.Payments, billing.Payment{Type: billing.PaymentAdvance, Amount: 50})

	boxes, _, err := NewStatementRenderer().Layout(stmt)
	require.NoError(t, err)
	all := strings.Join(texts(boxes), "\n")
	assert.Contains(t, all, "Refund Due")
	assert.Contains(t, all, "Rs. 150.00")
}

func TestLayout_Errors(t *testing.T) {
	_, _, err := NewStatementRenderer().Layout(nil)
	assert.Error(t, err)

	r := NewStatementRenderer()
	r.Width = 40
	_, _, err = r.Layout(sampleStatement(1))
	assert.ErrorContains(t, err, "no room")
}

func TestRender_ScaledTransparentCanvas(t *testing.T) {
	r := NewStatementRenderer()
	_, height, err := r.Layout(sampleStatement(3))
	require.NoError(t, err)

	bm, err := r.Render(sampleStatement(3))
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth*DefaultScale, bm.Width())
	assert.Equal(t, height*DefaultScale, bm.Height())

	img := bm.Image()
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a, "background must stay transparent")

	opaque := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !opaque; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				opaque = true
				break
			}
		}
	}
	assert.True(t, opaque, "statement drew nothing")
}

func TestRender_ScaleOne(t *testing.T) {
	r := NewStatementRenderer()
	r.Scale = 1
	r.Face = nil
	r.Money = nil
	bm, err := r.Render(sampleStatement(1))
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, bm.Width())
}
