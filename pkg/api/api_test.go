package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billprint/billprint/internal/billing"
	"github.com/billprint/billprint/internal/logger"
	"github.com/billprint/billprint/internal/pagination"
	"github.com/billprint/billprint/internal/render/pdf"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func statement(items int) *billing.Statement {
	stmt := &billing.Statement{
		ID:       "IPD-1",
		Hospital: billing.Hospital{Name: "Sunrise Hospital"},
		Patient:  billing.Patient{Name: "Asha Kulkarni"},
	}
	for i := 0; i < items; i++ {
		stmt.Items = append(stmt.Items, billing.LineItem{
			Kind:        billing.ChargeKinds[i%len(billing.ChargeKinds)],
			Description: fmt.Sprintf("Charge %d", i+1),
			Quantity:    1,
			UnitPrice:   250,
		})
	}
	return stmt
}

func inspect(t *testing.T, data []byte) *pdf.Info {
	t.Helper()
	info, err := pdf.Inspect(bytes.NewReader(data))
	require.NoError(t, err)
	return info
}

func TestPlan_HighDensityCapture(t *testing.T) {
	g := New(WithPageSize(595, 842), WithMargins(120, 80, 20))

	result, err := g.Plan(1785, 12000)
	require.NoError(t, err)
	assert.Equal(t, 6, result.PageCount())
	assert.Equal(t, 2064, result.WindowHeight)
	assert.Equal(t, 1680, result.Slices[5].SourceHeight)
}

func TestGeometry_Orientation(t *testing.T) {
	portrait := New(WithPageSize(842, 595)).Geometry()
	assert.Less(t, portrait.PageWidth, portrait.PageHeight)

	landscape := New(WithPageSizeA4(), WithPageOrientation(PageOrientationLandscape)).Geometry()
	assert.InDelta(t, PageSizeA4Height, landscape.PageWidth, 1e-9)
	assert.InDelta(t, PageSizeA4Width, landscape.PageHeight, 1e-9)
	assert.InDelta(t, 120, landscape.TopMargin, 1e-9)
}

func TestRenderStatement_WithLetterhead(t *testing.T) {
	dir := t.TempDir()
	head := filepath.Join(dir, "letterhead.png")
	writePNG(t, head, 60, 85, color.NRGBA{0x20, 0x60, 0xa0, 0xff})

	g := New(WithLetterhead(head), WithTitle("Final Bill"), WithScale(2))

	var buf bytes.Buffer
	result, err := g.RenderStatement(context.Background(), statement(60), &buf)
	require.NoError(t, err)
	assert.Greater(t, result.PageCount(), 1)
	assert.Equal(t, head, result.Header)

	info := inspect(t, buf.Bytes())
	assert.Equal(t, result.PageCount(), info.PageCount)
}

func TestRenderStatementBytes(t *testing.T) {
	data, err := New().RenderStatementBytes(context.Background(), statement(3))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, 1, inspect(t, data).PageCount)
}

func TestRenderImageFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "chart.png")
	writePNG(t, in, 595, 3000, color.Black)
	out := filepath.Join(dir, "out", "chart.pdf")

	result, err := New().RenderImageFile(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 5, result.PageCount())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 5, inspect(t, data).PageCount)
}

func TestRenderStatementFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bill.yaml")
	require.NoError(t, os.WriteFile(in, []byte(strings.TrimSpace(`
patient:
  name: R. Shah
items:
  - kind: service
    description: X-ray chest PA
    quantity: 1
    unit_price: 900
`)), 0o644))
	out := filepath.Join(dir, "bill.pdf")

	result, err := New().RenderStatementFile(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 1, result.PageCount())
	assert.FileExists(t, out)
}

func TestRender_InvalidGeometryWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "chart.png")
	writePNG(t, in, 100, 100, color.Black)
	out := filepath.Join(dir, "chart.pdf")

	g := New(WithMargins(500, 400, 20))
	_, err := g.RenderImageFile(context.Background(), in, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pagination.ErrInvalidGeometry))
	assert.NoFileExists(t, out)

	var geomErr *pagination.InvalidGeometryError
	assert.ErrorAs(t, err, &geomErr)
}

func TestRender_MissingLetterhead(t *testing.T) {
	g := New(WithLetterhead(filepath.Join(t.TempDir(), "missing.png")))
	var buf bytes.Buffer
	_, err := g.RenderStatement(context.Background(), statement(1), &buf)
	assert.ErrorContains(t, err, "failed to load letterhead")
	assert.Zero(t, buf.Len())
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := New().RenderStatement(ctx, statement(1), &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestLoadSource(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "scan.png")
	writePNG(t, img, 40, 70, color.White)
	stmt := filepath.Join(dir, "bill.json")
	require.NoError(t, os.WriteFile(stmt, []byte(`{"patient":{"name":"A"},"items":[]}`), 0o644))
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))

	g := New(WithScale(1), WithStatementWidth(300))
	ctx := context.Background()

	src, err := g.LoadSource(ctx, img)
	require.NoError(t, err)
	assert.Equal(t, 40, src.Width())

	src, err = g.LoadSource(ctx, stmt)
	require.NoError(t, err)
	assert.Equal(t, 300, src.Width())

	_, err = g.LoadSource(ctx, other)
	assert.ErrorContains(t, err, "unsupported source")
}

type countingTransport struct {
	hits int32
	next http.RoundTripper
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	atomic.AddInt32(&c.hits, 1)
	return c.next.RoundTrip(req)
}

func TestLoadImage_UsesConfiguredHTTPClient(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "scan.png")
	writePNG(t, img, 30, 50, color.White)
	body, err := os.ReadFile(img)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	transport := &countingTransport{next: http.DefaultTransport}
	g := New(WithHTTPClient(&http.Client{Transport: transport}))

	src, err := g.LoadImage(context.Background(), srv.URL+"/scan.png")
	require.NoError(t, err)
	assert.Equal(t, 50, src.Height())
	assert.Equal(t, int32(1), atomic.LoadInt32(&transport.hits))
}

func TestRenderStatement_LogsComponents(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOptions("debug", "text", &buf)

	_, err := New(WithScale(1), WithLogger(log)).RenderStatementBytes(context.Background(), statement(2))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "component=api")
	assert.Contains(t, out, "component=pdf")
	assert.Contains(t, out, "statement_id=IPD-1")
}

func TestRasterizeStatement_BadLocale(t *testing.T) {
	_, err := New(WithCurrency("!!", "$")).RasterizeStatement(statement(1))
	assert.ErrorContains(t, err, "money formatting")
}

func TestRasterizeStatement_Invalid(t *testing.T) {
	g := New()
	_, err := g.RasterizeStatement(nil)
	assert.ErrorContains(t, err, "nil statement")

	stmt := statement(1)
	stmt.Patient.Name = ""
	_, err = g.RenderStatementBytes(context.Background(), stmt)
	var verr *billing.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "patient.name", verr.Field)
}

func TestOptions(t *testing.T) {
	g := New(WithScale(4), WithDebug(true), WithResourcePath("assets"), WithAuthor("Billing Desk"),
		WithSubject("IPD"), WithKeywords("bill"), WithSVGWidth(900), WithPageSizeLegal())
	o := g.Options()
	assert.Equal(t, 4, o.Scale)
	assert.True(t, o.Debug)
	assert.Equal(t, []string{"assets"}, o.ResourcePaths)
	assert.Equal(t, "Billing Desk", o.Author)
	assert.Equal(t, 900, o.SVGWidth)
	assert.InDelta(t, PageSizeLegalHeight, o.PageHeight, 1e-9)

	g.WithOption(WithPageSizeLetter())
	assert.InDelta(t, PageSizeLetterHeight, g.Options().PageHeight, 1e-9)

	w, h, ok := PageSizeByName("LETTER")
	assert.True(t, ok)
	assert.InDelta(t, 612, w, 1e-9)
	assert.InDelta(t, 792, h, 1e-9)
	_, _, ok = PageSizeByName("B5")
	assert.False(t, ok)
}
